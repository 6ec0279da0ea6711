package aggregates

import (
	"fmt"

	pkgerrors "herbnet/pkg/errors"
)

// NodeKind classifies a node by its layer in the multi-layer network
type NodeKind string

const (
	NodeKindHerb     NodeKind = "herb"
	NodeKindCompound NodeKind = "compound"
	NodeKindTarget   NodeKind = "target"
	NodeKindDisease  NodeKind = "disease"
)

// EdgeKind classifies an edge by the layers it connects
type EdgeKind string

const (
	EdgeKindHerbCompound   EdgeKind = "herb_compound"
	EdgeKindCompoundTarget EdgeKind = "compound_target"
	EdgeKindTargetDisease  EdgeKind = "target_disease"
)

// edgeEndpoints maps each edge kind to the node kinds it may connect.
// Edges never span more than one layer: herb-compound, compound-target,
// target-disease are the only legal adjacencies.
var edgeEndpoints = map[EdgeKind][2]NodeKind{
	EdgeKindHerbCompound:   {NodeKindHerb, NodeKindCompound},
	EdgeKindCompoundTarget: {NodeKindCompound, NodeKindTarget},
	EdgeKindTargetDisease:  {NodeKindTarget, NodeKindDisease},
}

// Node is a typed node in the compound-target network
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
}

// Edge is a typed, ordered connection between two nodes
type Edge struct {
	Source string
	Target string
	Kind   EdgeKind
}

// Network is the multi-layer herb/compound/target/disease graph built fresh
// per visualization request. The aggregate guards the layer-adjacency
// invariant on every mutation.
type Network struct {
	nodes map[string]Node
	order []string // insertion order, for deterministic iteration
	edges []Edge
	seen  map[string]bool // edge dedup keys
}

// NewNetwork creates an empty network
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[string]Node),
		seen:  make(map[string]bool),
	}
}

// AddNode adds a typed node. Re-adding an existing node with the same kind
// is a no-op; adding it with a different kind is rejected.
func (n *Network) AddNode(id, label string, kind NodeKind) error {
	if id == "" {
		return pkgerrors.NewInvalidParameterError("node id cannot be empty")
	}
	if _, ok := edgeKindsByNode[kind]; !ok {
		return pkgerrors.NewInvalidParameterError(fmt.Sprintf("unknown node kind %q", kind))
	}

	if existing, ok := n.nodes[id]; ok {
		if existing.Kind != kind {
			return pkgerrors.NewInvalidParameterError(
				fmt.Sprintf("node %q already exists with kind %q", id, existing.Kind))
		}
		return nil
	}

	n.nodes[id] = Node{ID: id, Label: label, Kind: kind}
	n.order = append(n.order, id)
	return nil
}

// edgeKindsByNode is only used to validate node kinds on AddNode
var edgeKindsByNode = map[NodeKind]bool{
	NodeKindHerb:     true,
	NodeKindCompound: true,
	NodeKindTarget:   true,
	NodeKindDisease:  true,
}

// AddEdge adds a typed edge. Both endpoints must already exist and their
// kinds must match the edge kind's layer adjacency. Duplicate edges collapse.
func (n *Network) AddEdge(sourceID, targetID string, kind EdgeKind) error {
	endpoints, ok := edgeEndpoints[kind]
	if !ok {
		return pkgerrors.NewInvalidParameterError(fmt.Sprintf("unknown edge kind %q", kind))
	}

	source, ok := n.nodes[sourceID]
	if !ok {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("edge source node %q", sourceID))
	}
	target, ok := n.nodes[targetID]
	if !ok {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("edge target node %q", targetID))
	}

	if source.Kind != endpoints[0] || target.Kind != endpoints[1] {
		return pkgerrors.NewInvalidParameterError(fmt.Sprintf(
			"edge kind %q cannot connect %q (%s) to %q (%s)",
			kind, sourceID, source.Kind, targetID, target.Kind))
	}

	key := sourceID + "\x00" + targetID + "\x00" + string(kind)
	if n.seen[key] {
		return nil
	}
	n.seen[key] = true
	n.edges = append(n.edges, Edge{Source: sourceID, Target: targetID, Kind: kind})
	return nil
}

// RemoveNode deletes a node and every edge incident to it
func (n *Network) RemoveNode(id string) {
	if _, ok := n.nodes[id]; !ok {
		return
	}
	delete(n.nodes, id)

	for i, nodeID := range n.order {
		if nodeID == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}

	kept := n.edges[:0]
	for _, e := range n.edges {
		if e.Source == id || e.Target == id {
			delete(n.seen, e.Source+"\x00"+e.Target+"\x00"+string(e.Kind))
			continue
		}
		kept = append(kept, e)
	}
	n.edges = kept
}

// Nodes returns the nodes in insertion order
func (n *Network) Nodes() []Node {
	nodes := make([]Node, 0, len(n.order))
	for _, id := range n.order {
		nodes = append(nodes, n.nodes[id])
	}
	return nodes
}

// NodesOfKind returns the nodes of one layer, in insertion order
func (n *Network) NodesOfKind(kind NodeKind) []Node {
	var nodes []Node
	for _, id := range n.order {
		if node := n.nodes[id]; node.Kind == kind {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Edges returns a copy of the edge list
func (n *Network) Edges() []Edge {
	edges := make([]Edge, len(n.edges))
	copy(edges, n.edges)
	return edges
}

// HasNode reports whether the node exists
func (n *Network) HasNode(id string) bool {
	_, ok := n.nodes[id]
	return ok
}

// Node returns a node by id
func (n *Network) Node(id string) (Node, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// Degree returns the number of edges incident to the node
func (n *Network) Degree(id string) int {
	degree := 0
	for _, e := range n.edges {
		if e.Source == id || e.Target == id {
			degree++
		}
	}
	return degree
}

// NodeCount returns the number of nodes
func (n *Network) NodeCount() int {
	return len(n.nodes)
}

// EdgeCount returns the number of edges
func (n *Network) EdgeCount() int {
	return len(n.edges)
}
