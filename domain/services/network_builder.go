package services

import (
	"sort"

	"herbnet/domain/config"
	"herbnet/domain/core/aggregates"
	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

// Node ids are namespaced by layer so a gene and a compound sharing a name
// never collide.
const (
	herbNodePrefix     = "herb:"
	compoundNodePrefix = "compound:"
	targetNodePrefix   = "target:"
	diseaseNodePrefix  = "disease:"
)

// HerbNodeID returns the network node id for a herb name
func HerbNodeID(name string) string { return herbNodePrefix + name }

// CompoundNodeID returns the network node id for a compound name
func CompoundNodeID(name string) string { return compoundNodePrefix + name }

// TargetNodeID returns the network node id for a gene symbol
func TargetNodeID(t entities.Target) string { return targetNodePrefix + string(t) }

// DiseaseNodeID returns the network node id for a disease name
func DiseaseNodeID(name string) string { return diseaseNodePrefix + name }

// BuildInput is everything the builder needs from the analysis pipeline
type BuildInput struct {
	// Filtered holds each herb's retained compounds, keyed by herb name
	Filtered map[string][]entities.Compound
	// Aggregation supplies the combined target set and the bipartite edges
	Aggregation *AggregationResult
	// Intersection, when present and non-empty, contributes a disease node
	Intersection *DiseaseIntersection
	// MaxNodes is the node budget; must be positive
	MaxNodes int
}

// BuildResult is the capped network plus truncation bookkeeping
type BuildResult struct {
	Network        *aggregates.Network
	DroppedTargets int
}

// NetworkBuilder assembles the typed multi-layer graph from analysis output,
// applying the node-budget cap to the target layer only.
type NetworkBuilder struct {
	cfg *config.DomainConfig
}

// NewNetworkBuilder creates a network builder
func NewNetworkBuilder(cfg *config.DomainConfig) *NetworkBuilder {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &NetworkBuilder{cfg: cfg}
}

// Build constructs the herb/compound/target/disease network. When the total
// node count exceeds MaxNodes, target nodes are ranked by compound-degree
// descending (gene symbol ascending on ties) and the lowest-ranked targets
// are dropped along with any edges that would dangle. Herb and compound
// nodes are never pruned; only the target layer is trimmed.
func (b *NetworkBuilder) Build(in BuildInput) (*BuildResult, error) {
	if in.MaxNodes <= 0 {
		return nil, pkgerrors.NewInvalidParameterError("max_nodes must be a positive integer")
	}
	if in.Aggregation == nil {
		return nil, pkgerrors.NewInvalidParameterError("aggregation result cannot be nil")
	}
	maxNodes := b.cfg.ClampMaxNodes(in.MaxNodes)

	herbs := make([]string, 0, len(in.Filtered))
	for name := range in.Filtered {
		herbs = append(herbs, name)
	}
	sort.Strings(herbs)

	// Degree of each target in the bipartite projection
	degree := make(map[entities.Target]int)
	for _, e := range in.Aggregation.Edges {
		degree[e.Target]++
	}

	allTargets := in.Aggregation.Combined.Sorted()
	kept := b.selectTargets(allTargets, degree, herbs, in, maxNodes)

	network := aggregates.NewNetwork()

	for _, herb := range herbs {
		if err := network.AddNode(HerbNodeID(herb), herb, aggregates.NodeKindHerb); err != nil {
			return nil, err
		}
	}

	for _, herb := range herbs {
		for _, compound := range in.Filtered[herb] {
			id := CompoundNodeID(compound.Name())
			if err := network.AddNode(id, compound.Name(), aggregates.NodeKindCompound); err != nil {
				return nil, err
			}
			if err := network.AddEdge(HerbNodeID(herb), id, aggregates.EdgeKindHerbCompound); err != nil {
				return nil, err
			}
		}
	}

	for _, target := range allTargets {
		if !kept[target] {
			continue
		}
		if err := network.AddNode(TargetNodeID(target), string(target), aggregates.NodeKindTarget); err != nil {
			return nil, err
		}
	}

	for _, e := range in.Aggregation.Edges {
		if !kept[e.Target] {
			continue
		}
		compoundID := CompoundNodeID(e.Compound)
		if !network.HasNode(compoundID) {
			continue
		}
		if err := network.AddEdge(compoundID, TargetNodeID(e.Target), aggregates.EdgeKindCompoundTarget); err != nil {
			return nil, err
		}
	}

	if in.Intersection != nil && len(in.Intersection.CommonTargets) > 0 {
		diseaseID := DiseaseNodeID(in.Intersection.Disease)
		added := false
		for _, target := range in.Intersection.CommonTargets {
			if !kept[target] {
				continue
			}
			if !added {
				if err := network.AddNode(diseaseID, in.Intersection.Disease, aggregates.NodeKindDisease); err != nil {
					return nil, err
				}
				added = true
			}
			if err := network.AddEdge(TargetNodeID(target), diseaseID, aggregates.EdgeKindTargetDisease); err != nil {
				return nil, err
			}
		}
	}

	return &BuildResult{
		Network:        network,
		DroppedTargets: len(allTargets) - len(kept),
	}, nil
}

// selectTargets ranks targets and keeps the highest-degree ones until the
// node budget is met.
func (b *NetworkBuilder) selectTargets(
	allTargets []entities.Target,
	degree map[entities.Target]int,
	herbs []string,
	in BuildInput,
	maxNodes int,
) map[entities.Target]bool {
	compoundCount := 0
	seen := make(map[string]bool)
	for _, herb := range herbs {
		for _, c := range in.Filtered[herb] {
			if !seen[c.Name()] {
				seen[c.Name()] = true
				compoundCount++
			}
		}
	}

	base := len(herbs) + compoundCount
	if in.Intersection != nil && len(in.Intersection.CommonTargets) > 0 {
		base++ // reserve the disease node
	}

	budget := maxNodes - base
	if budget < 0 {
		budget = 0
	}
	if budget > len(allTargets) {
		budget = len(allTargets)
	}

	ranked := make([]entities.Target, len(allTargets))
	copy(ranked, allTargets)
	sort.Slice(ranked, func(i, j int) bool {
		if degree[ranked[i]] != degree[ranked[j]] {
			return degree[ranked[i]] > degree[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	kept := make(map[entities.Target]bool, budget)
	for _, t := range ranked[:budget] {
		kept[t] = true
	}
	return kept
}
