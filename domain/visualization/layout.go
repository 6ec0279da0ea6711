package visualization

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"herbnet/domain/core/aggregates"
	pkgerrors "herbnet/pkg/errors"
)

// Position is a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutResult maps every node id of the laid-out graph to its coordinate
type LayoutResult map[string]Position

// LayoutAlgorithm selects a layout strategy. Selection affects only
// coordinates, never graph topology.
type LayoutAlgorithm string

const (
	LayoutSpring      LayoutAlgorithm = "spring"
	LayoutCircular    LayoutAlgorithm = "circular"
	LayoutShell       LayoutAlgorithm = "shell"
	LayoutKamadaKawai LayoutAlgorithm = "kamada_kawai"
)

// ParseLayoutAlgorithm validates an algorithm name, defaulting to spring
func ParseLayoutAlgorithm(s string) (LayoutAlgorithm, error) {
	switch LayoutAlgorithm(s) {
	case LayoutSpring, LayoutCircular, LayoutShell, LayoutKamadaKawai:
		return LayoutAlgorithm(s), nil
	case "":
		return LayoutSpring, nil
	default:
		return "", pkgerrors.NewInvalidParameterError(fmt.Sprintf("unknown layout algorithm %q", s))
	}
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Iterations int   // iteration count for the iterative algorithms
	Seed       int64 // seed for stochastic initialization (spring)
}

// DefaultLayoutConfig returns the default layout parameters
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Iterations: 100,
		Seed:       42,
	}
}

// Engine computes 2D coordinates for a network under a selectable strategy.
// Algorithms with stochastic initialization take the seed from the config,
// never process-global randomness, so output is reproducible.
type Engine struct {
	cfg LayoutConfig
}

// NewEngine creates a layout engine
func NewEngine(cfg LayoutConfig) *Engine {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultLayoutConfig().Iterations
	}
	return &Engine{cfg: cfg}
}

// Layout computes coordinates for every node of the network. A zero-node
// graph cannot be laid out and fails with a layout error. Every returned
// coordinate is finite.
func (e *Engine) Layout(network *aggregates.Network, algorithm LayoutAlgorithm) (LayoutResult, error) {
	if network == nil || network.NodeCount() == 0 {
		return nil, pkgerrors.NewLayoutError("cannot lay out a graph with zero nodes")
	}

	switch algorithm {
	case LayoutSpring:
		return e.springLayout(network), nil
	case LayoutCircular:
		return e.circularLayout(network), nil
	case LayoutShell:
		return e.shellLayout(network), nil
	case LayoutKamadaKawai:
		return e.kamadaKawaiLayout(network), nil
	default:
		return nil, pkgerrors.NewInvalidParameterError(fmt.Sprintf("unknown layout algorithm %q", algorithm))
	}
}

// sortedNodeIDs gives every algorithm the same deterministic node order
func sortedNodeIDs(network *aggregates.Network) []string {
	nodes := network.Nodes()
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	sort.Strings(ids)
	return ids
}

// springLayout is a Fruchterman-Reingold force simulation with seeded
// random initialization and linear cooling.
func (e *Engine) springLayout(network *aggregates.Network) LayoutResult {
	ids := sortedNodeIDs(network)
	n := len(ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed))
	pos := make([]r2.Vec, n)
	for i := range pos {
		pos[i] = r2.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
	}
	if n == 1 {
		return LayoutResult{ids[0]: {X: 0, Y: 0}}
	}

	edges := network.Edges()
	k := math.Sqrt(4.0 / float64(n)) // ideal pairwise distance for a 2x2 area
	temperature := 0.1
	cooling := temperature / float64(e.cfg.Iterations+1)
	const epsilon = 1e-9

	disp := make([]r2.Vec, n)
	for iter := 0; iter < e.cfg.Iterations; iter++ {
		for i := range disp {
			disp[i] = r2.Vec{}
		}

		// Repulsion between every node pair
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := r2.Sub(pos[i], pos[j])
				dist := r2.Norm(delta) + epsilon
				force := k * k / dist
				unit := r2.Scale(1/dist, delta)
				disp[i] = r2.Add(disp[i], r2.Scale(force, unit))
				disp[j] = r2.Sub(disp[j], r2.Scale(force, unit))
			}
		}

		// Attraction along edges
		for _, edge := range edges {
			i, j := index[edge.Source], index[edge.Target]
			delta := r2.Sub(pos[i], pos[j])
			dist := r2.Norm(delta) + epsilon
			force := dist * dist / k
			unit := r2.Scale(1/dist, delta)
			disp[i] = r2.Sub(disp[i], r2.Scale(force, unit))
			disp[j] = r2.Add(disp[j], r2.Scale(force, unit))
		}

		// Apply displacements capped by the current temperature
		for i := 0; i < n; i++ {
			length := r2.Norm(disp[i]) + epsilon
			step := math.Min(length, temperature)
			pos[i] = r2.Add(pos[i], r2.Scale(step/length, disp[i]))
		}
		temperature -= cooling
	}

	result := make(LayoutResult, n)
	for i, id := range ids {
		result[id] = Position{X: pos[i].X, Y: pos[i].Y}
	}
	return result
}

// circularLayout places all nodes evenly on the unit circle
func (e *Engine) circularLayout(network *aggregates.Network) LayoutResult {
	ids := sortedNodeIDs(network)
	result := make(LayoutResult, len(ids))
	if len(ids) == 1 {
		result[ids[0]] = Position{X: 0, Y: 0}
		return result
	}
	for i, id := range ids {
		angle := 2 * math.Pi * float64(i) / float64(len(ids))
		result[id] = Position{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	return result
}

// shellRadii fixes one concentric ring per node kind, herbs innermost
var shellRadii = map[aggregates.NodeKind]float64{
	aggregates.NodeKindHerb:     0.5,
	aggregates.NodeKindCompound: 1.0,
	aggregates.NodeKindTarget:   1.6,
	aggregates.NodeKindDisease:  2.2,
}

// shellLayout arranges each node kind on its own concentric ring
func (e *Engine) shellLayout(network *aggregates.Network) LayoutResult {
	result := make(LayoutResult, network.NodeCount())

	for kind, radius := range shellRadii {
		nodes := network.NodesOfKind(kind)
		if len(nodes) == 0 {
			continue
		}
		ids := make([]string, len(nodes))
		for i, node := range nodes {
			ids[i] = node.ID
		}
		sort.Strings(ids)

		for i, id := range ids {
			angle := 2 * math.Pi * float64(i) / float64(len(ids))
			result[id] = Position{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		}
	}
	return result
}

// kamadaKawaiLayout runs stress majorization over BFS graph distances.
// Disconnected node pairs are held at one hop beyond the graph diameter.
func (e *Engine) kamadaKawaiLayout(network *aggregates.Network) LayoutResult {
	ids := sortedNodeIDs(network)
	n := len(ids)
	if n == 1 {
		return LayoutResult{ids[0]: {X: 0, Y: 0}}
	}
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	dist := graphDistances(network, ids, index)

	// Initial positions on a circle; stress majorization is deterministic
	// from there.
	pos := make([]r2.Vec, n)
	for i := range pos {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	}

	const epsilon = 1e-9
	next := make([]r2.Vec, n)
	for iter := 0; iter < e.cfg.Iterations; iter++ {
		for i := 0; i < n; i++ {
			var numerator r2.Vec
			var weightSum float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				d := dist[i][j]
				w := 1 / (d * d)
				weightSum += w

				delta := r2.Sub(pos[i], pos[j])
				norm := r2.Norm(delta) + epsilon
				desired := r2.Add(pos[j], r2.Scale(d/norm, delta))
				numerator = r2.Add(numerator, r2.Scale(w, desired))
			}
			next[i] = r2.Scale(1/weightSum, numerator)
		}
		copy(pos, next)
	}

	result := make(LayoutResult, n)
	for i, id := range ids {
		result[id] = Position{X: pos[i].X, Y: pos[i].Y}
	}
	return result
}

// graphDistances computes all-pairs BFS hop distances, substituting
// diameter+1 for unreachable pairs so the stress model stays finite.
func graphDistances(network *aggregates.Network, ids []string, index map[string]int) [][]float64 {
	n := len(ids)
	adjacency := make([][]int, n)
	for _, edge := range network.Edges() {
		i, j := index[edge.Source], index[edge.Target]
		adjacency[i] = append(adjacency[i], j)
		adjacency[j] = append(adjacency[j], i)
	}

	dist := make([][]float64, n)
	maxDist := 1.0
	for s := 0; s < n; s++ {
		row := make([]float64, n)
		for i := range row {
			row[i] = -1
		}
		row[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adjacency[cur] {
				if row[nb] < 0 {
					row[nb] = row[cur] + 1
					if row[nb] > maxDist {
						maxDist = row[nb]
					}
					queue = append(queue, nb)
				}
			}
		}
		dist[s] = row
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && dist[i][j] < 0 {
				dist[i][j] = maxDist + 1
			}
		}
	}
	return dist
}
