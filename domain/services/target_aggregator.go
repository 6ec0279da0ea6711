package services

import (
	"sort"

	"herbnet/domain/core/entities"
)

// CompoundTargetEdge is one edge of the compound-target bipartite projection
type CompoundTargetEdge struct {
	Compound string
	Target   entities.Target
}

// AggregationResult carries the per-herb and combined target sets plus the
// bipartite edge list consumed by enrichment and network construction.
type AggregationResult struct {
	PerHerb  map[string]entities.TargetSet
	Combined entities.TargetSet
	Edges    []CompoundTargetEdge
}

// TargetAggregator builds the compound-target bipartite projection and the
// derived target sets from the filtered compounds of each herb.
type TargetAggregator struct{}

// NewTargetAggregator creates a target aggregator
func NewTargetAggregator() *TargetAggregator {
	return &TargetAggregator{}
}

// Aggregate derives per-herb target sets, the combined (deduplicated) target
// set, and the compound-target edge list. An empty input yields an empty
// result, never an error — no active compounds is a reportable outcome.
func (a *TargetAggregator) Aggregate(filtered map[string][]entities.Compound) *AggregationResult {
	result := &AggregationResult{
		PerHerb:  make(map[string]entities.TargetSet, len(filtered)),
		Combined: make(entities.TargetSet),
	}

	// Iterate herbs in lexical order so the edge list is deterministic
	herbs := make([]string, 0, len(filtered))
	for name := range filtered {
		herbs = append(herbs, name)
	}
	sort.Strings(herbs)

	seen := make(map[CompoundTargetEdge]bool)
	for _, herb := range herbs {
		herbTargets := make(entities.TargetSet)
		for _, compound := range filtered[herb] {
			for _, target := range compound.Targets() {
				herbTargets.Add(target)
				result.Combined.Add(target)

				edge := CompoundTargetEdge{Compound: compound.Name(), Target: target}
				if !seen[edge] {
					seen[edge] = true
					result.Edges = append(result.Edges, edge)
				}
			}
		}
		result.PerHerb[herb] = herbTargets
	}

	return result
}
