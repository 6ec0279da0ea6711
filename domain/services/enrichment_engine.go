package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"herbnet/domain/core/entities"
)

// EnrichedPathway is one row of the ranked enrichment table
type EnrichedPathway struct {
	Pathway entities.Pathway
	PValue  float64
	Overlap int
	Genes   []entities.Target // overlapping genes, lexical order
}

// EnrichmentEngine tests a target set for over-representation in each
// pathway of a catalog using a one-tailed hypergeometric test over the
// catalog's gene universe.
type EnrichmentEngine struct{}

// NewEnrichmentEngine creates an enrichment engine
func NewEnrichmentEngine() *EnrichmentEngine {
	return &EnrichmentEngine{}
}

// Enrich ranks the catalog's pathways by significance against the target
// set. Pathways with zero overlap are excluded. The ranking is a total
// order: p-value ascending, overlap descending, pathway id ascending.
// An empty target set yields an empty table.
func (e *EnrichmentEngine) Enrich(targets entities.TargetSet, catalog []entities.Pathway) []EnrichedPathway {
	if targets.Len() == 0 || len(catalog) == 0 {
		return nil
	}

	// Universe: every gene appearing in any catalog pathway
	universe := make(entities.TargetSet)
	for _, p := range catalog {
		for g := range p.Genes() {
			universe.Add(g)
		}
	}

	// Draws are targets actually present in the universe; targets the
	// catalog has never seen cannot contribute to any overlap.
	sample := targets.Intersect(universe)
	if sample.Len() == 0 {
		return nil
	}

	var enriched []EnrichedPathway
	for _, p := range catalog {
		overlap := sample.Intersect(p.Genes())
		if overlap.Len() == 0 {
			continue
		}

		enriched = append(enriched, EnrichedPathway{
			Pathway: p,
			PValue:  hypergeomUpperTail(universe.Len(), p.Size(), sample.Len(), overlap.Len()),
			Overlap: overlap.Len(),
			Genes:   overlap.Sorted(),
		})
	}

	sort.Slice(enriched, func(i, j int) bool {
		if enriched[i].PValue != enriched[j].PValue {
			return enriched[i].PValue < enriched[j].PValue
		}
		if enriched[i].Overlap != enriched[j].Overlap {
			return enriched[i].Overlap > enriched[j].Overlap
		}
		return enriched[i].Pathway.ID() < enriched[j].Pathway.ID()
	})

	return enriched
}

// hypergeomUpperTail computes P(X >= k) for X ~ Hypergeometric(N, K, n):
// drawing n targets from a universe of N genes of which K belong to the
// pathway. Terms are evaluated in log space to stay stable for large
// catalogs, then summed.
func hypergeomUpperTail(N, K, n, k int) float64 {
	upper := K
	if n < K {
		upper = n
	}
	if k > upper {
		return 0
	}

	terms := make([]float64, 0, upper-k+1)
	for i := k; i <= upper; i++ {
		if n-i > N-K {
			continue // impossible draw
		}
		logTerm := logChoose(K, i) + logChoose(N-K, n-i) - logChoose(N, n)
		terms = append(terms, math.Exp(logTerm))
	}

	p := floats.Sum(terms)
	if p > 1 {
		p = 1
	}
	return p
}

// logChoose is log(C(n, k)) via the log-gamma function
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
