package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbnet/domain/core/entities"
)

func mustPathway(t *testing.T, id, name string, genes ...entities.Target) entities.Pathway {
	t.Helper()
	p, err := entities.NewPathway(id, name, genes)
	require.NoError(t, err)
	return p
}

func TestEnrichmentEngine_RanksByPValue(t *testing.T) {
	catalog := []entities.Pathway{
		mustPathway(t, "hsa04668", "TNF signaling pathway", "TNF", "IL6", "AKT1", "CASP3"),
		mustPathway(t, "hsa04151", "PI3K-Akt signaling pathway", "AKT1", "EGFR", "VEGFA", "TP53", "MAPK1", "PIK3CA"),
		mustPathway(t, "hsa00590", "Arachidonic acid metabolism", "PTGS2", "ALOX5"),
	}
	targets := entities.NewTargetSet("TNF", "IL6", "AKT1", "CASP3")

	enriched := NewEnrichmentEngine().Enrich(targets, catalog)
	require.Len(t, enriched, 2) // arachidonic pathway has no overlap

	// The fully-covered TNF pathway must rank above the PI3K pathway,
	// which shares only AKT1.
	assert.Equal(t, "hsa04668", enriched[0].Pathway.ID())
	assert.Equal(t, 4, enriched[0].Overlap)
	assert.Equal(t, "hsa04151", enriched[1].Pathway.ID())
	assert.Equal(t, 1, enriched[1].Overlap)
	assert.Less(t, enriched[0].PValue, enriched[1].PValue)
}

func TestEnrichmentEngine_PValuesAreProbabilities(t *testing.T) {
	catalog := []entities.Pathway{
		mustPathway(t, "hsa04210", "Apoptosis", "CASP3", "TP53", "BCL2"),
		mustPathway(t, "hsa04064", "NF-kappa B signaling pathway", "TNF", "IL6", "BCL2"),
	}
	targets := entities.NewTargetSet("CASP3", "TNF", "BCL2")

	for _, row := range NewEnrichmentEngine().Enrich(targets, catalog) {
		assert.Greater(t, row.PValue, 0.0)
		assert.LessOrEqual(t, row.PValue, 1.0)
		assert.Equal(t, len(row.Genes), row.Overlap)
	}
}

func TestEnrichmentEngine_FullOverlapSmallUniverse(t *testing.T) {
	// With a single pathway the universe equals its gene set, so every
	// draw is a hit and the upper tail is exactly 1.
	catalog := []entities.Pathway{
		mustPathway(t, "hsa04020", "Calcium signaling pathway", "NOS3", "ADRB2"),
	}
	targets := entities.NewTargetSet("NOS3", "ADRB2")

	enriched := NewEnrichmentEngine().Enrich(targets, catalog)
	require.Len(t, enriched, 1)
	assert.InDelta(t, 1.0, enriched[0].PValue, 1e-9)
	assert.Equal(t, []entities.Target{"ADRB2", "NOS3"}, enriched[0].Genes)
}

func TestEnrichmentEngine_EmptyInputs(t *testing.T) {
	catalog := []entities.Pathway{
		mustPathway(t, "hsa04210", "Apoptosis", "CASP3"),
	}

	assert.Empty(t, NewEnrichmentEngine().Enrich(entities.NewTargetSet(), catalog))
	assert.Empty(t, NewEnrichmentEngine().Enrich(entities.NewTargetSet("CASP3"), nil))
	// Targets entirely outside the universe cannot be enriched
	assert.Empty(t, NewEnrichmentEngine().Enrich(entities.NewTargetSet("UNKNOWN"), catalog))
}

func TestEnrichmentEngine_TieBreaksAreDeterministic(t *testing.T) {
	// Two identical pathways under different ids tie on p-value and
	// overlap; the id ascending tie-break must order them.
	catalog := []entities.Pathway{
		mustPathway(t, "hsa09999", "Copy B", "TNF", "IL6"),
		mustPathway(t, "hsa00001", "Copy A", "TNF", "IL6"),
	}
	targets := entities.NewTargetSet("TNF")

	enriched := NewEnrichmentEngine().Enrich(targets, catalog)
	require.Len(t, enriched, 2)
	assert.Equal(t, "hsa00001", enriched[0].Pathway.ID())
	assert.Equal(t, "hsa09999", enriched[1].Pathway.ID())
}

func TestHypergeomUpperTail(t *testing.T) {
	tests := []struct {
		name       string
		N, K, n, k int
		want       float64
	}{
		// P(X >= 1) with N=4, K=2, n=2: 1 - C(2,2)/C(4,2) = 1 - 1/6
		{name: "at least one hit", N: 4, K: 2, n: 2, k: 1, want: 5.0 / 6.0},
		// P(X >= 2) with N=4, K=2, n=2: C(2,2)/C(4,2) = 1/6
		{name: "all hits", N: 4, K: 2, n: 2, k: 2, want: 1.0 / 6.0},
		// k = 0 covers the whole support
		{name: "zero threshold", N: 10, K: 3, n: 4, k: 0, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hypergeomUpperTail(tt.N, tt.K, tt.n, tt.k)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}
