package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domaincfg "herbnet/domain/config"
	"herbnet/infrastructure/persistence/memory"
	"herbnet/pkg/api"
	pkgerrors "herbnet/pkg/errors"
)

func newTestService(t *testing.T) *AnalysisService {
	t.Helper()
	return NewAnalysisService(memory.NewSeededDataSource(), nil, t.TempDir(), zap.NewNop(), nil)
}

func f64(v float64) *float64 { return &v }

func TestAnalyzeTargets_SingleHerbDefaults(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs: []string{"Astragalus"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Astragalus"}, resp.HerbsAnalyzed)
	assert.Empty(t, resp.MissingHerbs)
	assert.Equal(t, 30.0, resp.OBThreshold)
	assert.Equal(t, 0.18, resp.DLThreshold)
	// Astragaloside IV fails both thresholds; the other three pass
	assert.Equal(t, 3, resp.ActiveCompounds)
	assert.Equal(t, 8, resp.TotalTargets)
	assert.Contains(t, resp.Targets, "TNF")
	assert.NotContains(t, resp.Targets, "AKT1") // only reachable via the filtered compound
	assert.NotEmpty(t, resp.Pathways)
	assert.Nil(t, resp.DiseaseIntersection)

	// Enrichment table is ranked
	for i := 1; i < len(resp.Pathways); i++ {
		assert.LessOrEqual(t, resp.Pathways[i-1].PValue, resp.Pathways[i].PValue)
	}
}

func TestAnalyzeTargets_CustomThresholdsChangeSelection(t *testing.T) {
	svc := newTestService(t)

	permissive, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs:       []string{"Astragalus"},
		OBThreshold: f64(0),
		DLThreshold: f64(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, permissive.ActiveCompounds)
	assert.Contains(t, permissive.Targets, "AKT1")

	strict, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs:       []string{"Astragalus"},
		OBThreshold: f64(99),
		DLThreshold: f64(0.99),
	})
	require.NoError(t, err)
	assert.Zero(t, strict.ActiveCompounds)
	assert.Zero(t, strict.TotalTargets)
	assert.Empty(t, strict.Pathways)
}

func TestAnalyzeTargets_DiseaseIntersection(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs:   []string{"Astragalus"},
		Disease: "Inflammation",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.DiseaseIntersection)
	di := resp.DiseaseIntersection
	assert.Equal(t, "Inflammation", di.Disease)
	assert.Equal(t, "GeneCards", di.Source)
	// Astragalus covers TNF, IL6, PTGS2, NOS2 out of the 5 disease targets
	assert.ElementsMatch(t, []string{"IL6", "NOS2", "PTGS2", "TNF"}, di.CommonTargets)
	assert.Equal(t, 4, di.CommonCount)
	assert.Equal(t, 5, di.DiseaseCount)
	assert.InDelta(t, 80.0, di.CoverageRate, 1e-9)
}

func TestAnalyzeTargets_SkipsUnknownHerbs(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs: []string{"Astragalus", "Moonflower"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Astragalus"}, resp.HerbsAnalyzed)
	assert.Equal(t, []string{"Moonflower"}, resp.MissingHerbs)
}

func TestAnalyzeTargets_AllHerbsUnknown(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs: []string{"Moonflower", "Stardust"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestAnalyzeTargets_InvalidThresholds(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs:       []string{"Astragalus"},
		OBThreshold: f64(150),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidParameter(err))
}

func TestAnalyzeTargets_UnknownDisease(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs:   []string{"Astragalus"},
		Disease: "Unknown disease",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestHerbSimilarity(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.HerbSimilarity(context.Background(), api.SimilarityRequest{
		Herbs:  []string{"Astragalus", "Licorice", "Salvia"},
		Method: "jaccard_targets",
	})
	require.NoError(t, err)

	assert.Equal(t, "jaccard_targets", resp.Method)
	assert.Len(t, resp.Herbs, 3)
	require.Len(t, resp.Matrix, 3)
	require.Len(t, resp.Pairs, 3)

	for i := range resp.Matrix {
		assert.InDelta(t, 1.0, resp.Matrix[i][i], 1e-9)
		for j := range resp.Matrix[i] {
			assert.Equal(t, resp.Matrix[i][j], resp.Matrix[j][i])
		}
	}

	require.NotNil(t, resp.MostSimilar)
	require.NotNil(t, resp.LeastSimilar)
	assert.GreaterOrEqual(t, resp.MostSimilar.Similarity, resp.LeastSimilar.Similarity)
}

func TestHerbSimilarity_NeedsTwoResolvableHerbs(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.HerbSimilarity(context.Background(), api.SimilarityRequest{
		Herbs: []string{"Astragalus", "Moonflower"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidParameter(err))
}

func TestHerbSimilarity_UnknownMethod(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.HerbSimilarity(context.Background(), api.SimilarityRequest{
		Herbs:  []string{"Astragalus", "Licorice"},
		Method: "cosine",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidParameter(err))
}

func TestBuildNetwork(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.BuildNetwork(context.Background(), api.NetworkRequest{
		Herbs:   []string{"Astragalus", "Salvia"},
		Disease: "Inflammation",
		Layout:  "circular",
	})
	require.NoError(t, err)

	assert.Equal(t, "circular", resp.Layout)
	assert.Equal(t, len(resp.Nodes), resp.NodeCount)
	assert.Equal(t, len(resp.Edges), resp.EdgeCount)
	assert.Len(t, resp.Positions, resp.NodeCount)
	assert.Zero(t, resp.DroppedTargets)

	require.Len(t, resp.Artifacts, 1)
	artifact := resp.Artifacts[0]
	assert.Equal(t, "png", artifact.Format)
	info, err := os.Stat(artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), artifact.SizeBytes)
	assert.Greater(t, artifact.SizeBytes, int64(0))
}

func TestBuildNetwork_BothFormats(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.BuildNetwork(context.Background(), api.NetworkRequest{
		Herbs:        []string{"Ginseng"},
		Layout:       "shell",
		OutputFormat: "both",
	})
	require.NoError(t, err)

	require.Len(t, resp.Artifacts, 2)
	assert.Equal(t, "png", resp.Artifacts[0].Format)
	assert.Equal(t, "svg", resp.Artifacts[1].Format)
}

func TestBuildNetwork_TruncationReported(t *testing.T) {
	svc := newTestService(t)

	maxNodes := 8
	resp, err := svc.BuildNetwork(context.Background(), api.NetworkRequest{
		Herbs:    []string{"Astragalus", "Salvia"},
		MaxNodes: &maxNodes,
	})
	require.NoError(t, err)
	assert.Greater(t, resp.DroppedTargets, 0)
	assert.LessOrEqual(t, resp.NodeCount, maxNodes)
}

func TestReloadDefaults_ChangesThresholds(t *testing.T) {
	svc := newTestService(t)

	next := domaincfg.DefaultDomainConfig()
	next.DefaultOBThreshold = 60
	next.DefaultDLThreshold = 0.3
	svc.ReloadDefaults(next)

	resp, err := svc.AnalyzeTargets(context.Background(), api.AnalysisRequest{
		Herbs: []string{"Astragalus"},
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.OBThreshold)
	assert.Equal(t, 0.3, resp.DLThreshold)
	// No Astragalus compound clears OB 60 and DL 0.3 together
	assert.Zero(t, resp.ActiveCompounds)
}

func TestBuildNetwork_InvalidLayout(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.BuildNetwork(context.Background(), api.NetworkRequest{
		Herbs:  []string{"Astragalus"},
		Layout: "force-directed",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidParameter(err))
}
