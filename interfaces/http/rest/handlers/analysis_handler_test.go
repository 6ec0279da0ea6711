package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appservices "herbnet/application/services"
	"herbnet/infrastructure/persistence/memory"
	"herbnet/pkg/api"
)

func newTestHandler(t *testing.T) *AnalysisHandler {
	t.Helper()
	service := appservices.NewAnalysisService(memory.NewSeededDataSource(), nil, t.TempDir(), zap.NewNop(), nil)
	return NewAnalysisHandler(service, zap.NewNop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeTargets_OK(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.AnalyzeTargets, api.AnalysisRequest{Herbs: []string{"Astragalus"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Astragalus"}, resp.HerbsAnalyzed)
	assert.Greater(t, resp.TotalTargets, 0)
}

func TestAnalyzeTargets_ValidationRejectsEmptyBatch(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.AnalyzeTargets, api.AnalysisRequest{Herbs: []string{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PARAMETER", resp.Code)
}

func TestAnalyzeTargets_MalformedJSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.AnalyzeTargets(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeTargets_UnknownHerbsAre404(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.AnalyzeTargets, api.AnalysisRequest{Herbs: []string{"Moonflower"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
}

func TestAnalyzeTargets_ThresholdOutOfRange(t *testing.T) {
	h := newTestHandler(t)

	bad := 150.0
	rec := postJSON(t, h.AnalyzeTargets, api.AnalysisRequest{
		Herbs:       []string{"Astragalus"},
		OBThreshold: &bad,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHerbSimilarity_OK(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HerbSimilarity, api.SimilarityRequest{
		Herbs: []string{"Astragalus", "Licorice"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SimilarityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "combined", resp.Method)
	assert.Len(t, resp.Pairs, 1)
}

func TestHerbSimilarity_SingleHerbRejected(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HerbSimilarity, api.SimilarityRequest{Herbs: []string{"Astragalus"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildNetwork_OK(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.BuildNetwork, api.NetworkRequest{
		Herbs:  []string{"Astragalus"},
		Layout: "circular",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.NetworkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.NodeCount, 0)
	assert.Len(t, resp.Positions, resp.NodeCount)
	assert.NotEmpty(t, resp.Artifacts)
}

func TestBuildNetwork_UnknownLayout(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.BuildNetwork, api.NetworkRequest{
		Herbs:  []string{"Astragalus"},
		Layout: "hexagonal",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
