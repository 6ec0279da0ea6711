package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appservices "herbnet/application/services"
	"herbnet/pkg/api"
	pkgerrors "herbnet/pkg/errors"
)

// AnalysisHandler serves the analysis, similarity, and network endpoints
type AnalysisHandler struct {
	service  *appservices.AnalysisService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAnalysisHandler creates the handler
func NewAnalysisHandler(service *appservices.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// AnalyzeTargets handles POST /api/v1/analysis
func (h *AnalysisHandler) AnalyzeTargets(w http.ResponseWriter, r *http.Request) {
	var req api.AnalysisRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.AnalyzeTargets(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HerbSimilarity handles POST /api/v1/similarity
func (h *AnalysisHandler) HerbSimilarity(w http.ResponseWriter, r *http.Request) {
	var req api.SimilarityRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.HerbSimilarity(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// BuildNetwork handles POST /api/v1/network
func (h *AnalysisHandler) BuildNetwork(w http.ResponseWriter, r *http.Request) {
	var req api.NetworkRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.service.BuildNetwork(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// decode parses and validates the request body, answering 400 on failure
func (h *AnalysisHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error: "invalid JSON body: " + err.Error(),
			Code:  string(pkgerrors.ErrorTypeInvalidParameter),
		})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error: "invalid request: " + err.Error(),
			Code:  string(pkgerrors.ErrorTypeInvalidParameter),
		})
		return false
	}
	return true
}

// writeError maps application errors onto HTTP status codes
func (h *AnalysisHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case pkgerrors.IsInvalidParameter(err):
		status = http.StatusBadRequest
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
	case pkgerrors.IsDataSourceTimeout(err):
		status = http.StatusGatewayTimeout
	case pkgerrors.IsLayout(err):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}

	h.writeJSON(w, status, api.ErrorResponse{
		Error: err.Error(),
		Code:  string(pkgerrors.TypeOf(err)),
	})
}

func (h *AnalysisHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}
