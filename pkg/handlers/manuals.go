package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/manual"
)

// ManualSearchRequest is a free-text situation description.
type ManualSearchRequest struct {
	Query string `json:"query"`
}

// ManualHandler serves emergency-response manual search.
type ManualHandler struct {
	searcher *manual.Searcher
	logger   *zap.Logger
}

// NewManualHandler creates a new ManualHandler.
func NewManualHandler(searcher *manual.Searcher, logger *zap.Logger) *ManualHandler {
	return &ManualHandler{searcher: searcher, logger: logger}
}

// RegisterRoutes registers manual routes on the given mux.
func (h *ManualHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/manuals/search", h.Search)
}

// Search handles POST /api/manuals/search.
func (h *ManualHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req ManualSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "query must not be empty")
		return
	}

	docs := h.searcher.Search(req.Query)
	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"manuals": docs,
		"count":   len(docs),
	}); err != nil {
		h.logger.Error("Failed to encode manual search response", zap.Error(err))
	}
}
