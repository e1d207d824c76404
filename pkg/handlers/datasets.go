package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/services"
)

// IngestRequest is a parsed spreadsheet upload: an ordered sequence of
// flat records plus optional explicit column order.
type IngestRequest struct {
	Filename string          `json:"filename"`
	Columns  []string        `json:"columns,omitempty"`
	Rows     []models.Record `json:"rows"`
}

// IngestResponse reports what was stored.
type IngestResponse struct {
	BatchID  string   `json:"batch_id"`
	Filename string   `json:"filename"`
	Rows     int      `json:"rows"`
	Columns  []string `json:"columns"`
}

// DatasetHandler manages dataset ingestion and lifecycle endpoints.
type DatasetHandler struct {
	ingest services.IngestService
	logger *zap.Logger
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(ingest services.IngestService, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{ingest: ingest, logger: logger}
}

// RegisterRoutes registers dataset routes on the given mux.
func (h *DatasetHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/datasets", h.Ingest)
	mux.HandleFunc("DELETE /api/datasets", h.DeleteAll)
	mux.HandleFunc("GET /api/datasets/columns", h.Columns)
}

// Ingest handles POST /api/datasets.
func (h *DatasetHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}

	batch, err := h.ingest.Ingest(r.Context(), req.Filename, req.Columns, req.Rows)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyUpload) {
			_ = ErrorResponse(w, http.StatusBadRequest, "empty_upload", "rows must not be empty")
			return
		}
		h.logger.Error("Failed to ingest dataset", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to ingest dataset")
		return
	}

	resp := IngestResponse{
		BatchID:  batch.BatchID.String(),
		Filename: batch.Filename,
		Rows:     len(batch.Rows),
		Columns:  batch.Columns,
	}
	if err := WriteJSON(w, http.StatusCreated, resp); err != nil {
		h.logger.Error("Failed to encode ingest response", zap.Error(err))
	}
}

// DeleteAll handles DELETE /api/datasets.
func (h *DatasetHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.ingest.DeleteAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to delete dataset", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to delete dataset")
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted}); err != nil {
		h.logger.Error("Failed to encode delete response", zap.Error(err))
	}
}

// Columns handles GET /api/datasets/columns.
func (h *DatasetHandler) Columns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.ingest.Columns(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoDataset) {
			_ = ErrorResponse(w, http.StatusNotFound, "no_dataset", "no dataset has been uploaded yet")
			return
		}
		h.logger.Error("Failed to fetch columns", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to fetch columns")
		return
	}
	if err := WriteJSON(w, http.StatusOK, map[string][]string{"columns": columns}); err != nil {
		h.logger.Error("Failed to encode columns response", zap.Error(err))
	}
}
