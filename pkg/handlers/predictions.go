package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/prediction"
)

// PredictionHandler serves next-period forecasts per monitoring location.
type PredictionHandler struct {
	forecaster *prediction.Forecaster
	logger     *zap.Logger
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(forecaster *prediction.Forecaster, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{forecaster: forecaster, logger: logger}
}

// RegisterRoutes registers prediction routes on the given mux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/predictions/{location}", h.Forecast)
}

// Forecast handles GET /api/predictions/{location}.
func (h *PredictionHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.PathValue("location"))
	if location == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "location must not be empty")
		return
	}

	p := h.forecaster.Forecast(r.Context(), location)
	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"prediction": p,
		"summary":    prediction.FormatPrediction(p),
	}); err != nil {
		h.logger.Error("Failed to encode prediction response", zap.Error(err))
	}
}
