package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/services"
)

// AskRequest is one natural-language question.
type AskRequest struct {
	Question string `json:"question"`
}

// AskHandler answers natural-language questions over the dataset.
type AskHandler struct {
	chat   services.ChatService
	logger *zap.Logger
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(chat services.ChatService, logger *zap.Logger) *AskHandler {
	return &AskHandler{chat: chat, logger: logger}
}

// RegisterRoutes registers the ask route on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.Ask)
}

// Ask handles POST /api/ask.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "question must not be empty")
		return
	}

	answer, err := h.chat.Ask(r.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoDataset):
			_ = ErrorResponse(w, http.StatusNotFound, "no_dataset", "no dataset has been uploaded yet")
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			_ = ErrorResponse(w, http.StatusServiceUnavailable, "store_unavailable", "dataset store is unreachable and no cached dataset exists")
		default:
			h.logger.Error("Failed to answer question", zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to answer question")
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, answer); err != nil {
		h.logger.Error("Failed to encode answer", zap.Error(err))
	}
}
