package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/apperrors"
	"github.com/aquasense/aquasense-engine/pkg/models"
)

type mockChatService struct {
	answer       *models.Answer
	err          error
	lastQuestion string
}

func (m *mockChatService) Ask(ctx context.Context, question string) (*models.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func newAskMux(chat *mockChatService) *http.ServeMux {
	mux := http.NewServeMux()
	NewAskHandler(chat, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestAsk(t *testing.T) {
	chat := &mockChatService{answer: &models.Answer{Text: "네, 찾았습니다!", RowsMatched: 1}}
	mux := newAskMux(chat)

	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question":"분류코드 2001G027에서의 FAI값"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "분류코드 2001G027에서의 FAI값", chat.lastQuestion)

	var answer models.Answer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
	assert.Equal(t, "네, 찾았습니다!", answer.Text)
	assert.Equal(t, 1, answer.RowsMatched)
}

func TestAskValidation(t *testing.T) {
	mux := newAskMux(&mockChatService{})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader("not json"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty question", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"  "}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAskErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		errorCode string
	}{
		{"no dataset", apperrors.ErrNoDataset, http.StatusNotFound, "no_dataset"},
		{"store unavailable", apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newAskMux(&mockChatService{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"FAI값"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.errorCode, body["error"])
		})
	}
}
