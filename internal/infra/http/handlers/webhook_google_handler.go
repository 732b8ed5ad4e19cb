package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/http/middleware"
	"github.com/raviminds/estate-crm/internal/usecase"
)

type GoogleWebhookHandler struct {
	UC     *usecase.GoogleWebhookUseCase
	Logger *zap.Logger
}

func NewGoogleWebhookHandler(uc *usecase.GoogleWebhookUseCase, logger *zap.Logger) *GoogleWebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleWebhookHandler{UC: uc, Logger: logger}
}

// Deliver handles POST /webhooks/google?pageId=. Google retries on 5xx, so
// anything past company lookup acks 200 and the miss is handled internally.
func (h *GoogleWebhookHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	pageID := r.URL.Query().Get("pageId")
	if pageID == "" {
		middleware.RecordWebhookEvent("google", "rejected")
		writeError(w, http.StatusBadRequest, "pageId query parameter is required")
		return
	}

	var input usecase.GoogleLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.RecordWebhookEvent("google", "malformed")
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := h.UC.ProcessSubmission(r.Context(), pageID, input); err != nil {
		if errors.Is(err, entity.ErrCompanyNotFound) {
			middleware.RecordWebhookEvent("google", "unknown_page")
			writeError(w, http.StatusNotFound, "no company registered for this page")
			return
		}
		h.Logger.Error("google submission failed", zap.String("page_id", pageID), zap.Error(err))
		middleware.RecordWebhookEvent("google", "error")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	middleware.RecordWebhookEvent("google", "processed")
	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}
