package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/infra/http/middleware"
	"github.com/raviminds/estate-crm/internal/usecase"
)

type MetaWebhookHandler struct {
	UC          *usecase.MetaWebhookUseCase
	VerifyToken string
	Logger      *zap.Logger
}

func NewMetaWebhookHandler(uc *usecase.MetaWebhookUseCase, verifyToken string, logger *zap.Logger) *MetaWebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWebhookHandler{UC: uc, VerifyToken: verifyToken, Logger: logger}
}

// Verify handles the GET subscription handshake: echo hub.challenge as plain
// text when mode and token match, refuse otherwise.
func (h *MetaWebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token != "" && token == h.VerifyToken {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	h.Logger.Warn("webhook verification refused", zap.String("mode", mode))
	writeError(w, http.StatusForbidden, "verification failed")
}

// Deliver handles the POST leadgen push. The platform redelivers on any
// non-2xx, so this always acks 200; failures are audited inside the usecase.
func (h *MetaWebhookHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	var payload usecase.MetaWebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.Logger.Warn("undecodable leadgen payload", zap.Error(err))
		middleware.RecordWebhookEvent("meta", "malformed")
		writeJSON(w, http.StatusOK, map[string]any{"received": true})
		return
	}

	h.UC.ProcessDelivery(r.Context(), payload)
	middleware.RecordWebhookEvent("meta", "processed")

	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}
