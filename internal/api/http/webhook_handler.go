package http

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"prorentals-backend/internal/gateway/asaas"
	"prorentals-backend/internal/gateway/lalamove"
	"prorentals-backend/internal/logger"
	"prorentals-backend/internal/service"
)

// WebhookHandler receives gateway callbacks. The sender is authenticated
// before any payload is trusted: Asaas via its access-token header, Lalamove
// via the request signature.
type WebhookHandler struct {
	webhooks        service.WebhookService
	asaasToken      string
	lalamoveSecret  string
	maxWebhookBytes int64
}

func NewWebhookHandler(webhooks service.WebhookService, asaasToken, lalamoveSecret string) *WebhookHandler {
	return &WebhookHandler{
		webhooks:        webhooks,
		asaasToken:      asaasToken,
		lalamoveSecret:  lalamoveSecret,
		maxWebhookBytes: 1 << 20,
	}
}

func (h *WebhookHandler) HandleAsaas(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("asaas-access-token")
	if h.asaasToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(h.asaasToken)) != 1 {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid webhook token"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxWebhookBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unreadable body"})
		return
	}

	var event asaas.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON payload"})
		return
	}

	if err := h.webhooks.ProcessAsaasEvent(r.Context(), &event, body); err != nil {
		logger.Error("Failed to process payment webhook", "event", event.Event, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to process event"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *WebhookHandler) HandleLalamove(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxWebhookBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unreadable body"})
		return
	}

	var payload lalamove.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON payload"})
		return
	}

	signature := r.Header.Get("X-Request-Signature")
	if h.lalamoveSecret == "" ||
		!lalamove.VerifyWebhookSignature(h.lalamoveSecret, payload.Timestamp, body, signature) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid signature"})
		return
	}

	if err := h.webhooks.ProcessLalamoveEvent(r.Context(), &payload, body); err != nil {
		logger.Error("Failed to process delivery webhook", "event", payload.EventType, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to process event"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
