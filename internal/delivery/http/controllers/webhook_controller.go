package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"convitepro/internal/domain"
)

// WebhookController receives payment notifications from Mercado Libre. Its
// responses are raw JSON ({"ok":true} / {"error":...}) rather than the API
// envelope: the consumer is the provider's delivery system, not our frontend.
type WebhookController struct {
	Logger  *slog.Logger
	Service domain.PurchaseService
}

func NewWebhookController(logger *slog.Logger, svc domain.PurchaseService) *WebhookController {
	return &WebhookController{
		Logger:  logger,
		Service: svc,
	}
}

// webhookNotification covers both notification shapes Mercado Libre sends:
// the IPN form ({"resource": ".../payments/123", "topic": "payment"}) and the
// webhook form ({"action": "payment.created", "data": {"id": "123"}}).
type webhookNotification struct {
	Resource string `json:"resource"`
	Topic    string `json:"topic"`
	Action   string `json:"action"`
	Type     string `json:"type"`
	Data     struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// paymentID extracts the payment id from whichever notification shape was
// sent. Returns "" when the notification carries none, or is not about a
// payment.
func (n *webhookNotification) paymentID() string {
	if id := n.Data.ID.String(); id != "" {
		return id
	}
	if n.Resource == "" {
		return ""
	}
	if n.Topic != "" && n.Topic != "payment" {
		return ""
	}
	trimmed := strings.TrimSuffix(n.Resource, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func writeWebhookJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeWebhookError(w http.ResponseWriter, status int, message string) {
	writeWebhookJSON(w, status, map[string]string{"error": message})
}

// setCORSHeaders mirrors the permissive headers the provider's test console
// expects when probing the endpoint.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// Preflight handles OPTIONS probes with 204 and CORS headers.
func (c *WebhookController) Preflight(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// Health godoc
// @Summary Webhook health probe
// @Description Returns {"status":"ok"}. Used by the payment provider to verify the endpoint is reachable.
// @Tags webhooks
// @Produce json
// @Success 200 {object} map[string]string
// @Router /webhooks/mercadolibre [get]
func (c *WebhookController) Health(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	writeWebhookJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleNotification godoc
// @Summary Receive a payment notification
// @Description Accepts Mercado Libre IPN/webhook payloads. For payment notifications the payment is fetched from the provider API; an approved purchase of the product mints a single-use creation token. Redeliveries of the same payment are acknowledged without minting again.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param notification body webhookNotification true "Provider notification"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /webhooks/mercadolibre [post]
func (c *WebhookController) HandleNotification(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	var n webhookNotification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	paymentID := n.paymentID()
	if paymentID == "" {
		// Merchant-order and other non-payment topics are acknowledged so the
		// provider stops redelivering them.
		if n.Topic != "" && n.Topic != "payment" {
			c.Logger.InfoContext(r.Context(), "webhook ignored", "topic", n.Topic)
			writeWebhookJSON(w, http.StatusOK, map[string]bool{"ok": true})
			return
		}
		writeWebhookError(w, http.StatusBadRequest, "missing payment id")
		return
	}

	result, err := c.Service.ProcessNotification(r.Context(), paymentID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "webhook processing failed", "payment_id", paymentID, "err", err)
		switch {
		case errors.Is(err, domain.ErrMissingCredential):
			writeWebhookError(w, http.StatusInternalServerError, "payment provider credential not configured")
		case errors.Is(err, domain.ErrGatewayFailure):
			writeWebhookError(w, http.StatusBadGateway, "payment lookup failed")
		default:
			writeWebhookError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.Logger.InfoContext(r.Context(), "webhook processed", "payment_id", paymentID, "outcome", result.Outcome)
	writeWebhookJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
