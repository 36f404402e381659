package handler

import (
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxWebhookBody caps callback bodies well above anything the gateway sends.
const maxWebhookBody = 64 << 10

// WebhookHandler receives gateway callbacks. The contract with the gateway is
// strict: always HTTP 200 with the ack body, or the gateway redelivers.
type WebhookHandler struct {
	processor ports.WebhookProcessor
	log       zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(processor ports.WebhookProcessor, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{processor: processor, log: log}
}

// Receive handles POST /webhooks/:event_type.
func (h *WebhookHandler) Receive(c *gin.Context) {
	eventType := c.Param("event_type")
	if eventType != domain.EventTypeAuthorization && eventType != domain.EventTypeCharge {
		c.String(http.StatusNotFound, "0|UnknownEventType")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.log.Warn().Err(err).Str("event_type", eventType).Msg("failed to read webhook body")
		c.String(http.StatusOK, "0|ReadError")
		return
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		h.log.Warn().Err(err).Str("event_type", eventType).Msg("malformed webhook body")
		c.String(http.StatusOK, "0|ParseError")
		return
	}

	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}

	ack, err := h.processor.Process(c.Request.Context(), ports.InboundWebhook{
		EventType:  eventType,
		Fields:     fields,
		RawHeaders: flattenHeaders(c.Request.Header),
		RawBody:    string(body),
		SourceIP:   c.ClientIP(),
	})
	if err != nil {
		// Still 200 with the ack: processing errors are retried internally,
		// never surfaced as a delivery failure.
		h.log.Error().Err(err).Str("event_type", eventType).Msg("webhook processing error")
	}

	c.String(http.StatusOK, ack)
}

func flattenHeaders(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(strings.Join(h[k], ", "))
		b.WriteString("\n")
	}
	return b.String()
}
