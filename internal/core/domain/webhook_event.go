package domain

import (
	"time"

	"github.com/google/uuid"
)

// Webhook event types delivered by the gateway.
const (
	EventTypeAuthorization = "authorization" // Card binding result + first charge
	EventTypeCharge        = "charge"        // Gateway-initiated recurring charge result
)

// WebhookProcessingStatus is the internal processing state of an inbound callback.
type WebhookProcessingStatus string

const (
	WebhookProcessingReceived   WebhookProcessingStatus = "received"
	WebhookProcessingProcessing WebhookProcessingStatus = "processing"
	WebhookProcessingSucceeded  WebhookProcessingStatus = "succeeded"
	WebhookProcessingFailed     WebhookProcessingStatus = "failed"
)

// WebhookEvent is the append-only audit record of one logical inbound callback.
// (EventType, ExternalRef) is unique; a duplicate delivery bumps DeliveryCount
// on the existing row instead of creating a second logical event.
type WebhookEvent struct {
	ID              uuid.UUID               `json:"id"`
	EventType       string                  `json:"event_type"`
	ExternalRef     string                  `json:"external_ref"` // Gateway trade/transaction reference
	RawHeaders      string                  `json:"raw_headers"`  // For replay
	RawBody         string                  `json:"raw_body"`
	SourceIP        string                  `json:"source_ip"`
	SignatureValid  bool                    `json:"signature_valid"`
	ParsedStatus    *string                 `json:"parsed_status,omitempty"` // Gateway RtnCode
	Processing      WebhookProcessingStatus `json:"processing"`
	DeliveryCount   int                     `json:"delivery_count"` // Times the gateway delivered this event
	RetryCount      int                     `json:"retry_count"`    // Internal reprocessing attempts
	NextRetryAt     *time.Time              `json:"next_retry_at,omitempty"`
	LastError       *string                 `json:"last_error,omitempty"`
	SubscriptionID  *uuid.UUID              `json:"subscription_id,omitempty"`
	PaymentID       *uuid.UUID              `json:"payment_id,omitempty"`
	AuthorizationID *uuid.UUID              `json:"authorization_id,omitempty"`
	ReceivedAt      time.Time               `json:"received_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// IsSettled reports whether processing finished successfully; settled events
// short-circuit duplicate deliveries.
func (e *WebhookEvent) IsSettled() bool {
	return e.Processing == WebhookProcessingSucceeded
}

// Prunable reports whether the cleanup sweep may delete this event at now,
// given the retention window. Failed and in-flight events are kept regardless
// of age.
func (e *WebhookEvent) Prunable(now time.Time, retention time.Duration) bool {
	if e.Processing == WebhookProcessingFailed || e.Processing == WebhookProcessingProcessing {
		return false
	}
	return e.ReceivedAt.Before(now.Add(-retention))
}
