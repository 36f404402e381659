package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the lifecycle state of one charge attempt.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is one row of the append-only charge ledger. A row is never mutated
// after reaching a terminal status; a retry is a new row covering the same
// period with a fresh trade number.
type Payment struct {
	ID             uuid.UUID     `json:"id"`
	SubscriptionID uuid.UUID     `json:"subscription_id"`
	AuthorizationID uuid.UUID    `json:"authorization_id"`
	TradeNo        string        `json:"trade_no"`                   // Merchant trade number (idempotency key, ≤20 chars)
	GatewayTradeNo *string       `json:"gateway_trade_no,omitempty"` // Gateway-side transaction reference
	Amount         int64         `json:"amount"` // Minor units
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	PeriodStart    time.Time     `json:"period_start"` // Period the charge covers
	PeriodEnd      time.Time     `json:"period_end"`
	RetryCount     int           `json:"retry_count"` // Prior failed attempts for this period
	MaxRetries     int           `json:"max_retries"`
	NextRetryAt    *time.Time    `json:"next_retry_at,omitempty"`
	FailureReason  *string       `json:"failure_reason,omitempty"` // Coarse reason code
	CreatedAt      time.Time     `json:"created_at"`
	ProcessedAt    *time.Time    `json:"processed_at,omitempty"`
}

// IsTerminal reports whether the payment reached a final state.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusFailed
}

// ShouldRetry reports whether the retry sweep should pick this payment up.
func (p *Payment) ShouldRetry(now time.Time) bool {
	if p.Status != PaymentStatusFailed || p.RetryCount >= p.MaxRetries {
		return false
	}
	return p.NextRetryAt != nil && !now.Before(*p.NextRetryAt)
}
