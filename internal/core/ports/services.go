package ports

import (
	"context"
	"time"

	"subscription-billing/internal/core/domain"

	"github.com/google/uuid"
)

// SignatureCodec implements the gateway's CheckMacValue sign/verify scheme.
// Implementations are constructed from an explicit gateway config so sandbox
// and production key pairs can coexist.
type SignatureCodec interface {
	// Sign computes the signature over params, ignoring any CheckMacValue key.
	// All values must already be strings; no locale-dependent formatting.
	Sign(params map[string]string) string
	// Verify recomputes the signature with the CheckMacValue field stripped and
	// compares it in constant time against the supplied value.
	Verify(params map[string]string) bool
}

// GatewayClient builds and submits outbound gateway operations.
type GatewayClient interface {
	// BuildAuthorizeForm assembles the signed redirect form for binding a
	// payment method plus the first charge. No HTTP happens here; the owner's
	// browser posts the form to the gateway.
	BuildAuthorizeForm(req AuthorizeRequest) (*AuthorizeForm, error)
	// Charge issues a fixed-amount recurring charge against an existing
	// authorization. Timeouts are ambiguous outcomes: the returned error is
	// GW_002 and the caller must not transition the ledger.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	// Refund reverses a captured charge. Amount must already be prorated.
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}

// AuthorizeRequest holds input for building an authorization form.
type AuthorizeRequest struct {
	OwnerID   uuid.UUID
	MemberRef string
	Plan      domain.Plan
	ExecLimit int // 0 = gateway default
}

// AuthorizeForm is the signed form the browser submits to the gateway.
type AuthorizeForm struct {
	Action  string            // Gateway endpoint URL
	Method  string            // Always POST
	Fields  map[string]string // Includes CheckMacValue
	TradeNo string            // Merchant trade number of the first charge
}

// ChargeRequest holds input for a recurring charge.
type ChargeRequest struct {
	MemberRef string
	TradeNo   string // Fresh per logical attempt; reuse only on unknown outcome
	Amount    int64
}

// ChargeResult is the parsed synchronous gateway acknowledgement. The
// authoritative outcome still arrives later via webhook.
type ChargeResult struct {
	Success        bool
	GatewayTradeNo string
	ResponseCode   string
	Reason         string // Coarse reason code when Success is false
}

// RefundRequest holds input for a (prorated) refund.
type RefundRequest struct {
	GatewayTradeNo string
	TradeNo        string
	Amount         int64
}

// RefundResult is the parsed refund acknowledgement.
type RefundResult struct {
	Success        bool
	RefundedAmount int64
	ResponseCode   string
}

// --- Service Ports (Business Logic) ---

// Ledger owns every subscription, authorization, and payment state transition.
// No other component writes Subscription.Status; each transition records an
// audit row inside the same database transaction, under the subscription's
// row lock.
type Ledger interface {
	// RecordAuthorizationSuccess creates the Authorization (active) and the
	// Subscription (active) atomically with its first successful Payment.
	RecordAuthorizationSuccess(ctx context.Context, ev AuthorizationEvent) (*LedgerResult, error)
	// RecordChargeSuccess extends the period by one cycle, appends a success
	// Payment, and clears any grace deadline.
	RecordChargeSuccess(ctx context.Context, ev ChargeEvent) (*LedgerResult, error)
	// RecordChargeFailure appends a failed Payment with retry scheduling state
	// and advances the past_due/grace/cancelled ladder.
	RecordChargeFailure(ctx context.Context, ev ChargeEvent) (*LedgerResult, error)
	// Cancel cancels the owner's subscription, immediately or at period end.
	Cancel(ctx context.Context, ownerID uuid.UUID, atPeriodEnd bool) error
	// Downgrade moves the owner to a cheaper plan, immediately or at period end.
	Downgrade(ctx context.Context, ownerID uuid.UUID, planID string, atPeriodEnd bool) error
	// ApplyMaintenance applies elapsed grace deadlines and pending period-end
	// cancellations/downgrades for one subscription. Called by the scheduler.
	ApplyMaintenance(ctx context.Context, subscriptionID uuid.UUID, now time.Time) error
	CurrentSubscription(ctx context.Context, ownerID uuid.UUID) (*domain.Subscription, error)
}

// AuthorizationEvent is a verified "bind card" success callback.
type AuthorizationEvent struct {
	OwnerID        uuid.UUID
	MemberRef      string
	GatewayAuthRef string
	CardBrand      string
	CardLast4      string
	PlanID         string
	TradeNo        string // Merchant trade number of the first charge
	GatewayTradeNo string
	Amount         int64
	OccurredAt     time.Time
}

// ChargeEvent is a verified charge outcome, from a webhook or a sync ack.
type ChargeEvent struct {
	MemberRef      string // Resolves the authorization and subscription
	TradeNo        string
	GatewayTradeNo string
	Amount         int64
	Reason         string // Coarse failure code; empty on success
	OccurredAt     time.Time
}

// LedgerResult carries the records touched by a transition, for webhook
// event linking.
type LedgerResult struct {
	Subscription  *domain.Subscription
	Payment       *domain.Payment
	Authorization *domain.Authorization
}

// WebhookProcessor authenticates, deduplicates, and dispatches one inbound
// gateway callback. The returned ack body is always sent with HTTP 200;
// processing errors are internal.
type WebhookProcessor interface {
	Process(ctx context.Context, in InboundWebhook) (string, error)
	// Reprocess re-runs a previously failed event from its stored raw body.
	Reprocess(ctx context.Context, eventID uuid.UUID) error
}

// InboundWebhook is one raw gateway callback as received.
type InboundWebhook struct {
	EventType  string
	Fields     map[string]string // Parsed form fields
	RawHeaders string
	RawBody    string
	SourceIP   string
}

// Notifier sends user-facing billing notices. Consumed by the ledger on
// terminal failures; implementations live outside the core.
type Notifier interface {
	SendPaymentFailureNotice(ctx context.Context, ownerID uuid.UUID, reason string) error
	SendGracePeriodWarning(ctx context.Context, ownerID uuid.UUID, deadline time.Time) error
}

// TokenService validates bearer tokens minted by the web layer.
type TokenService interface {
	Generate(ownerID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	OwnerID uuid.UUID
}

// WebhookDedupStore is the Redis fast path for duplicate webhook detection.
// The database unique constraint remains the source of truth.
type WebhookDedupStore interface {
	IsSettled(ctx context.Context, eventType, externalRef string) (bool, error)
	MarkSettled(ctx context.Context, eventType, externalRef string, ttl time.Duration) error
}

// ReportingService aggregates billing statistics for the dashboard.
type ReportingService interface {
	GetBillingStats(ctx context.Context, period string) (*BillingStats, error)
}

// BillingStats is the dashboard aggregate.
type BillingStats struct {
	Payments      PaymentStats
	Subscriptions map[domain.SubscriptionStatus]int64
}
