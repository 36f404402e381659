package ports

import (
	"context"
	"time"

	"subscription-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuthorizationRepository defines persistence operations for payment-method
// bindings. Rows are never hard-deleted; revocation is a status change.
type AuthorizationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, a *domain.Authorization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Authorization, error)
	GetByMemberRef(ctx context.Context, memberRef string) (*domain.Authorization, error)
	GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Authorization, error)
	Update(ctx context.Context, tx pgx.Tx, a *domain.Authorization) error
}

// SubscriptionRepository defines persistence operations for subscriptions.
// Methods accepting pgx.Tx run inside transaction blocks; the ForUpdate
// variants take the per-subscription row lock that serializes concurrent
// webhook deliveries and scheduler sweeps.
type SubscriptionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Subscription, error)
	// GetCurrentByOwner returns the owner's non-terminal subscription, or nil.
	GetCurrentByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Subscription, error)
	GetCurrentByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Subscription, error)
	Update(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error
	// ListMaintenanceDue returns non-terminal subscriptions with elapsed grace
	// deadlines or period-end work pending (cancel/downgrade flags) at now.
	ListMaintenanceDue(ctx context.Context, now time.Time, limit int) ([]domain.Subscription, error)
	CountByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int64, error)
}

// PaymentRepository defines persistence for the append-only charge ledger.
type PaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	GetByTradeNo(ctx context.Context, tradeNo string) (*domain.Payment, error)
	// Finalize moves a pending payment to a terminal status. Terminal rows are
	// never mutated again; a retry is a new row.
	Finalize(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentStatus, gatewayTradeNo *string, failureReason *string) error
	// ListRetryable returns failed payments due for a retry at now.
	ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.Payment, error)
	// ClearRetries unschedules every failed attempt covering the period,
	// called when a later attempt for the same period succeeds.
	ClearRetries(ctx context.Context, tx pgx.Tx, subscriptionID uuid.UUID, periodStart time.Time) error
	// CountFailedForPeriod counts failed attempts covering one billing period.
	CountFailedForPeriod(ctx context.Context, subscriptionID uuid.UUID, periodStart time.Time) (int, error)
	GetLastSuccessBySubscription(ctx context.Context, subscriptionID uuid.UUID) (*domain.Payment, error)
	GetStats(ctx context.Context, from *time.Time) (*PaymentStats, error)
}

// PaymentStats holds aggregated charge statistics for the dashboard.
type PaymentStats struct {
	TotalAttempts int64
	Successful    int64
	Failed        int64
	Revenue       int64 // Sum of successful charge amounts, minor units
}

// WebhookEventRepository defines persistence for inbound callback records.
// (event_type, external_ref) is unique and is the dedup source of truth.
type WebhookEventRepository interface {
	// Insert persists a new event in received status, committing independently
	// of any later processing. When the (event_type, external_ref) pair already
	// exists it bumps the delivery counter and returns the stored row with
	// duplicate=true instead of creating a second logical event.
	Insert(ctx context.Context, e *domain.WebhookEvent) (*domain.WebhookEvent, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error)
	GetByKey(ctx context.Context, eventType, externalRef string) (*domain.WebhookEvent, error)
	Update(ctx context.Context, e *domain.WebhookEvent) error
	// ListRetryable returns failed events due for internal reprocessing at now.
	ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.WebhookEvent, error)
	// DeleteExpired prunes events received before cutoff, preserving rows in
	// failed or processing status regardless of age. Returns rows deleted.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// TransitionRepository defines persistence for subscription audit rows.
type TransitionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.SubscriptionTransition) error
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]domain.SubscriptionTransition, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
