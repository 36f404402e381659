package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subscription-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SubscriptionRepo implements ports.SubscriptionRepository. The ForUpdate
// variants take the per-subscription row lock that serializes concurrent
// webhook deliveries and scheduler sweeps, which may run as separate
// processes.
type SubscriptionRepo struct {
	pool Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepo.
func NewSubscriptionRepo(pool Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, owner_id, plan_id, cycle, amount, currency, status, authorization_id,
	current_period_start, current_period_end, cancel_at_period_end, grace_period_ends_at,
	pending_plan_id, downgrade_reason, created_at, updated_at`

// Create inserts a new subscription within a database transaction.
func (r *SubscriptionRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	query := `INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		s.ID, s.OwnerID, s.PlanID, s.Cycle, s.Amount, s.Currency, s.Status, s.AuthorizationID,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CancelAtPeriodEnd, s.GracePeriodEndsAt,
		s.PendingPlanID, s.DowngradeReason, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByID fetches a subscription by UUID.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	return scanSubscription(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches a subscription by UUID holding its row lock.
func (r *SubscriptionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 FOR UPDATE`
	return scanSubscription(tx.QueryRow(ctx, query, id))
}

// GetCurrentByOwner returns the owner's non-terminal subscription, or nil.
func (r *SubscriptionRepo) GetCurrentByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE owner_id = $1 AND status NOT IN ('cancelled', 'downgraded')
		ORDER BY created_at DESC LIMIT 1`
	return scanSubscription(r.pool.QueryRow(ctx, query, ownerID))
}

// GetCurrentByOwnerForUpdate is GetCurrentByOwner holding the row lock.
func (r *SubscriptionRepo) GetCurrentByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE owner_id = $1 AND status NOT IN ('cancelled', 'downgraded')
		ORDER BY created_at DESC LIMIT 1 FOR UPDATE`
	return scanSubscription(tx.QueryRow(ctx, query, ownerID))
}

// Update persists subscription mutations within a database transaction.
func (r *SubscriptionRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	query := `UPDATE subscriptions
		SET plan_id = $1, cycle = $2, amount = $3, status = $4,
			current_period_start = $5, current_period_end = $6,
			cancel_at_period_end = $7, grace_period_ends_at = $8,
			pending_plan_id = $9, downgrade_reason = $10, updated_at = $11
		WHERE id = $12`

	tag, err := tx.Exec(ctx, query,
		s.PlanID, s.Cycle, s.Amount, s.Status,
		s.CurrentPeriodStart, s.CurrentPeriodEnd,
		s.CancelAtPeriodEnd, s.GracePeriodEndsAt,
		s.PendingPlanID, s.DowngradeReason, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found: %s", s.ID)
	}
	return nil
}

// ListMaintenanceDue returns non-terminal subscriptions with an elapsed grace
// deadline or period-end work pending at now.
func (r *SubscriptionRepo) ListMaintenanceDue(ctx context.Context, now time.Time, limit int) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE status NOT IN ('cancelled', 'downgraded')
		AND (grace_period_ends_at <= $1
			OR (current_period_end <= $1 AND (cancel_at_period_end OR pending_plan_id IS NOT NULL)))
		ORDER BY updated_at LIMIT $2`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list maintenance due: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		s, err := scanSubscriptionValues(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		subs = append(subs, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription rows: %w", err)
	}
	return subs, nil
}

// CountByStatus returns the number of subscriptions per status.
func (r *SubscriptionRepo) CountByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM subscriptions GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count subscriptions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.SubscriptionStatus]int64)
	for rows.Next() {
		var status domain.SubscriptionStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	s, err := scanSubscriptionValues(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return s, nil
}

func scanSubscriptionValues(row pgx.Row) (*domain.Subscription, error) {
	s := &domain.Subscription{}
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.PlanID, &s.Cycle, &s.Amount, &s.Currency, &s.Status, &s.AuthorizationID,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CancelAtPeriodEnd, &s.GracePeriodEndsAt,
		&s.PendingPlanID, &s.DowngradeReason, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
