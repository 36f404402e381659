package postgres

import (
	"context"
	"fmt"

	"subscription-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransitionRepo implements ports.TransitionRepository. Rows are append-only.
type TransitionRepo struct {
	pool Pool
}

// NewTransitionRepo creates a new TransitionRepo.
func NewTransitionRepo(pool Pool) *TransitionRepo {
	return &TransitionRepo{pool: pool}
}

const transitionColumns = `id, subscription_id, from_status, to_status, reason, actor, created_at`

// Create records a status transition within the same transaction as the
// subscription update it documents.
func (r *TransitionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.SubscriptionTransition) error {
	query := `INSERT INTO subscription_transitions (` + transitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.SubscriptionID, t.FromStatus, t.ToStatus, t.Reason, t.Actor, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transition: %w", err)
	}
	return nil
}

// ListBySubscription returns the transition history, oldest first.
func (r *TransitionRepo) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]domain.SubscriptionTransition, error) {
	query := `SELECT ` + transitionColumns + ` FROM subscription_transitions
		WHERE subscription_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var transitions []domain.SubscriptionTransition
	for rows.Next() {
		t := domain.SubscriptionTransition{}
		if err := rows.Scan(&t.ID, &t.SubscriptionID, &t.FromStatus, &t.ToStatus, &t.Reason, &t.Actor, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transition row: %w", err)
		}
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transition rows: %w", err)
	}
	return transitions, nil
}
