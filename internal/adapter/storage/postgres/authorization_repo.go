package postgres

import (
	"context"
	"errors"
	"fmt"

	"subscription-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuthorizationRepo implements ports.AuthorizationRepository.
type AuthorizationRepo struct {
	pool Pool
}

// NewAuthorizationRepo creates a new AuthorizationRepo.
func NewAuthorizationRepo(pool Pool) *AuthorizationRepo {
	return &AuthorizationRepo{pool: pool}
}

const authorizationColumns = `id, owner_id, member_ref, gateway_auth_ref, card_brand, card_last4,
	cycle, amount_per_cycle, exec_times, exec_limit, status, next_charge_at, created_at, updated_at`

// Create inserts a new authorization within a database transaction.
func (r *AuthorizationRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Authorization) error {
	query := `INSERT INTO authorizations (` + authorizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := tx.Exec(ctx, query,
		a.ID, a.OwnerID, a.MemberRef, a.GatewayAuthRef, a.CardBrand, a.CardLast4,
		a.Cycle, a.AmountPerCycle, a.ExecTimes, a.ExecLimit, a.Status,
		a.NextChargeAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert authorization: %w", err)
	}
	return nil
}

// GetByID fetches an authorization by UUID.
func (r *AuthorizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Authorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM authorizations WHERE id = $1`
	return scanAuthorization(r.pool.QueryRow(ctx, query, id))
}

// GetByMemberRef fetches the authorization bound to an external member id.
func (r *AuthorizationRepo) GetByMemberRef(ctx context.Context, memberRef string) (*domain.Authorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM authorizations
		WHERE member_ref = $1 ORDER BY created_at DESC LIMIT 1`
	return scanAuthorization(r.pool.QueryRow(ctx, query, memberRef))
}

// GetActiveByOwner fetches the owner's active authorization, or nil.
func (r *AuthorizationRepo) GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Authorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM authorizations
		WHERE owner_id = $1 AND status = 'active' ORDER BY created_at DESC LIMIT 1`
	return scanAuthorization(r.pool.QueryRow(ctx, query, ownerID))
}

// Update persists authorization mutations within a database transaction.
// Rows are never deleted; revocation is a status change.
func (r *AuthorizationRepo) Update(ctx context.Context, tx pgx.Tx, a *domain.Authorization) error {
	query := `UPDATE authorizations
		SET exec_times = $1, exec_limit = $2, status = $3, next_charge_at = $4, updated_at = $5
		WHERE id = $6`

	tag, err := tx.Exec(ctx, query,
		a.ExecTimes, a.ExecLimit, a.Status, a.NextChargeAt, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update authorization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("authorization not found: %s", a.ID)
	}
	return nil
}

// scanAuthorization is a helper to scan a single row into an Authorization.
func scanAuthorization(row pgx.Row) (*domain.Authorization, error) {
	a := &domain.Authorization{}
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.MemberRef, &a.GatewayAuthRef, &a.CardBrand, &a.CardLast4,
		&a.Cycle, &a.AmountPerCycle, &a.ExecTimes, &a.ExecLimit, &a.Status,
		&a.NextChargeAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan authorization: %w", err)
	}
	return a, nil
}
