package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository over the append-only charge
// ledger. Terminal rows are never mutated; a retry is a new row.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, subscription_id, authorization_id, trade_no, gateway_trade_no,
	amount, currency, status, period_start, period_end, retry_count, max_retries,
	next_retry_at, failure_reason, created_at, processed_at`

// Create inserts a new payment row within a database transaction.
func (r *PaymentRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		p.ID, p.SubscriptionID, p.AuthorizationID, p.TradeNo, p.GatewayTradeNo,
		p.Amount, p.Currency, p.Status, p.PeriodStart, p.PeriodEnd, p.RetryCount, p.MaxRetries,
		p.NextRetryAt, p.FailureReason, p.CreatedAt, p.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by UUID.
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// GetByTradeNo fetches a payment by its merchant trade number.
func (r *PaymentRepo) GetByTradeNo(ctx context.Context, tradeNo string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE trade_no = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, tradeNo))
}

// Finalize moves a pending payment to a terminal status. Guarded on the
// current status so a terminal row is never touched again.
func (r *PaymentRepo) Finalize(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentStatus, gatewayTradeNo *string, failureReason *string) error {
	query := `UPDATE payments
		SET status = $1, gateway_trade_no = COALESCE($2, gateway_trade_no),
			failure_reason = $3, processed_at = $4
		WHERE id = $5 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, status, gatewayTradeNo, failureReason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finalize payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending payment not found: %s", id)
	}
	return nil
}

// ListRetryable returns failed payments due another attempt at now.
func (r *PaymentRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE status = 'failed' AND retry_count < max_retries
		AND next_retry_at IS NOT NULL AND next_retry_at <= $1
		ORDER BY next_retry_at LIMIT $2`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list retryable payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p := domain.Payment{}
		if err := scanPaymentInto(rows, &p); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return payments, nil
}

// ClearRetries unschedules every failed attempt covering the period. Once a
// later attempt succeeds the old rows must drop out of the retry sweep, or
// each sweep would charge the period again.
func (r *PaymentRepo) ClearRetries(ctx context.Context, tx pgx.Tx, subscriptionID uuid.UUID, periodStart time.Time) error {
	query := `UPDATE payments SET next_retry_at = NULL
		WHERE subscription_id = $1 AND period_start = $2
		AND status = 'failed' AND next_retry_at IS NOT NULL`

	if _, err := tx.Exec(ctx, query, subscriptionID, periodStart); err != nil {
		return fmt.Errorf("clear payment retries: %w", err)
	}
	return nil
}

// CountFailedForPeriod counts failed attempts covering one billing period.
func (r *PaymentRepo) CountFailedForPeriod(ctx context.Context, subscriptionID uuid.UUID, periodStart time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM payments
		WHERE subscription_id = $1 AND period_start = $2 AND status = 'failed'`

	var n int
	if err := r.pool.QueryRow(ctx, query, subscriptionID, periodStart).Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed payments: %w", err)
	}
	return n, nil
}

// GetLastSuccessBySubscription returns the most recent successful payment.
func (r *PaymentRepo) GetLastSuccessBySubscription(ctx context.Context, subscriptionID uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE subscription_id = $1 AND status = 'success'
		ORDER BY created_at DESC LIMIT 1`
	return scanPayment(r.pool.QueryRow(ctx, query, subscriptionID))
}

// GetStats retrieves aggregated charge statistics.
func (r *PaymentRepo) GetStats(ctx context.Context, from *time.Time) (*ports.PaymentStats, error) {
	condition := "TRUE"
	args := []any{}
	if from != nil {
		condition = "created_at >= $1"
		args = append(args, *from)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'success') AS successful,
		COUNT(*) FILTER (WHERE status = 'failed') AS failed,
		COALESCE(SUM(amount) FILTER (WHERE status = 'success'), 0) AS revenue
		FROM payments WHERE %s`, condition)

	stats := &ports.PaymentStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalAttempts, &stats.Successful, &stats.Failed, &stats.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("get payment stats: %w", err)
	}
	return stats, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	if err := scanPaymentInto(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return p, nil
}

func scanPaymentInto(row pgx.Row, p *domain.Payment) error {
	return row.Scan(
		&p.ID, &p.SubscriptionID, &p.AuthorizationID, &p.TradeNo, &p.GatewayTradeNo,
		&p.Amount, &p.Currency, &p.Status, &p.PeriodStart, &p.PeriodEnd, &p.RetryCount, &p.MaxRetries,
		&p.NextRetryAt, &p.FailureReason, &p.CreatedAt, &p.ProcessedAt,
	)
}
