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

// WebhookEventRepo implements ports.WebhookEventRepository. The
// (event_type, external_ref) unique key collapses redelivered callbacks
// onto one logical row.
type WebhookEventRepo struct {
	pool Pool
}

// NewWebhookEventRepo creates a new WebhookEventRepo.
func NewWebhookEventRepo(pool Pool) *WebhookEventRepo {
	return &WebhookEventRepo{pool: pool}
}

const webhookEventColumns = `id, event_type, external_ref, raw_headers, raw_body, source_ip,
	signature_valid, parsed_status, processing, delivery_count, retry_count,
	next_retry_at, last_error, subscription_id, payment_id, authorization_id,
	received_at, updated_at`

// Insert persists the event, or on a duplicate delivery bumps delivery_count
// on the existing row. Returns the stored row plus a duplicate flag; the
// xmax trick distinguishes a fresh insert from a conflict-update.
func (r *WebhookEventRepo) Insert(ctx context.Context, e *domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	query := `INSERT INTO webhook_events (` + webhookEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (event_type, external_ref) DO UPDATE
		SET delivery_count = webhook_events.delivery_count + 1, updated_at = EXCLUDED.updated_at
		RETURNING ` + webhookEventColumns + `, (xmax = 0) AS inserted`

	stored := &domain.WebhookEvent{}
	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		e.ID, e.EventType, e.ExternalRef, e.RawHeaders, e.RawBody, e.SourceIP,
		e.SignatureValid, e.ParsedStatus, e.Processing, e.DeliveryCount, e.RetryCount,
		e.NextRetryAt, e.LastError, e.SubscriptionID, e.PaymentID, e.AuthorizationID,
		e.ReceivedAt, e.UpdatedAt,
	).Scan(append(webhookEventDest(stored), &inserted)...)
	if err != nil {
		return nil, false, fmt.Errorf("insert webhook event: %w", err)
	}
	return stored, !inserted, nil
}

// GetByID fetches an event by UUID.
func (r *WebhookEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events WHERE id = $1`
	return scanWebhookEvent(r.pool.QueryRow(ctx, query, id))
}

// GetByKey fetches an event by its logical identity.
func (r *WebhookEventRepo) GetByKey(ctx context.Context, eventType, externalRef string) (*domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events
		WHERE event_type = $1 AND external_ref = $2`
	return scanWebhookEvent(r.pool.QueryRow(ctx, query, eventType, externalRef))
}

// Update persists the mutable processing fields of an event.
func (r *WebhookEventRepo) Update(ctx context.Context, e *domain.WebhookEvent) error {
	query := `UPDATE webhook_events
		SET signature_valid = $1, parsed_status = $2, processing = $3, delivery_count = $4,
			retry_count = $5, next_retry_at = $6, last_error = $7, subscription_id = $8,
			payment_id = $9, authorization_id = $10, updated_at = $11
		WHERE id = $12`

	tag, err := r.pool.Exec(ctx, query,
		e.SignatureValid, e.ParsedStatus, e.Processing, e.DeliveryCount,
		e.RetryCount, e.NextRetryAt, e.LastError, e.SubscriptionID,
		e.PaymentID, e.AuthorizationID, time.Now().UTC(), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update webhook event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook event not found: %s", e.ID)
	}
	return nil
}

// ListRetryable returns failed events due for reprocessing at now.
func (r *WebhookEventRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events
		WHERE processing = 'failed' AND next_retry_at IS NOT NULL AND next_retry_at <= $1
		ORDER BY next_retry_at LIMIT $2`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list retryable webhook events: %w", err)
	}
	defer rows.Close()

	var events []domain.WebhookEvent
	for rows.Next() {
		e := domain.WebhookEvent{}
		if err := rows.Scan(webhookEventDest(&e)...); err != nil {
			return nil, fmt.Errorf("scan webhook event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook event rows: %w", err)
	}
	return events, nil
}

// DeleteExpired prunes settled events received before cutoff. Failed and
// in-flight events are kept for inspection regardless of age.
func (r *WebhookEventRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM webhook_events
		WHERE received_at < $1 AND processing NOT IN ('failed', 'processing')`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired webhook events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanWebhookEvent(row pgx.Row) (*domain.WebhookEvent, error) {
	e := &domain.WebhookEvent{}
	if err := row.Scan(webhookEventDest(e)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan webhook event: %w", err)
	}
	return e, nil
}

func webhookEventDest(e *domain.WebhookEvent) []any {
	return []any{
		&e.ID, &e.EventType, &e.ExternalRef, &e.RawHeaders, &e.RawBody, &e.SourceIP,
		&e.SignatureValid, &e.ParsedStatus, &e.Processing, &e.DeliveryCount, &e.RetryCount,
		&e.NextRetryAt, &e.LastError, &e.SubscriptionID, &e.PaymentID, &e.AuthorizationID,
		&e.ReceivedAt, &e.UpdatedAt,
	}
}
