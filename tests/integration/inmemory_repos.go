package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory repository implementations backing the integration suite. They
// mirror the postgres constraints the services lean on: unique payment trade
// numbers, the unique (event_type, external_ref) webhook key, and transaction
// serialization in place of row locks.

// --- In-Memory Authorization Repo ---

type inMemoryAuthorizationRepo struct {
	mu    sync.RWMutex
	auths map[uuid.UUID]domain.Authorization
}

func newInMemoryAuthorizationRepo() *inMemoryAuthorizationRepo {
	return &inMemoryAuthorizationRepo{auths: make(map[uuid.UUID]domain.Authorization)}
}

func (r *inMemoryAuthorizationRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Authorization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auths[a.ID] = *a
	return nil
}

func (r *inMemoryAuthorizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Authorization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.auths[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *inMemoryAuthorizationRepo) GetByMemberRef(ctx context.Context, memberRef string) (*domain.Authorization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.auths {
		if a.MemberRef == memberRef {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAuthorizationRepo) GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Authorization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.auths {
		if a.OwnerID == ownerID && a.Status == domain.AuthorizationStatusActive {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAuthorizationRepo) Update(ctx context.Context, tx pgx.Tx, a *domain.Authorization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auths[a.ID]; !ok {
		return fmt.Errorf("authorization not found: %s", a.ID)
	}
	r.auths[a.ID] = *a
	return nil
}

// --- In-Memory Subscription Repo ---

type inMemorySubscriptionRepo struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]domain.Subscription
}

func newInMemorySubscriptionRepo() *inMemorySubscriptionRepo {
	return &inMemorySubscriptionRepo{subs: make(map[uuid.UUID]domain.Subscription)}
}

func (r *inMemorySubscriptionRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[s.ID] = *s
	return nil
}

func (r *inMemorySubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *inMemorySubscriptionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Subscription, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemorySubscriptionRepo) GetCurrentByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.subs {
		if s.OwnerID == ownerID && !s.IsTerminal() {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r *inMemorySubscriptionRepo) GetCurrentByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Subscription, error) {
	return r.GetCurrentByOwner(ctx, ownerID)
}

func (r *inMemorySubscriptionRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[s.ID]; !ok {
		return fmt.Errorf("subscription not found: %s", s.ID)
	}
	r.subs[s.ID] = *s
	return nil
}

func (r *inMemorySubscriptionRepo) ListMaintenanceDue(ctx context.Context, now time.Time, limit int) ([]domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.Subscription
	for _, s := range r.subs {
		if s.IsTerminal() {
			continue
		}
		if s.GraceElapsed(now) || (s.PeriodExpired(now) && (s.CancelAtPeriodEnd || s.PendingPlanID != nil)) {
			due = append(due, s)
		}
		if len(due) >= limit {
			break
		}
	}
	return due, nil
}

func (r *inMemorySubscriptionRepo) CountByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[domain.SubscriptionStatus]int64)
	for _, s := range r.subs {
		counts[s.Status]++
	}
	return counts, nil
}

// allByOwner returns every stored subscription for the owner, terminal
// included, for assertions.
func (r *inMemorySubscriptionRepo) allByOwner(ownerID uuid.UUID) []domain.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Subscription
	for _, s := range r.subs {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out
}

// --- In-Memory Payment Repo ---

type inMemoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]domain.Payment
}

func newInMemoryPaymentRepo() *inMemoryPaymentRepo {
	return &inMemoryPaymentRepo{payments: make(map[uuid.UUID]domain.Payment)}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// payments.trade_no carries a unique index in postgres.
	for _, existing := range r.payments {
		if existing.TradeNo == p.TradeNo {
			return &pgconn.PgError{
				Code:           "23505",
				Message:        "duplicate key value violates unique constraint",
				ConstraintName: "payments_trade_no_key",
			}
		}
	}
	r.payments[p.ID] = *p
	return nil
}

func (r *inMemoryPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *inMemoryPaymentRepo) GetByTradeNo(ctx context.Context, tradeNo string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.TradeNo == tradeNo {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPaymentRepo) Finalize(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentStatus, gatewayTradeNo *string, failureReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != domain.PaymentStatusPending {
		return fmt.Errorf("pending payment not found: %s", id)
	}
	now := time.Now().UTC()
	p.Status = status
	if gatewayTradeNo != nil {
		p.GatewayTradeNo = gatewayTradeNo
	}
	p.FailureReason = failureReason
	p.ProcessedAt = &now
	r.payments[id] = p
	return nil
}

func (r *inMemoryPaymentRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.Payment
	for _, p := range r.payments {
		if p.ShouldRetry(now) {
			due = append(due, p)
		}
		if len(due) >= limit {
			break
		}
	}
	return due, nil
}

func (r *inMemoryPaymentRepo) ClearRetries(ctx context.Context, tx pgx.Tx, subscriptionID uuid.UUID, periodStart time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.payments {
		if p.SubscriptionID == subscriptionID && p.Status == domain.PaymentStatusFailed &&
			p.PeriodStart.Equal(periodStart) && p.NextRetryAt != nil {
			p.NextRetryAt = nil
			r.payments[id] = p
		}
	}
	return nil
}

func (r *inMemoryPaymentRepo) CountFailedForPeriod(ctx context.Context, subscriptionID uuid.UUID, periodStart time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, p := range r.payments {
		if p.SubscriptionID == subscriptionID && p.Status == domain.PaymentStatusFailed && p.PeriodStart.Equal(periodStart) {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryPaymentRepo) GetLastSuccessBySubscription(ctx context.Context, subscriptionID uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var last *domain.Payment
	for _, p := range r.payments {
		if p.SubscriptionID != subscriptionID || p.Status != domain.PaymentStatusSuccess {
			continue
		}
		if last == nil || p.CreatedAt.After(last.CreatedAt) {
			p := p
			last = &p
		}
	}
	return last, nil
}

func (r *inMemoryPaymentRepo) GetStats(ctx context.Context, from *time.Time) (*ports.PaymentStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.PaymentStats{}
	for _, p := range r.payments {
		if from != nil && p.CreatedAt.Before(*from) {
			continue
		}
		stats.TotalAttempts++
		switch p.Status {
		case domain.PaymentStatusSuccess:
			stats.Successful++
			stats.Revenue += p.Amount
		case domain.PaymentStatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

// all returns every stored payment ordered by creation time, for assertions.
func (r *inMemoryPaymentRepo) all() []domain.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// --- In-Memory Webhook Event Repo ---

type inMemoryWebhookEventRepo struct {
	mu     sync.RWMutex
	events map[uuid.UUID]domain.WebhookEvent
	byKey  map[string]uuid.UUID
}

func newInMemoryWebhookEventRepo() *inMemoryWebhookEventRepo {
	return &inMemoryWebhookEventRepo{
		events: make(map[uuid.UUID]domain.WebhookEvent),
		byKey:  make(map[string]uuid.UUID),
	}
}

func eventKey(eventType, externalRef string) string {
	return eventType + "|" + externalRef
}

func (r *inMemoryWebhookEventRepo) Insert(ctx context.Context, e *domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := eventKey(e.EventType, e.ExternalRef)
	if id, ok := r.byKey[key]; ok {
		stored := r.events[id]
		stored.DeliveryCount++
		stored.UpdatedAt = e.UpdatedAt
		r.events[id] = stored
		return &stored, true, nil
	}
	r.events[e.ID] = *e
	r.byKey[key] = e.ID
	stored := *e
	return &stored, false, nil
}

func (r *inMemoryWebhookEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *inMemoryWebhookEventRepo) GetByKey(ctx context.Context, eventType, externalRef string) (*domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[eventKey(eventType, externalRef)]
	if !ok {
		return nil, nil
	}
	e := r.events[id]
	return &e, nil
}

func (r *inMemoryWebhookEventRepo) Update(ctx context.Context, e *domain.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.events[e.ID]
	if !ok {
		return fmt.Errorf("webhook event not found: %s", e.ID)
	}
	// Duplicate deliveries bump the counter concurrently with processing;
	// keep the highest observed count, as the database column does.
	if stored.DeliveryCount > e.DeliveryCount {
		e.DeliveryCount = stored.DeliveryCount
	}
	r.events[e.ID] = *e
	return nil
}

func (r *inMemoryWebhookEventRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.WebhookEvent
	for _, e := range r.events {
		if e.Processing == domain.WebhookProcessingFailed && e.NextRetryAt != nil && !now.Before(*e.NextRetryAt) {
			due = append(due, e)
		}
		if len(due) >= limit {
			break
		}
	}
	return due, nil
}

func (r *inMemoryWebhookEventRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, e := range r.events {
		if e.Processing == domain.WebhookProcessingFailed || e.Processing == domain.WebhookProcessingProcessing {
			continue
		}
		if e.ReceivedAt.Before(cutoff) {
			delete(r.events, id)
			delete(r.byKey, eventKey(e.EventType, e.ExternalRef))
			deleted++
		}
	}
	return deleted, nil
}

func (r *inMemoryWebhookEventRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// --- In-Memory Transition Repo ---

type inMemoryTransitionRepo struct {
	mu          sync.RWMutex
	transitions []domain.SubscriptionTransition
}

func newInMemoryTransitionRepo() *inMemoryTransitionRepo {
	return &inMemoryTransitionRepo{}
}

func (r *inMemoryTransitionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.SubscriptionTransition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, *t)
	return nil
}

func (r *inMemoryTransitionRepo) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]domain.SubscriptionTransition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.SubscriptionTransition
	for _, t := range r.transitions {
		if t.SubscriptionID == subscriptionID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes transactions with a process-wide lock, the
// way the ForUpdate row locks do in postgres. Without it the ledger's
// read-check-write blocks would race.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{unlock: &t.mu}, nil
}

// serialTx is a no-op pgx.Tx that releases the transactor lock exactly once,
// on whichever of Commit or Rollback runs first.
type serialTx struct {
	unlock  *sync.Mutex
	release sync.Once
}

func (t *serialTx) done() {
	t.release.Do(t.unlock.Unlock)
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
