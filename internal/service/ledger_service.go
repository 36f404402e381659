package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subscription-billing/config"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.Ledger. Every transition runs inside a
// database transaction holding the subscription's row lock, and writes an
// audit row through the same transaction. No other component writes
// Subscription.Status.
type LedgerServiceImpl struct {
	subRepo    ports.SubscriptionRepository
	authRepo   ports.AuthorizationRepository
	payRepo    ports.PaymentRepository
	transRepo  ports.TransitionRepository
	transactor ports.DBTransactor
	notifier   ports.Notifier
	catalog    *domain.PlanCatalog

	graceWindow  time.Duration
	maxRetries   int
	retryBackoff time.Duration

	log zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	subRepo ports.SubscriptionRepository,
	authRepo ports.AuthorizationRepository,
	payRepo ports.PaymentRepository,
	transRepo ports.TransitionRepository,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	catalog *domain.PlanCatalog,
	cfg config.BillingConfig,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		subRepo:      subRepo,
		authRepo:     authRepo,
		payRepo:      payRepo,
		transRepo:    transRepo,
		transactor:   transactor,
		notifier:     notifier,
		catalog:      catalog,
		graceWindow:  cfg.GraceWindow,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		log:          log,
	}
}

// RecordAuthorizationSuccess creates the Authorization, the Subscription, and
// the first successful Payment atomically.
func (s *LedgerServiceImpl) RecordAuthorizationSuccess(ctx context.Context, ev ports.AuthorizationEvent) (*ports.LedgerResult, error) {
	plan, ok := s.catalog.Lookup(ev.PlanID)
	if !ok {
		return nil, apperror.ErrUnknownPlan(ev.PlanID)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// One non-terminal subscription per owner
	existing, err := s.subRepo.GetCurrentByOwnerForUpdate(ctx, dbTx, ev.OwnerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock current subscription: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrSubscriptionExists()
	}

	now := ev.OccurredAt.UTC()
	periodEnd := plan.Cycle.PeriodEnd(now)

	auth := &domain.Authorization{
		ID:             uuid.New(),
		OwnerID:        ev.OwnerID,
		MemberRef:      ev.MemberRef,
		GatewayAuthRef: ev.GatewayAuthRef,
		CardBrand:      ev.CardBrand,
		CardLast4:      ev.CardLast4,
		Cycle:          plan.Cycle,
		AmountPerCycle: plan.Amount,
		ExecTimes:      1, // First charge rode along with the binding
		Status:         domain.AuthorizationStatusActive,
		NextChargeAt:   &periodEnd,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.authRepo.Create(ctx, dbTx, auth); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create authorization: %w", err))
	}

	sub := &domain.Subscription{
		ID:                 uuid.New(),
		OwnerID:            ev.OwnerID,
		PlanID:             plan.ID,
		Cycle:              plan.Cycle,
		Amount:             plan.Amount,
		Currency:           plan.Currency,
		Status:             domain.SubscriptionStatusActive,
		AuthorizationID:    &auth.ID,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.subRepo.Create(ctx, dbTx, sub); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create subscription: %w", err))
	}

	payment := &domain.Payment{
		ID:              uuid.New(),
		SubscriptionID:  sub.ID,
		AuthorizationID: auth.ID,
		TradeNo:         ev.TradeNo,
		GatewayTradeNo:  strPtr(ev.GatewayTradeNo),
		Amount:          ev.Amount,
		Currency:        plan.Currency,
		Status:          domain.PaymentStatusSuccess,
		PeriodStart:     now,
		PeriodEnd:       periodEnd,
		MaxRetries:      s.maxRetries,
		CreatedAt:       now,
		ProcessedAt:     &now,
	}
	if err := s.payRepo.Create(ctx, dbTx, payment); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.ErrDuplicateDelivery()
		}
		return nil, apperror.InternalError(fmt.Errorf("create first payment: %w", err))
	}

	if err := s.audit(ctx, dbTx, sub.ID, domain.SubscriptionStatusPendingAuth, domain.SubscriptionStatusActive, "authorization_success", domain.ActorWebhook); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("subscription_id", sub.ID.String()).
		Str("owner_id", ev.OwnerID.String()).
		Str("plan_id", plan.ID).
		Str("card_last4", ev.CardLast4).
		Msg("authorization recorded, subscription activated")

	return &ports.LedgerResult{Subscription: sub, Payment: payment, Authorization: auth}, nil
}

// RecordChargeSuccess extends the period by one cycle, appends a success
// Payment, and clears any grace state.
func (s *LedgerServiceImpl) RecordChargeSuccess(ctx context.Context, ev ports.ChargeEvent) (*ports.LedgerResult, error) {
	auth, err := s.authRepo.GetByMemberRef(ctx, ev.MemberRef)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find authorization: %w", err))
	}
	if auth == nil {
		return nil, apperror.ErrNotFound("authorization")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	sub, err := s.subRepo.GetCurrentByOwnerForUpdate(ctx, dbTx, auth.OwnerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrNotFound("subscription")
	}
	if !sub.CanAcceptCharge() {
		return nil, apperror.ErrStateConflict(fmt.Sprintf("charge success for %s subscription", sub.Status))
	}

	now := ev.OccurredAt.UTC()
	fromStatus := sub.Status

	// Coverage stays continuous: the new period starts where the old one ended,
	// even when the charge landed days into a grace window.
	periodStart := sub.CurrentPeriodEnd
	periodEnd := sub.Cycle.PeriodEnd(periodStart)

	payment := &domain.Payment{
		ID:              uuid.New(),
		SubscriptionID:  sub.ID,
		AuthorizationID: auth.ID,
		TradeNo:         ev.TradeNo,
		GatewayTradeNo:  strPtr(ev.GatewayTradeNo),
		Amount:          ev.Amount,
		Currency:        sub.Currency,
		Status:          domain.PaymentStatusSuccess,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		MaxRetries:      s.maxRetries,
		CreatedAt:       now,
		ProcessedAt:     &now,
	}
	if err := s.payRepo.Create(ctx, dbTx, payment); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.ErrDuplicateDelivery()
		}
		return nil, apperror.InternalError(fmt.Errorf("create payment: %w", err))
	}

	// Earlier failed attempts for this period are superseded; unschedule them
	// so the retry sweep never charges the period again.
	if err := s.payRepo.ClearRetries(ctx, dbTx, sub.ID, periodStart); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("clear superseded retries: %w", err))
	}

	sub.Status = domain.SubscriptionStatusActive
	sub.CurrentPeriodStart = periodStart
	sub.CurrentPeriodEnd = periodEnd
	sub.GracePeriodEndsAt = nil
	sub.UpdatedAt = now
	if err := s.subRepo.Update(ctx, dbTx, sub); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update subscription: %w", err))
	}

	auth.ExecTimes++
	auth.NextChargeAt = &periodEnd
	auth.UpdatedAt = now
	if err := s.authRepo.Update(ctx, dbTx, auth); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update authorization: %w", err))
	}

	if err := s.audit(ctx, dbTx, sub.ID, fromStatus, sub.Status, "charge_success", domain.ActorWebhook); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("subscription_id", sub.ID.String()).
		Str("trade_no", ev.TradeNo).
		Int64("amount", ev.Amount).
		Time("period_end", periodEnd).
		Msg("charge success recorded, period extended")

	return &ports.LedgerResult{Subscription: sub, Payment: payment, Authorization: auth}, nil
}

// RecordChargeFailure appends a failed Payment with retry scheduling state and
// advances the past_due -> grace -> cancelled ladder.
func (s *LedgerServiceImpl) RecordChargeFailure(ctx context.Context, ev ports.ChargeEvent) (*ports.LedgerResult, error) {
	auth, err := s.authRepo.GetByMemberRef(ctx, ev.MemberRef)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find authorization: %w", err))
	}
	if auth == nil {
		return nil, apperror.ErrNotFound("authorization")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	sub, err := s.subRepo.GetCurrentByOwnerForUpdate(ctx, dbTx, auth.OwnerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrNotFound("subscription")
	}
	if !sub.CanAcceptCharge() {
		return nil, apperror.ErrStateConflict(fmt.Sprintf("charge failure for %s subscription", sub.Status))
	}

	now := ev.OccurredAt.UTC()
	fromStatus := sub.Status
	reason := ev.Reason
	if reason == "" {
		reason = domain.ReasonPaymentFailed
	}

	// The unpaid period starts where current coverage ends; consecutive retry
	// failures for the same period accumulate against max_retries.
	periodStart := sub.CurrentPeriodEnd
	priorFailures, err := s.payRepo.CountFailedForPeriod(ctx, sub.ID, periodStart)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count failed attempts: %w", err))
	}
	attempts := priorFailures + 1

	payment := &domain.Payment{
		ID:              uuid.New(),
		SubscriptionID:  sub.ID,
		AuthorizationID: auth.ID,
		TradeNo:         ev.TradeNo,
		GatewayTradeNo:  strPtr(ev.GatewayTradeNo),
		Amount:          ev.Amount,
		Currency:        sub.Currency,
		Status:          domain.PaymentStatusFailed,
		PeriodStart:     periodStart,
		PeriodEnd:       sub.Cycle.PeriodEnd(periodStart),
		RetryCount:      priorFailures,
		MaxRetries:      s.maxRetries,
		FailureReason:   &reason,
		CreatedAt:       now,
		ProcessedAt:     &now,
	}

	var notify func()
	switch {
	case fromStatus != domain.SubscriptionStatusActive && sub.GraceElapsed(now):
		// Grace already ran out; this failure is terminal.
		sub.Status = domain.SubscriptionStatusCancelled
		ownerID, r := sub.OwnerID, reason
		notify = func() { s.notifyPaymentFailure(ownerID, r) }

	case attempts >= s.maxRetries:
		// Retry budget exhausted. Cancel if the grace deadline has passed
		// (or was never set), otherwise hold in grace until it does.
		if sub.GracePeriodEndsAt == nil || sub.GraceElapsed(now) {
			sub.Status = domain.SubscriptionStatusCancelled
			ownerID, r := sub.OwnerID, reason
			notify = func() { s.notifyPaymentFailure(ownerID, r) }
		} else {
			sub.Status = domain.SubscriptionStatusGrace
			ownerID, deadline := sub.OwnerID, *sub.GracePeriodEndsAt
			notify = func() { s.notifyGraceWarning(ownerID, deadline) }
		}

	default:
		sub.Status = domain.SubscriptionStatusPastDue
		if sub.GracePeriodEndsAt == nil {
			deadline := now.Add(s.graceWindow)
			sub.GracePeriodEndsAt = &deadline
		}
		nextRetry := now.Add(s.retryBackoff << priorFailures) // Exponential backoff
		payment.NextRetryAt = &nextRetry
	}

	if err := s.payRepo.Create(ctx, dbTx, payment); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.ErrDuplicateDelivery()
		}
		return nil, apperror.InternalError(fmt.Errorf("create failed payment: %w", err))
	}

	sub.UpdatedAt = now
	if err := s.subRepo.Update(ctx, dbTx, sub); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update subscription: %w", err))
	}

	if err := s.audit(ctx, dbTx, sub.ID, fromStatus, sub.Status, reason, domain.ActorWebhook); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if notify != nil {
		notify()
	}

	s.log.Warn().
		Str("subscription_id", sub.ID.String()).
		Str("trade_no", ev.TradeNo).
		Str("reason", reason).
		Int("attempts", attempts).
		Str("status", string(sub.Status)).
		Msg("charge failure recorded")

	return &ports.LedgerResult{Subscription: sub, Payment: payment, Authorization: auth}, nil
}

// Cancel cancels the owner's subscription. With atPeriodEnd, coverage runs to
// the end of the paid period and the scheduler applies the terminal transition.
func (s *LedgerServiceImpl) Cancel(ctx context.Context, ownerID uuid.UUID, atPeriodEnd bool) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	sub, err := s.subRepo.GetCurrentByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock subscription: %w", err))
	}
	if sub == nil {
		return apperror.ErrNotFound("subscription")
	}

	now := time.Now().UTC()
	fromStatus := sub.Status

	if atPeriodEnd {
		sub.CancelAtPeriodEnd = true
	} else {
		sub.Status = domain.SubscriptionStatusCancelled
	}
	sub.UpdatedAt = now
	if err := s.subRepo.Update(ctx, dbTx, sub); err != nil {
		return apperror.InternalError(fmt.Errorf("update subscription: %w", err))
	}

	if err := s.audit(ctx, dbTx, sub.ID, fromStatus, sub.Status, domain.ReasonUserCancelled, domain.ActorAPI); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("subscription_id", sub.ID.String()).
		Bool("at_period_end", atPeriodEnd).
		Msg("subscription cancellation recorded")
	return nil
}

// Downgrade moves the owner to another plan. Immediate downgrades terminate
// the current record and open a new one; at period end the scheduler applies
// the pending plan.
func (s *LedgerServiceImpl) Downgrade(ctx context.Context, ownerID uuid.UUID, planID string, atPeriodEnd bool) error {
	plan, ok := s.catalog.Lookup(planID)
	if !ok {
		return apperror.ErrUnknownPlan(planID)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	sub, err := s.subRepo.GetCurrentByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock subscription: %w", err))
	}
	if sub == nil {
		return apperror.ErrNotFound("subscription")
	}
	if sub.PlanID == plan.ID {
		return apperror.ErrStateConflict("already on requested plan")
	}

	now := time.Now().UTC()

	if atPeriodEnd {
		pending := plan.ID
		reason := domain.ReasonDowngrade
		sub.PendingPlanID = &pending
		sub.DowngradeReason = &reason
		sub.UpdatedAt = now
		if err := s.subRepo.Update(ctx, dbTx, sub); err != nil {
			return apperror.InternalError(fmt.Errorf("update subscription: %w", err))
		}
		if err := s.audit(ctx, dbTx, sub.ID, sub.Status, sub.Status, domain.ReasonDowngrade, domain.ActorAPI); err != nil {
			return err
		}
		if err := dbTx.Commit(ctx); err != nil {
			return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		return nil
	}

	if _, err := s.replacePlan(ctx, dbTx, sub, plan, now, domain.ActorAPI); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// ApplyMaintenance applies elapsed grace deadlines and pending period-end
// work for one subscription. No-op for terminal records, so crashed sweeps
// re-run safely.
func (s *LedgerServiceImpl) ApplyMaintenance(ctx context.Context, subscriptionID uuid.UUID, now time.Time) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	sub, err := s.subRepo.GetByIDForUpdate(ctx, dbTx, subscriptionID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock subscription: %w", err))
	}
	if sub == nil {
		return apperror.ErrNotFound("subscription")
	}
	if sub.IsTerminal() {
		return nil
	}

	now = now.UTC()
	fromStatus := sub.Status
	var notify func()

	switch {
	case fromStatus != domain.SubscriptionStatusActive && sub.GraceElapsed(now):
		sub.Status = domain.SubscriptionStatusCancelled
		ownerID := sub.OwnerID
		notify = func() { s.notifyPaymentFailure(ownerID, domain.ReasonPaymentFailed) }

	case sub.CancelAtPeriodEnd && sub.PeriodExpired(now):
		sub.Status = domain.SubscriptionStatusCancelled

	case sub.PendingPlanID != nil && sub.PeriodExpired(now):
		plan, ok := s.catalog.Lookup(*sub.PendingPlanID)
		if !ok {
			return apperror.ErrUnknownPlan(*sub.PendingPlanID)
		}
		if _, err := s.replacePlan(ctx, dbTx, sub, plan, now, domain.ActorScheduler); err != nil {
			return err
		}
		if err := dbTx.Commit(ctx); err != nil {
			return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		return nil

	default:
		return nil
	}

	reason := domain.ReasonUserCancelled
	if fromStatus != domain.SubscriptionStatusActive {
		reason = domain.ReasonPaymentFailed
	}

	sub.UpdatedAt = now
	if err := s.subRepo.Update(ctx, dbTx, sub); err != nil {
		return apperror.InternalError(fmt.Errorf("update subscription: %w", err))
	}
	if err := s.audit(ctx, dbTx, sub.ID, fromStatus, sub.Status, reason, domain.ActorScheduler); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if notify != nil {
		notify()
	}

	s.log.Info().
		Str("subscription_id", sub.ID.String()).
		Str("from", string(fromStatus)).
		Str("to", string(sub.Status)).
		Msg("maintenance transition applied")
	return nil
}

// CurrentSubscription returns the owner's non-terminal subscription, or nil.
func (s *LedgerServiceImpl) CurrentSubscription(ctx context.Context, ownerID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subRepo.GetCurrentByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get current subscription: %w", err))
	}
	return sub, nil
}

// replacePlan terminalizes sub as downgraded and opens a new subscription on
// plan, reusing the authorization. Both mutations share the caller's tx.
func (s *LedgerServiceImpl) replacePlan(ctx context.Context, dbTx pgx.Tx, sub *domain.Subscription, plan domain.Plan, now time.Time, actor string) (*domain.Subscription, error) {
	fromStatus := sub.Status
	reason := domain.ReasonDowngrade

	sub.Status = domain.SubscriptionStatusDowngraded
	sub.DowngradeReason = &reason
	sub.UpdatedAt = now
	if err := s.subRepo.Update(ctx, dbTx, sub); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("terminate subscription: %w", err))
	}
	if err := s.audit(ctx, dbTx, sub.ID, fromStatus, sub.Status, reason, actor); err != nil {
		return nil, err
	}

	periodStart := now
	if sub.PeriodExpired(now) {
		periodStart = sub.CurrentPeriodEnd
	}
	replacement := &domain.Subscription{
		ID:                 uuid.New(),
		OwnerID:            sub.OwnerID,
		PlanID:             plan.ID,
		Cycle:              plan.Cycle,
		Amount:             plan.Amount,
		Currency:           plan.Currency,
		Status:             domain.SubscriptionStatusActive,
		AuthorizationID:    sub.AuthorizationID,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   plan.Cycle.PeriodEnd(periodStart),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.subRepo.Create(ctx, dbTx, replacement); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create replacement subscription: %w", err))
	}
	if err := s.audit(ctx, dbTx, replacement.ID, domain.SubscriptionStatusPendingAuth, domain.SubscriptionStatusActive, reason, actor); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("subscription_id", sub.ID.String()).
		Str("replacement_id", replacement.ID.String()).
		Str("plan_id", plan.ID).
		Msg("plan downgrade applied")
	return replacement, nil
}

// audit writes the transition row; the only permitted status mutation path.
func (s *LedgerServiceImpl) audit(ctx context.Context, dbTx pgx.Tx, subID uuid.UUID, from, to domain.SubscriptionStatus, reason, actor string) error {
	t := &domain.SubscriptionTransition{
		ID:             uuid.New(),
		SubscriptionID: subID,
		FromStatus:     from,
		ToStatus:       to,
		Reason:         reason,
		Actor:          actor,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.transRepo.Create(ctx, dbTx, t); err != nil {
		return apperror.InternalError(fmt.Errorf("write transition audit: %w", err))
	}
	return nil
}

// Notifications go out after commit, best-effort.

func (s *LedgerServiceImpl) notifyPaymentFailure(ownerID uuid.UUID, reason string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendPaymentFailureNotice(context.Background(), ownerID, reason); err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("failed to send payment failure notice")
	}
}

func (s *LedgerServiceImpl) notifyGraceWarning(ownerID uuid.UUID, deadline time.Time) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendGracePeriodWarning(context.Background(), ownerID, deadline); err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("failed to send grace period warning")
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation. On the payments trade_no index it means another delivery of the
// same charge already committed.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
