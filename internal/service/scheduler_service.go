package service

import (
	"context"
	"sync"
	"time"

	"subscription-billing/config"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/pkg/apperror"

	"github.com/rs/zerolog"
)

// SchedulerServiceImpl runs the periodic reconciliation sweeps: payment
// retries, subscription maintenance, and webhook-log cleanup. Each sweep
// processes its units independently so one bad record never aborts the rest,
// and every unit commits on its own, making a crashed sweep safe to re-run.
type SchedulerServiceImpl struct {
	subRepo   ports.SubscriptionRepository
	payRepo   ports.PaymentRepository
	authRepo  ports.AuthorizationRepository
	eventRepo ports.WebhookEventRepository
	ledger    ports.Ledger
	gateway   ports.GatewayClient
	processor ports.WebhookProcessor

	cfg         config.SchedulerConfig
	tradePrefix string

	log    zerolog.Logger
	stop   chan struct{}
	stopMu sync.Mutex
	wg     sync.WaitGroup
}

// NewSchedulerService creates a new SchedulerServiceImpl.
func NewSchedulerService(
	subRepo ports.SubscriptionRepository,
	payRepo ports.PaymentRepository,
	authRepo ports.AuthorizationRepository,
	eventRepo ports.WebhookEventRepository,
	ledger ports.Ledger,
	gateway ports.GatewayClient,
	processor ports.WebhookProcessor,
	cfg config.SchedulerConfig,
	tradePrefix string,
	log zerolog.Logger,
) *SchedulerServiceImpl {
	return &SchedulerServiceImpl{
		subRepo:     subRepo,
		payRepo:     payRepo,
		authRepo:    authRepo,
		eventRepo:   eventRepo,
		ledger:      ledger,
		gateway:     gateway,
		processor:   processor,
		cfg:         cfg,
		tradePrefix: tradePrefix,
		log:         log,
	}
}

// Start launches the sweep loops. Each cadence runs independently.
func (s *SchedulerServiceImpl) Start(ctx context.Context) {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})

	s.loop(ctx, "payment_retry", s.cfg.RetryInterval, s.RunRetrySweep)
	s.loop(ctx, "maintenance", s.cfg.MaintenanceInterval, s.RunMaintenanceSweep)
	s.loop(ctx, "cleanup", s.cfg.CleanupInterval, s.RunCleanupSweep)

	s.log.Info().
		Dur("retry_interval", s.cfg.RetryInterval).
		Dur("maintenance_interval", s.cfg.MaintenanceInterval).
		Dur("cleanup_interval", s.cfg.CleanupInterval).
		Msg("reconciliation scheduler started")
}

// Stop signals the loops and waits for in-flight sweeps to finish.
func (s *SchedulerServiceImpl) Stop() {
	s.stopMu.Lock()
	if s.stop == nil {
		s.stopMu.Unlock()
		return
	}
	close(s.stop)
	s.stop = nil
	s.stopMu.Unlock()

	s.wg.Wait()
	s.log.Info().Msg("reconciliation scheduler stopped")
}

func (s *SchedulerServiceImpl) loop(ctx context.Context, name string, interval time.Duration, sweep func(context.Context, time.Time)) {
	stop := s.stop
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case now := <-ticker.C:
				start := time.Now()
				sweep(ctx, now.UTC())
				s.log.Debug().
					Str("sweep", name).
					Dur("took", time.Since(start)).
					Msg("sweep finished")
			}
		}
	}()
}

// RunRetrySweep retries failed payments that are due another attempt, and
// reprocesses webhook events that failed internally.
func (s *SchedulerServiceImpl) RunRetrySweep(ctx context.Context, now time.Time) {
	payments, err := s.payRepo.ListRetryable(ctx, now, s.cfg.SweepBatchSize)
	if err != nil {
		s.log.Error().Err(err).Msg("retry sweep: listing retryable payments failed")
	} else {
		for i := range payments {
			s.retryPayment(ctx, &payments[i], now)
		}
	}

	events, err := s.eventRepo.ListRetryable(ctx, now, s.cfg.SweepBatchSize)
	if err != nil {
		s.log.Error().Err(err).Msg("retry sweep: listing retryable webhook events failed")
		return
	}
	for i := range events {
		if err := s.processor.Reprocess(ctx, events[i].ID); err != nil {
			s.log.Warn().Err(err).
				Str("event_id", events[i].ID.String()).
				Msg("webhook reprocessing failed")
		}
	}
}

// retryPayment issues one fresh charge attempt for a failed payment. The
// outcome is recorded through the ledger; an ambiguous gateway outcome
// records nothing and leaves the row for the next sweep.
func (s *SchedulerServiceImpl) retryPayment(ctx context.Context, p *domain.Payment, now time.Time) {
	sub, err := s.subRepo.GetByID(ctx, p.SubscriptionID)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", p.ID.String()).Msg("retry: loading subscription failed")
		return
	}
	if sub == nil || !sub.CanAcceptCharge() {
		return
	}
	// A concurrent webhook may already have paid this period; a row whose
	// period is no longer the subscription's next unpaid period is superseded.
	if !p.PeriodStart.Equal(sub.CurrentPeriodEnd) {
		return
	}

	auth, err := s.authRepo.GetByID(ctx, p.AuthorizationID)
	if err != nil {
		s.log.Error().Err(err).Str("payment_id", p.ID.String()).Msg("retry: loading authorization failed")
		return
	}
	if auth == nil || !auth.IsChargeable() {
		return
	}

	// A retry is a new logical attempt with its own trade number; the old one
	// stays on the failed row for audit.
	tradeNo := NewTradeNo(s.tradePrefix, sub.OwnerID, time.Now())

	result, err := s.gateway.Charge(ctx, ports.ChargeRequest{
		MemberRef: auth.MemberRef,
		TradeNo:   tradeNo,
		Amount:    p.Amount,
	})
	if err != nil {
		if apperror.IsRetryable(err) {
			// Unknown outcome: neither success nor failure may be recorded.
			// The webhook or the next sweep resolves it.
			s.log.Warn().Err(err).Str("trade_no", tradeNo).Msg("retry charge outcome unknown")
			return
		}
		// 4xx rejections are configuration errors; retrying cannot help.
		s.log.Error().Err(err).Str("trade_no", tradeNo).Msg("retry charge rejected by gateway")
		return
	}

	ev := ports.ChargeEvent{
		MemberRef:      auth.MemberRef,
		TradeNo:        tradeNo,
		GatewayTradeNo: result.GatewayTradeNo,
		Amount:         p.Amount,
		OccurredAt:     now,
	}
	if result.Success {
		_, err = s.ledger.RecordChargeSuccess(ctx, ev)
	} else {
		ev.Reason = result.Reason
		_, err = s.ledger.RecordChargeFailure(ctx, ev)
	}
	if err != nil {
		if apperror.IsCode(err, "SUB_002") {
			// The subscription moved on while we were charging; the sweep
			// ignores it and carries on.
			s.log.Warn().Err(err).Str("trade_no", tradeNo).Msg("retry outcome conflicts with ledger state")
			return
		}
		s.log.Error().Err(err).Str("trade_no", tradeNo).Msg("recording retry outcome failed")
	}
}

// RunMaintenanceSweep expires grace periods and applies pending period-end
// cancellations and downgrades.
func (s *SchedulerServiceImpl) RunMaintenanceSweep(ctx context.Context, now time.Time) {
	subs, err := s.subRepo.ListMaintenanceDue(ctx, now, s.cfg.SweepBatchSize)
	if err != nil {
		s.log.Error().Err(err).Msg("maintenance sweep: listing subscriptions failed")
		return
	}
	for i := range subs {
		if err := s.ledger.ApplyMaintenance(ctx, subs[i].ID, now); err != nil {
			s.log.Error().Err(err).
				Str("subscription_id", subs[i].ID.String()).
				Msg("maintenance transition failed")
		}
	}
}

// RunCleanupSweep prunes webhook events past the retention window. Failed and
// in-flight rows are preserved regardless of age.
func (s *SchedulerServiceImpl) RunCleanupSweep(ctx context.Context, now time.Time) {
	cutoff := now.Add(-s.cfg.WebhookRetention)
	deleted, err := s.eventRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("cleanup sweep failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("webhook log pruned")
	}
}
