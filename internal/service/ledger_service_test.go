package service

import (
	"context"
	"testing"
	"time"

	"subscription-billing/config"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/internal/core/ports/mocks"
	"subscription-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ledgerTestDeps struct {
	svc        *LedgerServiceImpl
	subRepo    *mocks.MockSubscriptionRepository
	authRepo   *mocks.MockAuthorizationRepository
	payRepo    *mocks.MockPaymentRepository
	transRepo  *mocks.MockTransitionRepository
	transactor *mocks.MockDBTransactor
	notifier   *mocks.MockNotifier
	ctrl       *gomock.Controller
}

func setupLedgerService(t *testing.T) *ledgerTestDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerTestDeps{
		subRepo:    mocks.NewMockSubscriptionRepository(ctrl),
		authRepo:   mocks.NewMockAuthorizationRepository(ctrl),
		payRepo:    mocks.NewMockPaymentRepository(ctrl),
		transRepo:  mocks.NewMockTransitionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		notifier:   mocks.NewMockNotifier(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewLedgerService(
		d.subRepo, d.authRepo, d.payRepo, d.transRepo, d.transactor,
		d.notifier, domain.NewPlanCatalog(nil),
		config.BillingConfig{
			GraceWindow:  7 * 24 * time.Hour,
			MaxRetries:   3,
			RetryBackoff: 24 * time.Hour,
			Currency:     "TWD",
		},
		zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func activeSubscription(ownerID uuid.UUID, now time.Time) *domain.Subscription {
	authID := uuid.New()
	return &domain.Subscription{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		PlanID:             "coach_monthly",
		Cycle:              domain.CycleMonthly,
		Amount:             990,
		Currency:           "TWD",
		Status:             domain.SubscriptionStatusActive,
		AuthorizationID:    &authID,
		CurrentPeriodStart: now.AddDate(0, -1, 0),
		CurrentPeriodEnd:   now,
		CreatedAt:          now.AddDate(0, -1, 0),
		UpdatedAt:          now.AddDate(0, -1, 0),
	}
}

// ==================== RecordAuthorizationSuccess Tests ====================

func TestLedgerService_RecordAuthorizationSuccess(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	ev := ports.AuthorizationEvent{
		OwnerID:        ownerID,
		MemberRef:      "MBR-001",
		GatewayAuthRef: "gwauth-123",
		CardBrand:      "VISA",
		CardLast4:      "4242",
		PlanID:         "coach_monthly",
		TradeNo:        "SUB123456789ABCD0000",
		GatewayTradeNo: "2506011200001",
		Amount:         990,
		OccurredAt:     now,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(nil, nil)
	d.authRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.subRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.RecordAuthorizationSuccess(ctx, ev)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, domain.SubscriptionStatusActive, result.Subscription.Status)
	assert.Equal(t, "coach_monthly", result.Subscription.PlanID)
	assert.Equal(t, now, result.Subscription.CurrentPeriodStart)
	assert.Equal(t, now.AddDate(0, 1, 0), result.Subscription.CurrentPeriodEnd)

	assert.Equal(t, domain.AuthorizationStatusActive, result.Authorization.Status)
	assert.Equal(t, 1, result.Authorization.ExecTimes)
	assert.Equal(t, "MBR-001", result.Authorization.MemberRef)

	assert.Equal(t, domain.PaymentStatusSuccess, result.Payment.Status)
	assert.Equal(t, int64(990), result.Payment.Amount)
	assert.Equal(t, ev.TradeNo, result.Payment.TradeNo)
}

func TestLedgerService_RecordAuthorizationSuccess_AlreadySubscribed(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).
		Return(activeSubscription(ownerID, now), nil)

	_, err := d.svc.RecordAuthorizationSuccess(ctx, ports.AuthorizationEvent{
		OwnerID:    ownerID,
		MemberRef:  "MBR-001",
		PlanID:     "coach_monthly",
		OccurredAt: now,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SUB_004"))
}

func TestLedgerService_RecordAuthorizationSuccess_UnknownPlan(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.RecordAuthorizationSuccess(context.Background(), ports.AuthorizationEvent{
		OwnerID: uuid.New(),
		PlanID:  "platinum_weekly",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SUB_005"))
}

// ==================== RecordChargeSuccess Tests ====================

func TestLedgerService_RecordChargeSuccess_ExtendsPeriod(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now)
	auth := &domain.Authorization{
		ID:        *sub.AuthorizationID,
		OwnerID:   ownerID,
		MemberRef: "MBR-001",
		Status:    domain.AuthorizationStatusActive,
		ExecTimes: 1,
	}
	prevEnd := sub.CurrentPeriodEnd

	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.payRepo.EXPECT().ClearRetries(ctx, tx, sub.ID, prevEnd).Return(nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.authRepo.EXPECT().Update(ctx, tx, auth).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.RecordChargeSuccess(ctx, ports.ChargeEvent{
		MemberRef:      "MBR-001",
		TradeNo:        "SUB987654321ABCD0000",
		GatewayTradeNo: "2507010300001",
		Amount:         990,
		OccurredAt:     now,
	})
	require.NoError(t, err)

	// New period starts where the old one ended
	assert.Equal(t, prevEnd, result.Subscription.CurrentPeriodStart)
	assert.Equal(t, prevEnd.AddDate(0, 1, 0), result.Subscription.CurrentPeriodEnd)
	assert.Equal(t, domain.SubscriptionStatusActive, result.Subscription.Status)
	assert.Equal(t, 2, result.Authorization.ExecTimes)
}

func TestLedgerService_RecordChargeSuccess_ClearsGrace(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 3, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.AddDate(0, 0, -2))
	sub.Status = domain.SubscriptionStatusPastDue
	graceEnd := now.AddDate(0, 0, 5)
	sub.GracePeriodEndsAt = &graceEnd

	auth := &domain.Authorization{ID: *sub.AuthorizationID, OwnerID: ownerID, MemberRef: "MBR-001", ExecTimes: 3}

	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.payRepo.EXPECT().ClearRetries(ctx, tx, sub.ID, gomock.Any()).Return(nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.authRepo.EXPECT().Update(ctx, tx, auth).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.RecordChargeSuccess(ctx, ports.ChargeEvent{
		MemberRef:  "MBR-001",
		TradeNo:    "SUB111111111ABCD0000",
		Amount:     990,
		OccurredAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusActive, result.Subscription.Status)
	assert.Nil(t, result.Subscription.GracePeriodEndsAt)
}

func TestLedgerService_RecordChargeSuccess_DuplicateTradeNo(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now)
	auth := &domain.Authorization{ID: *sub.AuthorizationID, OwnerID: ownerID, MemberRef: "MBR-001"}

	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(&pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: "payments_trade_no_key",
	})

	// A second delivery racing past the dedup fast path hits the unique
	// trade number and must surface as a duplicate, not a retryable error.
	_, err := d.svc.RecordChargeSuccess(ctx, ports.ChargeEvent{
		MemberRef:  "MBR-001",
		TradeNo:    "SUB111111111ABCD0000",
		Amount:     990,
		OccurredAt: now,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SUB_001"))
}

func TestLedgerService_RecordChargeSuccess_CancelledSubscription(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now)
	sub.Status = domain.SubscriptionStatusCancelled
	auth := &domain.Authorization{ID: uuid.New(), OwnerID: ownerID, MemberRef: "MBR-001"}

	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)

	_, err := d.svc.RecordChargeSuccess(ctx, ports.ChargeEvent{MemberRef: "MBR-001", OccurredAt: now})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SUB_002"))
}

// ==================== RecordChargeFailure Tests ====================

func TestLedgerService_RecordChargeFailure_FirstFailure(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now)
	auth := &domain.Authorization{ID: *sub.AuthorizationID, OwnerID: ownerID, MemberRef: "MBR-001"}

	var created *domain.Payment
	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().CountFailedForPeriod(ctx, sub.ID, sub.CurrentPeriodEnd).Return(0, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, p *domain.Payment) error {
			created = p
			return nil
		})
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.RecordChargeFailure(ctx, ports.ChargeEvent{
		MemberRef:  "MBR-001",
		TradeNo:    "SUB222222222ABCD0000",
		Amount:     990,
		Reason:     domain.ReasonPaymentFailed,
		OccurredAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubscriptionStatusPastDue, result.Subscription.Status)
	require.NotNil(t, result.Subscription.GracePeriodEndsAt)
	assert.Equal(t, now.Add(7*24*time.Hour), *result.Subscription.GracePeriodEndsAt)

	require.NotNil(t, created)
	assert.Equal(t, domain.PaymentStatusFailed, created.Status)
	assert.Equal(t, 0, created.RetryCount)
	require.NotNil(t, created.NextRetryAt)
	assert.Equal(t, now.Add(24*time.Hour), *created.NextRetryAt)
}

func TestLedgerService_RecordChargeFailure_BackoffDoubles(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 2, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.AddDate(0, 0, -1))
	sub.Status = domain.SubscriptionStatusPastDue
	graceEnd := now.AddDate(0, 0, 6)
	sub.GracePeriodEndsAt = &graceEnd
	auth := &domain.Authorization{ID: *sub.AuthorizationID, OwnerID: ownerID, MemberRef: "MBR-001"}

	var created *domain.Payment
	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().CountFailedForPeriod(ctx, sub.ID, sub.CurrentPeriodEnd).Return(1, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, p *domain.Payment) error {
			created = p
			return nil
		})
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.RecordChargeFailure(ctx, ports.ChargeEvent{
		MemberRef:  "MBR-001",
		TradeNo:    "SUB333333333ABCD0000",
		Amount:     990,
		OccurredAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubscriptionStatusPastDue, result.Subscription.Status)
	// Grace deadline set on first failure is never moved
	assert.Equal(t, graceEnd, *result.Subscription.GracePeriodEndsAt)
	require.NotNil(t, created.NextRetryAt)
	assert.Equal(t, now.Add(48*time.Hour), *created.NextRetryAt)
}

func TestLedgerService_RecordChargeFailure_RetriesExhausted(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 4, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.AddDate(0, 0, -3))
	sub.Status = domain.SubscriptionStatusPastDue
	graceEnd := now.AddDate(0, 0, 4)
	sub.GracePeriodEndsAt = &graceEnd
	auth := &domain.Authorization{ID: *sub.AuthorizationID, OwnerID: ownerID, MemberRef: "MBR-001"}

	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().CountFailedForPeriod(ctx, sub.ID, sub.CurrentPeriodEnd).Return(2, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().SendGracePeriodWarning(gomock.Any(), ownerID, graceEnd).Return(nil)

	result, err := d.svc.RecordChargeFailure(ctx, ports.ChargeEvent{
		MemberRef:  "MBR-001",
		TradeNo:    "SUB444444444ABCD0000",
		Amount:     990,
		OccurredAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusGrace, result.Subscription.Status)
}

func TestLedgerService_RecordChargeFailure_GraceElapsedCancels(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 10, 3, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.AddDate(0, 0, -9))
	sub.Status = domain.SubscriptionStatusGrace
	graceEnd := now.Add(-time.Hour)
	sub.GracePeriodEndsAt = &graceEnd
	auth := &domain.Authorization{ID: *sub.AuthorizationID, OwnerID: ownerID, MemberRef: "MBR-001"}

	d.authRepo.EXPECT().GetByMemberRef(ctx, "MBR-001").Return(auth, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.payRepo.EXPECT().CountFailedForPeriod(ctx, sub.ID, sub.CurrentPeriodEnd).Return(3, nil)
	d.payRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().SendPaymentFailureNotice(gomock.Any(), ownerID, domain.ReasonCardExpired).Return(nil)

	result, err := d.svc.RecordChargeFailure(ctx, ports.ChargeEvent{
		MemberRef:  "MBR-001",
		TradeNo:    "SUB555555555ABCD0000",
		Amount:     990,
		Reason:     domain.ReasonCardExpired,
		OccurredAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusCancelled, result.Subscription.Status)
	require.NotNil(t, result.Payment.FailureReason)
	assert.Equal(t, domain.ReasonCardExpired, *result.Payment.FailureReason)
}

// ==================== Cancel Tests ====================

func TestLedgerService_Cancel_AtPeriodEnd(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}
	sub := activeSubscription(ownerID, time.Now().UTC().AddDate(0, 0, 10))

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Cancel(ctx, ownerID, true))
	assert.True(t, sub.CancelAtPeriodEnd)
	// Coverage continues until the period ends
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
}

func TestLedgerService_Cancel_Immediate(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}
	sub := activeSubscription(ownerID, time.Now().UTC().AddDate(0, 0, 10))

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Cancel(ctx, ownerID, false))
	assert.Equal(t, domain.SubscriptionStatusCancelled, sub.Status)
}

func TestLedgerService_Cancel_NoSubscription(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(nil, nil)

	err := d.svc.Cancel(ctx, ownerID, false)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SUB_003"))
}

// ==================== Downgrade Tests ====================

func TestLedgerService_Downgrade_Immediate(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	sub := activeSubscription(ownerID, time.Now().UTC().AddDate(0, 0, 10))
	sub.PlanID = "coach_annual"
	sub.Cycle = domain.CycleAnnual

	var replacement *domain.Subscription
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.subRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, s *domain.Subscription) error {
			replacement = s
			return nil
		})
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil).Times(2)

	require.NoError(t, d.svc.Downgrade(ctx, ownerID, "coach_monthly", false))

	// Old record terminalized, replacement opened on the new plan reusing
	// the same authorization
	assert.Equal(t, domain.SubscriptionStatusDowngraded, sub.Status)
	require.NotNil(t, replacement)
	assert.Equal(t, "coach_monthly", replacement.PlanID)
	assert.Equal(t, domain.SubscriptionStatusActive, replacement.Status)
	assert.Equal(t, sub.AuthorizationID, replacement.AuthorizationID)
}

func TestLedgerService_Downgrade_AtPeriodEnd(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}

	sub := activeSubscription(ownerID, time.Now().UTC().AddDate(0, 0, 10))
	sub.PlanID = "coach_annual"

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Downgrade(ctx, ownerID, "coach_monthly", true))
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.PendingPlanID)
	assert.Equal(t, "coach_monthly", *sub.PendingPlanID)
}

func TestLedgerService_Downgrade_SamePlan(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	tx := &mockTx{}
	sub := activeSubscription(ownerID, time.Now().UTC())

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetCurrentByOwnerForUpdate(ctx, tx, ownerID).Return(sub, nil)

	err := d.svc.Downgrade(ctx, ownerID, "coach_monthly", false)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SUB_002"))
}

// ==================== ApplyMaintenance Tests ====================

func TestLedgerService_ApplyMaintenance_GraceElapsed(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.AddDate(0, 0, -10))
	sub.Status = domain.SubscriptionStatusGrace
	graceEnd := now.Add(-2 * time.Hour)
	sub.GracePeriodEndsAt = &graceEnd

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetByIDForUpdate(ctx, tx, sub.ID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().SendPaymentFailureNotice(gomock.Any(), ownerID, domain.ReasonPaymentFailed).Return(nil)

	require.NoError(t, d.svc.ApplyMaintenance(ctx, sub.ID, now))
	assert.Equal(t, domain.SubscriptionStatusCancelled, sub.Status)
}

func TestLedgerService_ApplyMaintenance_CancelAtPeriodEnd(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.Add(-time.Hour)) // Period ended an hour ago
	sub.CancelAtPeriodEnd = true

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetByIDForUpdate(ctx, tx, sub.ID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	require.NoError(t, d.svc.ApplyMaintenance(ctx, sub.ID, now))
	assert.Equal(t, domain.SubscriptionStatusCancelled, sub.Status)
}

func TestLedgerService_ApplyMaintenance_PendingDowngrade(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	now := time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(ownerID, now.Add(-time.Hour))
	sub.PlanID = "coach_annual"
	pending := "coach_monthly"
	sub.PendingPlanID = &pending

	var replacement *domain.Subscription
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetByIDForUpdate(ctx, tx, sub.ID).Return(sub, nil)
	d.subRepo.EXPECT().Update(ctx, tx, sub).Return(nil)
	d.subRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, s *domain.Subscription) error {
			replacement = s
			return nil
		})
	d.transRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil).Times(2)

	require.NoError(t, d.svc.ApplyMaintenance(ctx, sub.ID, now))
	assert.Equal(t, domain.SubscriptionStatusDowngraded, sub.Status)
	require.NotNil(t, replacement)
	assert.Equal(t, "coach_monthly", replacement.PlanID)
	// The new period picks up where the paid one ended
	assert.Equal(t, sub.CurrentPeriodEnd, replacement.CurrentPeriodStart)
}

func TestLedgerService_ApplyMaintenance_TerminalNoop(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(uuid.New(), now)
	sub.Status = domain.SubscriptionStatusCancelled

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetByIDForUpdate(ctx, tx, sub.ID).Return(sub, nil)

	require.NoError(t, d.svc.ApplyMaintenance(ctx, sub.ID, now))
	assert.Equal(t, domain.SubscriptionStatusCancelled, sub.Status)
}

func TestLedgerService_ApplyMaintenance_NothingDue(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC)
	tx := &mockTx{}

	sub := activeSubscription(uuid.New(), now.AddDate(0, 0, 10))

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.subRepo.EXPECT().GetByIDForUpdate(ctx, tx, sub.ID).Return(sub, nil)

	require.NoError(t, d.svc.ApplyMaintenance(ctx, sub.ID, now))
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
}

// ==================== CurrentSubscription Tests ====================

func TestLedgerService_CurrentSubscription(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	sub := activeSubscription(ownerID, time.Now().UTC())

	d.subRepo.EXPECT().GetCurrentByOwner(ctx, ownerID).Return(sub, nil)

	got, err := d.svc.CurrentSubscription(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
}
