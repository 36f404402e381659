package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/internal/core/ports/mocks"
	"subscription-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type webhookTestDeps struct {
	svc        *WebhookServiceImpl
	codec      *mocks.MockSignatureCodec
	ledger     *mocks.MockLedger
	eventRepo  *mocks.MockWebhookEventRepository
	dedupStore *mocks.MockWebhookDedupStore
	ctrl       *gomock.Controller
}

func setupWebhookService(t *testing.T) *webhookTestDeps {
	ctrl := gomock.NewController(t)
	d := &webhookTestDeps{
		codec:      mocks.NewMockSignatureCodec(ctrl),
		ledger:     mocks.NewMockLedger(ctrl),
		eventRepo:  mocks.NewMockWebhookEventRepository(ctrl),
		dedupStore: mocks.NewMockWebhookDedupStore(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewWebhookService(
		d.codec, d.ledger, d.eventRepo, d.dedupStore,
		time.Hour, 90*24*time.Hour, zerolog.Nop(),
	)
	return d
}

func chargeFields(rtnCode string) map[string]string {
	return map[string]string{
		"MerchantID":       "2000132",
		"MerchantMemberID": "MBR-001",
		"MerchantTradeNo":  "SUB123456789ABCD0000",
		"gwsr":             "11943983",
		"amount":           "990",
		"RtnCode":          rtnCode,
		"process_date":     "2025/07/01 11:00:21",
		"CheckMacValue":    "AABBCC",
	}
}

func inbound(eventType string, fields map[string]string) ports.InboundWebhook {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	return ports.InboundWebhook{
		EventType: eventType,
		Fields:    fields,
		RawBody:   form.Encode(),
		SourceIP:  "175.99.72.1",
	}
}

// insertAsNew makes the event repo accept any insert as a first delivery.
func (d *webhookTestDeps) insertAsNew(ctx context.Context) {
	d.eventRepo.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
			return e, false, nil
		})
}

// ==================== Process Tests ====================

func TestWebhookService_Process_ChargeSuccess(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("1")
	subID, payID := uuid.New(), uuid.New()

	var settled *domain.WebhookEvent
	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil) // processing
	d.ledger.EXPECT().RecordChargeSuccess(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, ev ports.ChargeEvent) (*ports.LedgerResult, error) {
			assert.Equal(t, "MBR-001", ev.MemberRef)
			assert.Equal(t, "SUB123456789ABCD0000", ev.TradeNo)
			assert.Equal(t, "11943983", ev.GatewayTradeNo)
			assert.Equal(t, int64(990), ev.Amount)
			assert.Equal(t, time.Date(2025, 7, 1, 11, 0, 21, 0, time.UTC), ev.OccurredAt)
			return &ports.LedgerResult{
				Subscription: &domain.Subscription{ID: subID},
				Payment:      &domain.Payment{ID: payID},
			}, nil
		})
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) error {
			settled = e
			return nil
		})
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeCharge, "11943983", 90*24*time.Hour).Return(nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, fields))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)

	require.NotNil(t, settled)
	assert.Equal(t, domain.WebhookProcessingSucceeded, settled.Processing)
	assert.True(t, settled.SignatureValid)
	require.NotNil(t, settled.SubscriptionID)
	assert.Equal(t, subID, *settled.SubscriptionID)
	require.NotNil(t, settled.PaymentID)
	assert.Equal(t, payID, *settled.PaymentID)
}

func TestWebhookService_Process_ChargeFailureRouted(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("10100058")

	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)
	d.ledger.EXPECT().RecordChargeFailure(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, ev ports.ChargeEvent) (*ports.LedgerResult, error) {
			assert.Equal(t, domain.ReasonCardExpired, ev.Reason)
			return &ports.LedgerResult{}, nil
		})
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeCharge, "11943983", gomock.Any()).Return(nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, fields))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
}

func TestWebhookService_Process_AuthorizationSuccess(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	ownerID := uuid.New()
	fields := map[string]string{
		"MerchantID":       "2000132",
		"MerchantMemberID": "MBR-001",
		"MerchantTradeNo":  "SUB123456789ABCD0000",
		"gwsr":             "11943983",
		"TotalAmount":      "990",
		"RtnCode":          "1",
		"card4no":          "4242",
		"card6no":          "431195",
		"process_date":     "2025/06/01 12:00:00",
		"CustomField1":     ownerID.String(),
		"CustomField2":     "coach_monthly",
		"CheckMacValue":    "AABBCC",
	}

	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeAuthorization, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)
	d.ledger.EXPECT().RecordAuthorizationSuccess(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, ev ports.AuthorizationEvent) (*ports.LedgerResult, error) {
			assert.Equal(t, ownerID, ev.OwnerID)
			assert.Equal(t, "coach_monthly", ev.PlanID)
			assert.Equal(t, "VISA", ev.CardBrand)
			assert.Equal(t, "4242", ev.CardLast4)
			assert.Equal(t, int64(990), ev.Amount)
			return &ports.LedgerResult{}, nil
		})
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeAuthorization, "11943983", gomock.Any()).Return(nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeAuthorization, fields))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
}

func TestWebhookService_Process_DuplicateViaRedis(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(true, nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, chargeFields("1")))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
}

func TestWebhookService_Process_DuplicateViaDatabase(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stored := &domain.WebhookEvent{
		ID:            uuid.New(),
		EventType:     domain.EventTypeCharge,
		ExternalRef:   "11943983",
		Processing:    domain.WebhookProcessingSucceeded,
		DeliveryCount: 2,
	}

	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.eventRepo.EXPECT().Insert(ctx, gomock.Any()).Return(stored, true, nil)
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeCharge, "11943983", gomock.Any()).Return(nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, chargeFields("1")))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
}

func TestWebhookService_Process_InvalidSignature(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("1")
	fields["CheckMacValue"] = "FORGED"

	var failed *domain.WebhookEvent
	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(false)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) error {
			failed = e
			return nil
		})

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, fields))
	// The gateway still gets its ack; the failure is internal only
	assert.Equal(t, AckOK, ack)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "SIG_001"))

	require.NotNil(t, failed)
	assert.Equal(t, domain.WebhookProcessingFailed, failed.Processing)
	assert.False(t, failed.SignatureValid)
	// Flagged for manual review, never auto-retried
	assert.Nil(t, failed.NextRetryAt)
}

func TestWebhookService_Process_StateConflictSettles(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("1")

	var settled *domain.WebhookEvent
	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().RecordChargeSuccess(ctx, gomock.Any()).
		Return(nil, apperror.ErrStateConflict("charge success for cancelled subscription"))
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) error {
			settled = e
			return nil
		})
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeCharge, "11943983", gomock.Any()).Return(nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, fields))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
	require.NotNil(t, settled)
	assert.Equal(t, domain.WebhookProcessingSucceeded, settled.Processing)
}

func TestWebhookService_Process_DuplicateLedgerRowSettles(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("1")

	// The Redis fast path missed, but the ledger's unique trade number
	// caught the duplicate. The event settles; no retry is scheduled.
	var settled *domain.WebhookEvent
	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().RecordChargeSuccess(ctx, gomock.Any()).
		Return(nil, apperror.ErrDuplicateDelivery())
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) error {
			settled = e
			return nil
		})
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeCharge, "11943983", gomock.Any()).Return(nil)

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, fields))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
	require.NotNil(t, settled)
	assert.Equal(t, domain.WebhookProcessingSucceeded, settled.Processing)
	assert.Nil(t, settled.NextRetryAt)
}

func TestWebhookService_Process_LedgerErrorSchedulesRetry(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("1")

	var failed *domain.WebhookEvent
	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeCharge, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().RecordChargeSuccess(ctx, gomock.Any()).
		Return(nil, apperror.ErrDatabaseError(assert.AnError))
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) error {
			failed = e
			return nil
		})

	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeCharge, fields))
	assert.Equal(t, AckOK, ack)
	require.Error(t, err)

	require.NotNil(t, failed)
	assert.Equal(t, domain.WebhookProcessingFailed, failed.Processing)
	require.NotNil(t, failed.NextRetryAt)
}

func TestWebhookService_Process_FailedAuthorizationSettles(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("10100058")

	d.dedupStore.EXPECT().IsSettled(ctx, domain.EventTypeAuthorization, "11943983").Return(false, nil)
	d.insertAsNew(ctx)
	d.codec.EXPECT().Verify(fields).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeAuthorization, "11943983", gomock.Any()).Return(nil)

	// A rejected binding has nothing to transition; the event settles so the
	// gateway's redelivery stops
	ack, err := d.svc.Process(ctx, inbound(domain.EventTypeAuthorization, fields))
	require.NoError(t, err)
	assert.Equal(t, AckOK, ack)
}

// ==================== Reprocess Tests ====================

func TestWebhookService_Reprocess(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fields := chargeFields("1")
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	event := &domain.WebhookEvent{
		ID:          uuid.New(),
		EventType:   domain.EventTypeCharge,
		ExternalRef: "11943983",
		RawBody:     form.Encode(),
		Processing:  domain.WebhookProcessingFailed,
		RetryCount:  1,
	}

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.codec.EXPECT().Verify(gomock.Any()).Return(true)
	d.eventRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)
	d.ledger.EXPECT().RecordChargeSuccess(ctx, gomock.Any()).Return(&ports.LedgerResult{}, nil)
	d.dedupStore.EXPECT().MarkSettled(ctx, domain.EventTypeCharge, "11943983", gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Reprocess(ctx, event.ID))
	assert.Equal(t, domain.WebhookProcessingSucceeded, event.Processing)
	assert.Equal(t, 2, event.RetryCount)
}

func TestWebhookService_Reprocess_AlreadySettled(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	event := &domain.WebhookEvent{
		ID:         uuid.New(),
		Processing: domain.WebhookProcessingSucceeded,
	}
	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)

	require.NoError(t, d.svc.Reprocess(ctx, event.ID))
}
