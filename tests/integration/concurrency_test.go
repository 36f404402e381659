package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The gateway redelivers callbacks aggressively and concurrently. These tests
// hammer the webhook endpoint with identical deliveries in parallel and assert
// the ledger applied each logical event exactly once.

func TestConcurrent_DuplicateChargeDeliveries(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	memberRef := app.activate(t, ownerID)

	sub, err := app.subs.GetCurrentByOwner(t.Context(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	firstPeriodEnd := sub.CurrentPeriodEnd

	fields := chargeFields(memberRef, "SUB251001000000CC01", "40001", "1")

	const deliveries = 8
	var wg sync.WaitGroup
	results := make([]string, deliveries)
	statuses := make([]int, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], results[i] = app.postWebhook(t, domain.EventTypeCharge, fields)
		}(i)
	}
	wg.Wait()

	// Every delivery is acked, success or duplicate.
	for i := 0; i < deliveries; i++ {
		assert.Equal(t, http.StatusOK, statuses[i])
		assert.Equal(t, "1|OK", results[i])
	}

	// Exactly one charge landed: the activation payment plus one success row.
	payments := app.pays.all()
	require.Len(t, payments, 2)
	assert.Equal(t, domain.PaymentStatusSuccess, payments[1].Status)

	// The period was extended exactly one cycle, not one per delivery.
	sub, err = app.subs.GetCurrentByOwner(t.Context(), ownerID)
	require.NoError(t, err)
	assert.True(t, sub.CurrentPeriodEnd.Equal(sub.Cycle.PeriodEnd(firstPeriodEnd)))

	// All deliveries collapsed onto one logical event.
	event, err := app.events.GetByKey(t.Context(), domain.EventTypeCharge, "40001")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, 1, app.events.count()-1, "one authorization event plus one charge event")

	// Losers of the race settle as duplicates; the event must never be left
	// failed with a retry scheduled.
	assert.Equal(t, domain.WebhookProcessingSucceeded, event.Processing)
	assert.Nil(t, event.NextRetryAt)
}

func TestConcurrent_DuplicateAuthorizationDeliveries(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	memberRef := service.NewMemberRef(ownerID, time.Now())
	fields := authorizationFields(ownerID, memberRef, "SUBCC02000000000001", "40002")

	const deliveries = 8
	var wg sync.WaitGroup
	statuses := make([]int, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], _ = app.postWebhook(t, domain.EventTypeAuthorization, fields)
		}(i)
	}
	wg.Wait()

	for i := 0; i < deliveries; i++ {
		assert.Equal(t, http.StatusOK, statuses[i])
	}

	// One owner, one subscription, one binding, one first payment.
	subs := app.subs.allByOwner(ownerID)
	require.Len(t, subs, 1)
	assert.Equal(t, domain.SubscriptionStatusActive, subs[0].Status)

	auth, err := app.auths.GetActiveByOwner(t.Context(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, memberRef, auth.MemberRef)

	assert.Len(t, app.pays.all(), 1)
}

func TestConcurrent_DistinctOwnersActivate(t *testing.T) {
	app := newTestApp(t)

	const owners = 6
	ownerIDs := make([]uuid.UUID, owners)
	for i := range ownerIDs {
		ownerIDs[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for i, ownerID := range ownerIDs {
		wg.Add(1)
		go func(i int, ownerID uuid.UUID) {
			defer wg.Done()
			memberRef := fmt.Sprintf("M260901OWNER%02d", i)
			tradeNo := fmt.Sprintf("SUBOWN%02d00000000001", i)
			gwsr := fmt.Sprintf("5%04d", i)
			status, body := app.postWebhook(t, domain.EventTypeAuthorization,
				authorizationFields(ownerID, memberRef, tradeNo, gwsr))
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "1|OK", body)
		}(i, ownerID)
	}
	wg.Wait()

	// Every owner got exactly one active subscription.
	for _, ownerID := range ownerIDs {
		subs := app.subs.allByOwner(ownerID)
		require.Len(t, subs, 1)
		assert.Equal(t, domain.SubscriptionStatusActive, subs[0].Status)
	}
	assert.Len(t, app.pays.all(), owners)

	counts, err := app.subs.CountByStatus(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(owners), counts[domain.SubscriptionStatusActive])
}

func TestConcurrent_ChargeAndCancelRace(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	memberRef := app.activate(t, ownerID)
	token := app.token(t, ownerID)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		app.postWebhook(t, domain.EventTypeCharge, chargeFields(memberRef, "SUB251001000000CC03", "40003", "1"))
	}()
	go func() {
		defer wg.Done()
		resp := app.apiRequest(t, http.MethodPost, "/api/v1/subscriptions/cancel", token,
			map[string]bool{"at_period_end": true})
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}()
	wg.Wait()

	// Whatever order the race resolved in, the invariants hold: one
	// subscription, flagged for period-end cancellation, at most one charge.
	subs := app.subs.allByOwner(ownerID)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].CancelAtPeriodEnd)
	assert.LessOrEqual(t, len(app.pays.all()), 2)
}

func TestCleanupPreservesFailedEvents(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	memberRef := app.activate(t, ownerID)

	// A settled charge, then a charge for a revoked member that the ledger
	// rejects terminally... use an unknown member so processing fails.
	app.postWebhook(t, domain.EventTypeCharge, chargeFields(memberRef, "SUB251001000000CL01", "50001", "1"))
	app.postWebhook(t, domain.EventTypeCharge, chargeFields("M260901GHOST", "SUB251001000000CL02", "50002", "1"))

	failed, err := app.events.GetByKey(t.Context(), domain.EventTypeCharge, "50002")
	require.NoError(t, err)
	require.NotNil(t, failed)
	require.Equal(t, domain.WebhookProcessingFailed, failed.Processing)

	// Prune everything older than a cutoff far in the future.
	deleted, err := app.events.DeleteExpired(t.Context(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted, "authorization and settled charge events are pruned")

	// The failed event survives for the retry sweep regardless of age.
	kept, err := app.events.GetByKey(t.Context(), domain.EventTypeCharge, "50002")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
