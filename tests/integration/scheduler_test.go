package integration

import (
	"net/http"
	"testing"
	"time"

	"subscription-billing/config"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/service"
	"subscription-billing/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScheduler builds a sweep-only scheduler over the app's stack. Tests
// drive the sweeps directly instead of starting the tickers.
func newScheduler(app *testApp) *service.SchedulerServiceImpl {
	return service.NewSchedulerService(
		app.subs, app.pays, app.auths, app.events,
		app.ledger, app.gwClient, app.processor,
		config.SchedulerConfig{SweepBatchSize: 100},
		"SUB",
		logger.New("error", false),
	)
}

func TestIntegration_RetrySweepChargesRecoveredPeriodOnce(t *testing.T) {
	app := newTestApp(t)
	ownerID := uuid.New()
	memberRef := app.activate(t, ownerID)

	// Decline schedules a retry and parks the subscription in past_due.
	status, body := app.postWebhook(t, domain.EventTypeCharge,
		chargeFields(memberRef, "SUB251001000000RS01", "30001", "10100058"))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "1|OK", body)

	sched := newScheduler(app)
	sweepAt := time.Date(2026, 10, 5, 4, 0, 0, 0, time.UTC)

	sched.RunRetrySweep(t.Context(), sweepAt)
	require.Equal(t, 1, app.gateway.postsTo("/charge"))

	sub, err := app.subs.GetCurrentByOwner(t.Context(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	recoveredEnd := sub.CurrentPeriodEnd

	// The successful retry unschedules every failed row for the period.
	for _, p := range app.pays.all() {
		if p.Status == domain.PaymentStatusFailed {
			assert.Nil(t, p.NextRetryAt, "failed row %s still scheduled", p.TradeNo)
		}
	}

	// A later sweep finds nothing due: no second charge, no second extension.
	sched.RunRetrySweep(t.Context(), sweepAt.Add(time.Hour))
	assert.Equal(t, 1, app.gateway.postsTo("/charge"))

	sub, err = app.subs.GetCurrentByOwner(t.Context(), ownerID)
	require.NoError(t, err)
	assert.True(t, sub.CurrentPeriodEnd.Equal(recoveredEnd),
		"recovered period must be charged exactly once")
}
