package dto

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"subscription-billing/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bindSubscribe(t *testing.T, body string) error {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req SubscribeRequest
	return c.ShouldBindJSON(&req)
}

func TestSubscribeRequest_ValidPlanID(t *testing.T) {
	assert.NoError(t, bindSubscribe(t, `{"plan_id":"coach_monthly"}`))
	assert.NoError(t, bindSubscribe(t, `{"plan_id":"COACH_ANNUAL"}`))
}

func TestSubscribeRequest_RejectsUnsafePlanID(t *testing.T) {
	assert.Error(t, bindSubscribe(t, `{"plan_id":"coach monthly"}`))
	assert.Error(t, bindSubscribe(t, `{"plan_id":"../../etc/passwd"}`))
	assert.Error(t, bindSubscribe(t, `{"plan_id":""}`))
}

func TestSubscribeRequest_RejectsOverlongPlanID(t *testing.T) {
	assert.Error(t, bindSubscribe(t, `{"plan_id":"`+strings.Repeat("a", 51)+`"}`))
}

func TestToSubscriptionResponse_GraceDeadline(t *testing.T) {
	deadline := time.Date(2025, 7, 8, 11, 0, 0, 0, time.UTC)
	sub := &domain.Subscription{
		ID:                 uuid.New(),
		PlanID:             "coach_monthly",
		Cycle:              domain.CycleMonthly,
		Amount:             990,
		Currency:           "TWD",
		Status:             domain.SubscriptionStatusPastDue,
		CurrentPeriodStart: deadline.AddDate(0, -1, -7),
		CurrentPeriodEnd:   deadline.AddDate(0, 0, -7),
		GracePeriodEndsAt:  &deadline,
	}

	resp := ToSubscriptionResponse(sub)
	require.NotNil(t, resp.GracePeriodEndsAt)
	assert.Equal(t, "2025-07-08T11:00:00Z", *resp.GracePeriodEndsAt)
	assert.Equal(t, "past_due", resp.Status)
}
