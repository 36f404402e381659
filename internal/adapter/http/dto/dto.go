package dto

import (
	"time"

	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
)

// SubscribeRequest is the request body for starting a subscription.
type SubscribeRequest struct {
	PlanID string `json:"plan_id" binding:"required,plan_id,max=50"`
}

// CancelRequest is the request body for cancelling a subscription.
type CancelRequest struct {
	AtPeriodEnd bool `json:"at_period_end"`
}

// DowngradeRequest is the request body for moving to a cheaper plan.
type DowngradeRequest struct {
	PlanID      string `json:"plan_id" binding:"required,plan_id,max=50"`
	AtPeriodEnd bool   `json:"at_period_end"`
}

// AuthorizeFormResponse is the signed form the client posts to the gateway.
type AuthorizeFormResponse struct {
	Action  string            `json:"action"`
	Method  string            `json:"method"`
	Fields  map[string]string `json:"fields"`
	TradeNo string            `json:"trade_no"`
}

// SubscriptionResponse is the response body for subscription reads.
type SubscriptionResponse struct {
	ID                 string  `json:"id"`
	PlanID             string  `json:"plan_id"`
	Cycle              string  `json:"cycle"`
	Amount             int64   `json:"amount"`
	Currency           string  `json:"currency"`
	Status             string  `json:"status"`
	CurrentPeriodStart string  `json:"current_period_start"`
	CurrentPeriodEnd   string  `json:"current_period_end"`
	CancelAtPeriodEnd  bool    `json:"cancel_at_period_end"`
	GracePeriodEndsAt  *string `json:"grace_period_ends_at,omitempty"`
	PendingPlanID      *string `json:"pending_plan_id,omitempty"`
}

// ToSubscriptionResponse converts a domain subscription to its DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:                 s.ID.String(),
		PlanID:             s.PlanID,
		Cycle:              string(s.Cycle),
		Amount:             s.Amount,
		Currency:           s.Currency,
		Status:             string(s.Status),
		CurrentPeriodStart: s.CurrentPeriodStart.Format(time.RFC3339),
		CurrentPeriodEnd:   s.CurrentPeriodEnd.Format(time.RFC3339),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		PendingPlanID:      s.PendingPlanID,
	}
	if s.GracePeriodEndsAt != nil {
		g := s.GracePeriodEndsAt.Format(time.RFC3339)
		resp.GracePeriodEndsAt = &g
	}
	return resp
}

// StatsResponse is the dashboard billing aggregate.
type StatsResponse struct {
	Period          string           `json:"period"`
	TotalAttempts   int64            `json:"total_attempts"`
	Successful      int64            `json:"successful"`
	Failed          int64            `json:"failed"`
	Revenue         int64            `json:"revenue"`
	SuccessRate     float64          `json:"success_rate"`
	SubscriptionsBy map[string]int64 `json:"subscriptions_by_status"`
}

// ToStatsResponse converts the reporting aggregate to its DTO.
func ToStatsResponse(period string, stats *ports.BillingStats) StatsResponse {
	resp := StatsResponse{
		Period:          period,
		TotalAttempts:   stats.Payments.TotalAttempts,
		Successful:      stats.Payments.Successful,
		Failed:          stats.Payments.Failed,
		Revenue:         stats.Payments.Revenue,
		SubscriptionsBy: make(map[string]int64, len(stats.Subscriptions)),
	}
	if stats.Payments.TotalAttempts > 0 {
		resp.SuccessRate = float64(stats.Payments.Successful) / float64(stats.Payments.TotalAttempts)
	}
	for status, n := range stats.Subscriptions {
		resp.SubscriptionsBy[string(status)] = n
	}
	return resp
}
