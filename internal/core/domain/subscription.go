package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the lifecycle state of a subscription.
// Canonical representation is lowercase; the persistence layer stores these
// strings verbatim and new variants are added additive-only.
type SubscriptionStatus string

const (
	SubscriptionStatusPendingAuth SubscriptionStatus = "pending_auth"
	SubscriptionStatusActive      SubscriptionStatus = "active"
	SubscriptionStatusPastDue     SubscriptionStatus = "past_due"
	SubscriptionStatusGrace       SubscriptionStatus = "grace"
	SubscriptionStatusCancelled   SubscriptionStatus = "cancelled"
	SubscriptionStatusDowngraded  SubscriptionStatus = "downgraded"
)

// Coarse reason codes exposed to end users. Raw gateway error text never
// leaves the core.
const (
	ReasonPaymentFailed      = "payment_failed"
	ReasonCardExpired        = "card_expired"
	ReasonGatewayUnavailable = "gateway_unavailable"
	ReasonUserCancelled      = "user_cancelled"
	ReasonDowngrade          = "downgrade"
)

// Subscription is the one active-or-terminal billing record per owner per
// product line. Status is only ever written through ledger transitions.
type Subscription struct {
	ID                 uuid.UUID          `json:"id"`
	OwnerID            uuid.UUID          `json:"owner_id"`
	PlanID             string             `json:"plan_id"`
	Cycle              BillingCycle       `json:"cycle"`
	Amount             int64              `json:"amount"` // Minor units per cycle
	Currency           string             `json:"currency"`
	Status             SubscriptionStatus `json:"status"`
	AuthorizationID    *uuid.UUID         `json:"authorization_id,omitempty"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	GracePeriodEndsAt  *time.Time         `json:"grace_period_ends_at,omitempty"`
	PendingPlanID      *string            `json:"pending_plan_id,omitempty"` // Downgrade target applied at period end
	DowngradeReason    *string            `json:"downgrade_reason,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// IsTerminal reports whether the subscription reached a final state.
func (s *Subscription) IsTerminal() bool {
	return s.Status == SubscriptionStatusCancelled || s.Status == SubscriptionStatusDowngraded
}

// CanAcceptCharge reports whether a charge outcome may be applied.
func (s *Subscription) CanAcceptCharge() bool {
	switch s.Status {
	case SubscriptionStatusActive, SubscriptionStatusPastDue, SubscriptionStatusGrace:
		return true
	}
	return false
}

// GraceElapsed reports whether the grace deadline has passed at now.
func (s *Subscription) GraceElapsed(now time.Time) bool {
	return s.GracePeriodEndsAt != nil && !now.Before(*s.GracePeriodEndsAt)
}

// PeriodExpired reports whether the current period has ended at now.
func (s *Subscription) PeriodExpired(now time.Time) bool {
	return !now.Before(s.CurrentPeriodEnd)
}
