package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transition actors.
const (
	ActorWebhook   = "webhook"
	ActorScheduler = "scheduler"
	ActorAPI       = "api"
)

// SubscriptionTransition is the audit row written on every status change.
// Writing one is the only permitted way to change Subscription.Status.
type SubscriptionTransition struct {
	ID             uuid.UUID          `json:"id"`
	SubscriptionID uuid.UUID          `json:"subscription_id"`
	FromStatus     SubscriptionStatus `json:"from_status"`
	ToStatus       SubscriptionStatus `json:"to_status"`
	Reason         string             `json:"reason"` // Coarse reason code
	Actor          string             `json:"actor"`
	CreatedAt      time.Time          `json:"created_at"`
}
