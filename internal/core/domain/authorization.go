package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizationStatus is the lifecycle state of a payment-method binding.
type AuthorizationStatus string

const (
	AuthorizationStatusPending AuthorizationStatus = "pending"
	AuthorizationStatusActive  AuthorizationStatus = "active"
	AuthorizationStatusExpired AuthorizationStatus = "expired"
	AuthorizationStatusRevoked AuthorizationStatus = "revoked"
)

// Authorization is a bound recurring-payment credential plus its charge
// schedule. One per payment-method binding; never hard-deleted.
type Authorization struct {
	ID             uuid.UUID           `json:"id"`
	OwnerID        uuid.UUID           `json:"owner_id"`
	MemberRef      string              `json:"member_ref"`       // External member id sent to the gateway
	GatewayAuthRef string              `json:"gateway_auth_ref"` // Gateway's authorization reference
	CardBrand      string              `json:"card_brand"`
	CardLast4      string              `json:"card_last4"`
	Cycle          BillingCycle        `json:"cycle"`
	AmountPerCycle int64               `json:"amount_per_cycle"` // Minor units
	ExecTimes      int                 `json:"exec_times"`       // Charges executed so far
	ExecLimit      int                 `json:"exec_limit"`       // Gateway-side execution ceiling
	Status         AuthorizationStatus `json:"status"`
	NextChargeAt   *time.Time          `json:"next_charge_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// IsChargeable reports whether the authorization can back another charge.
func (a *Authorization) IsChargeable() bool {
	if a.Status != AuthorizationStatusActive {
		return false
	}
	return a.ExecLimit == 0 || a.ExecTimes < a.ExecLimit
}

// IsTerminal reports whether the authorization can never charge again.
func (a *Authorization) IsTerminal() bool {
	return a.Status == AuthorizationStatusExpired || a.Status == AuthorizationStatusRevoked
}
