package domain

import (
	"strings"
	"time"
)

// BillingCycle is the recurring charge period.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

// Valid reports whether the cycle is a known value.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleAnnual
}

// PeriodEnd returns the end of a billing period starting at from.
func (c BillingCycle) PeriodEnd(from time.Time) time.Time {
	if c == CycleAnnual {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

// PeriodType returns the gateway's period type code.
func (c BillingCycle) PeriodType() string {
	if c == CycleAnnual {
		return "Y"
	}
	return "M"
}

// ParseBillingCycle normalizes a stored cycle string. Legacy rows carry
// uppercase variants; the canonical representation is lowercase.
func ParseBillingCycle(s string) (BillingCycle, bool) {
	c := BillingCycle(strings.ToLower(strings.TrimSpace(s)))
	if c == "yearly" {
		c = CycleAnnual
	}
	return c, c.Valid()
}

// Plan is a purchasable subscription tier.
type Plan struct {
	ID       string
	Name     string
	Cycle    BillingCycle
	Amount   int64 // Minor units
	Currency string
}

// defaultPlans is the closed plan set. Amounts can be overridden via config.
var defaultPlans = []Plan{
	{ID: "coach_monthly", Name: "Coaching Monthly", Cycle: CycleMonthly, Amount: 990, Currency: "TWD"},
	{ID: "coach_annual", Name: "Coaching Annual", Cycle: CycleAnnual, Amount: 9900, Currency: "TWD"},
}

// PlanCatalog resolves plan ids to plans.
type PlanCatalog struct {
	plans map[string]Plan
}

// NewPlanCatalog builds the default catalog, applying per-plan amount overrides.
func NewPlanCatalog(overrides map[string]int64) *PlanCatalog {
	c := &PlanCatalog{plans: make(map[string]Plan, len(defaultPlans))}
	for _, p := range defaultPlans {
		if amount, ok := overrides[p.ID]; ok && amount > 0 {
			p.Amount = amount
		}
		c.plans[p.ID] = p
	}
	return c
}

// Lookup resolves a plan id. Legacy uppercase ids are normalized to the
// canonical lowercase form before lookup.
func (c *PlanCatalog) Lookup(planID string) (Plan, bool) {
	p, ok := c.plans[NormalizePlanID(planID)]
	return p, ok
}

// NormalizePlanID returns the canonical lowercase plan id.
func NormalizePlanID(planID string) string {
	return strings.ToLower(strings.TrimSpace(planID))
}
