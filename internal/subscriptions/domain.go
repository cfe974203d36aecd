package subscriptions

import (
	"time"

	"github.com/meridian-ops/meridian/internal/money"
)

// BillingCycle enumerates subscription recurrence patterns.
type BillingCycle string

const (
	CycleMonthly  BillingCycle = "MONTHLY"
	CycleAnnually BillingCycle = "ANNUALLY"
)

// Valid reports whether the cycle is a known value.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleAnnually
}

// Subscription is a recurring cost commitment.
type Subscription struct {
	ID        int64
	Name      string
	Amount    money.Cents
	Cycle     BillingCycle
	DueAt     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionInput for creating and updating subscriptions.
type SubscriptionInput struct {
	Name   string
	Amount money.Cents
	Cycle  BillingCycle
	DueAt  *time.Time
}
