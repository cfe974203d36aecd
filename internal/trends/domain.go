package trends

import (
	"errors"
	"fmt"
	"time"

	"github.com/meridian-ops/meridian/internal/money"
)

// ErrInvalidRecord marks a record that failed boundary validation. The
// aggregation aborts on the first such record instead of skewing totals.
var ErrInvalidRecord = errors.New("trends: invalid record")

// InvoiceStatus enumerates invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusPending   InvoiceStatus = "PENDING"
	StatusOverdue   InvoiceStatus = "OVERDUE"
	StatusPaid      InvoiceStatus = "PAID"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// Valid reports whether the status is a known value.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusOverdue, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Open reports whether the invoice still represents expected, unrealised
// revenue. Open invoices feed the forecast rather than recognised revenue.
func (s InvoiceStatus) Open() bool {
	return s == StatusDraft || s == StatusPending || s == StatusOverdue
}

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

// Invoice is a billable event as seen by the aggregation engine.
type Invoice struct {
	ID       int64         `json:"id"`
	Amount   money.Cents   `json:"amount"`
	Status   InvoiceStatus `json:"status"`
	IssuedAt time.Time     `json:"issued_at"`
	DueAt    time.Time     `json:"due_at"`
}

func (i Invoice) validate() error {
	if !i.Status.Valid() {
		return fmt.Errorf("%w: invoice %d: unknown status %q", ErrInvalidRecord, i.ID, i.Status)
	}
	if i.Amount < 0 {
		return fmt.Errorf("%w: invoice %d: negative amount %s", ErrInvalidRecord, i.ID, i.Amount)
	}
	if i.IssuedAt.IsZero() {
		return fmt.Errorf("%w: invoice %d: missing issue date", ErrInvalidRecord, i.ID)
	}
	return nil
}

// Expense is a one-time cost attributed entirely to the month it was incurred.
type Expense struct {
	ID         int64       `json:"id"`
	Amount     money.Cents `json:"amount"`
	IncurredAt time.Time   `json:"incurred_at"`
}

func (e Expense) validate() error {
	if e.Amount < 0 {
		return fmt.Errorf("%w: expense %d: negative amount %s", ErrInvalidRecord, e.ID, e.Amount)
	}
	if e.IncurredAt.IsZero() {
		return fmt.Errorf("%w: expense %d: missing date", ErrInvalidRecord, e.ID)
	}
	return nil
}

// Subscription is a recurring cost. Monthly subscriptions recur every month
// of the reporting window; annual ones post whole in their due month.
type Subscription struct {
	ID     int64        `json:"id"`
	Amount money.Cents  `json:"amount"`
	Cycle  BillingCycle `json:"cycle"`
	DueAt  *time.Time   `json:"due_at,omitempty"`
}

func (s Subscription) validate() error {
	if !s.Cycle.Valid() {
		return fmt.Errorf("%w: subscription %d: unknown billing cycle %q", ErrInvalidRecord, s.ID, s.Cycle)
	}
	if s.Amount < 0 {
		return fmt.Errorf("%w: subscription %d: negative amount %s", ErrInvalidRecord, s.ID, s.Amount)
	}
	return nil
}

// Client is carried through the record set for presentation joins; the
// aggregation math does not consume it.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RecordSet bundles all raw records for one fiscal year.
type RecordSet struct {
	Invoices      []Invoice      `json:"invoices"`
	Expenses      []Expense      `json:"expenses"`
	Subscriptions []Subscription `json:"subscriptions"`
	Clients       []Client       `json:"clients"`
}

// MonthlyPoint is one month of the derived financial trend series.
// All fields are cents; NetIncome and Forecast may be negative.
type MonthlyPoint struct {
	Month            string      `json:"month"`
	TotalRevenue     money.Cents `json:"total_revenue"`
	Expenses         money.Cents `json:"expenses"`
	Subscriptions    money.Cents `json:"subscriptions"`
	NetIncome        money.Cents `json:"net_income"`
	TaxesDue         money.Cents `json:"taxes_due"`
	UpcomingPayments money.Cents `json:"upcoming_payments"`
	Forecast         money.Cents `json:"forecast"`
}
