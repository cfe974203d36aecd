package invoices

import (
	"time"

	"github.com/meridian-ops/meridian/internal/money"
)

// Status enumerates invoice lifecycle states.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusOverdue   Status = "OVERDUE"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusOverdue, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Invoice model.
type Invoice struct {
	ID        int64
	Number    string
	ClientID  int64
	ProjectID *int64
	Amount    money.Cents
	Status    Status
	IssuedAt  time.Time
	DueAt     time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceInput for creating invoices.
type InvoiceInput struct {
	ClientID  int64
	ProjectID *int64
	Amount    money.Cents
	IssuedAt  time.Time
	DueAt     time.Time
	Notes     string
}

// ListFilter narrows invoice listings.
type ListFilter struct {
	Status   *Status
	ClientID *int64
	Limit    int
	Offset   int
}
