package expenses

import (
	"time"

	"github.com/meridian-ops/meridian/internal/money"
)

// Expense is a one-time, already-incurred cost.
type Expense struct {
	ID         int64
	Category   string
	Amount     money.Cents
	IncurredAt time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExpenseInput for creating and updating expenses.
type ExpenseInput struct {
	Category   string
	Amount     money.Cents
	IncurredAt time.Time
	Notes      string
}
