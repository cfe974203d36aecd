package trends

import (
	"errors"
	"time"

	"github.com/meridian-ops/meridian/internal/money"
)

// TaxRateBasisPoints is the flat tax provision applied to gross monthly
// revenue: 2000 bp = 20%.
const TaxRateBasisPoints = 2000

// forecastMonths is how many months past the reference month the series
// extends, reference month included.
const forecastMonths = 4

// Aggregate folds raw financial records into the month-bucketed trend series
// for the reference date's UTC year.
//
// The series always starts at January. Paid invoices are recognised as
// revenue in their issue month; draft, pending, and overdue invoices
// accumulate into the forecast instead. Monthly subscriptions burden every
// month of the year; annual ones post whole in their due month. Each bucket
// is then finalised with the tax provision and net income, and the series is
// cut to the elapsed months plus a three-month forward look, never past
// December.
//
// Aggregate performs no I/O and is deterministic given its inputs. Malformed
// records (unknown enum values, negative amounts, missing dates) abort the
// whole computation rather than silently skewing the totals.
func Aggregate(invoices []Invoice, expenses []Expense, subscriptions []Subscription, reference time.Time) ([]MonthlyPoint, error) {
	if reference.IsZero() {
		return nil, errors.New("trends: reference date required")
	}
	ref := reference.UTC()
	year := ref.Year()

	points := make([]MonthlyPoint, 12)
	for i := range points {
		points[i].Month = monthLabel(year, i)
	}

	for _, inv := range invoices {
		if err := inv.validate(); err != nil {
			return nil, err
		}
		issued := inv.IssuedAt.UTC()
		if issued.Year() != year {
			continue
		}
		bucket := &points[int(issued.Month())-1]
		switch {
		case inv.Status == StatusPaid:
			bucket.TotalRevenue += inv.Amount
		case inv.Status.Open():
			bucket.Forecast += inv.Amount
		}
	}

	for _, exp := range expenses {
		if err := exp.validate(); err != nil {
			return nil, err
		}
		incurred := exp.IncurredAt.UTC()
		if incurred.Year() != year {
			continue
		}
		points[int(incurred.Month())-1].Expenses += exp.Amount
	}

	var monthlyRecurring money.Cents
	for _, sub := range subscriptions {
		if err := sub.validate(); err != nil {
			return nil, err
		}
		switch sub.Cycle {
		case CycleMonthly:
			// Due dates are irrelevant for monthly cycles.
			monthlyRecurring += sub.Amount
		case CycleAnnually:
			if sub.DueAt == nil {
				continue
			}
			due := sub.DueAt.UTC()
			if due.Year() != year {
				continue
			}
			bucket := &points[int(due.Month())-1]
			bucket.Expenses += sub.Amount
			bucket.Subscriptions += sub.Amount
		}
	}
	// The monthly burden applies to every month of the year, past and
	// future alike: recurring costs are projected as a constant.
	for i := range points {
		points[i].Expenses += monthlyRecurring
		points[i].Subscriptions += monthlyRecurring
	}

	for i := range points {
		p := &points[i]
		p.TaxesDue = p.TotalRevenue.BasisPoints(TaxRateBasisPoints)
		p.NetIncome = p.TotalRevenue - p.TaxesDue - p.Expenses
		p.UpcomingPayments = p.Subscriptions
		p.Forecast -= p.Expenses
	}

	end := int(ref.Month()) - 1 + forecastMonths
	if end > 12 {
		end = 12
	}
	return points[:end], nil
}

func monthLabel(year, index int) string {
	return time.Date(year, time.Month(index+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
