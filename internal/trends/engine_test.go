package trends

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/meridian-ops/meridian/internal/money"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := date(year, month, day)
	return &t
}

func TestAggregateSinglePaidInvoice(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 100000, Status: StatusPaid, IssuedAt: date(2025, time.March, 15), DueAt: date(2025, time.April, 15)},
	}
	points, err := Aggregate(invoices, nil, nil, date(2025, time.June, 1))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	march := points[2]
	if march.TotalRevenue != 100000 {
		t.Fatalf("march revenue = %d, want 100000", march.TotalRevenue)
	}
	if march.TaxesDue != 20000 {
		t.Fatalf("march taxes = %d, want 20000", march.TaxesDue)
	}
	if march.Expenses != 0 {
		t.Fatalf("march expenses = %d, want 0", march.Expenses)
	}
	if march.NetIncome != 80000 {
		t.Fatalf("march net income = %d, want 80000", march.NetIncome)
	}
	for i, p := range points {
		if i == 2 {
			continue
		}
		if p.TotalRevenue != 0 || p.TaxesDue != 0 || p.NetIncome != 0 {
			t.Fatalf("month %s expected zeroed revenue fields, got %+v", p.Month, p)
		}
	}
}

func TestAggregateMonthlySubscriptionWindow(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Amount: 5000, Cycle: CycleMonthly},
	}
	points, err := Aggregate(nil, nil, subs, date(2025, time.June, 1))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(points) != 9 {
		t.Fatalf("expected 9 points for a June reference, got %d", len(points))
	}
	if points[0].Month != "2025-01" || points[8].Month != "2025-09" {
		t.Fatalf("unexpected window bounds %s..%s", points[0].Month, points[8].Month)
	}
	for _, p := range points {
		if p.Subscriptions != 5000 {
			t.Fatalf("month %s subscriptions = %d, want 5000", p.Month, p.Subscriptions)
		}
		if p.Expenses < 5000 {
			t.Fatalf("month %s expenses = %d, want >= 5000", p.Month, p.Expenses)
		}
		if p.UpcomingPayments != p.Subscriptions {
			t.Fatalf("month %s upcoming != subscriptions", p.Month)
		}
	}
}

func TestAggregateAnnualSubscriptionPostsWholeInDueMonth(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Amount: 120000, Cycle: CycleAnnually, DueAt: datePtr(2025, time.October, 1)},
		{ID: 2, Amount: 1000, Cycle: CycleMonthly},
	}
	points, err := Aggregate(nil, nil, subs, date(2025, time.November, 20))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("expected full year window, got %d", len(points))
	}
	for i, p := range points {
		want := money.Cents(1000)
		if i == 9 {
			want = 121000
		}
		if p.Expenses != want {
			t.Fatalf("month %s expenses = %d, want %d", p.Month, p.Expenses, want)
		}
		if p.Subscriptions != want {
			t.Fatalf("month %s subscriptions = %d, want %d", p.Month, p.Subscriptions, want)
		}
	}
}

func TestAggregateTwoAnnualsSameMonth(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Amount: 30000, Cycle: CycleAnnually, DueAt: datePtr(2025, time.April, 3)},
		{ID: 2, Amount: 45000, Cycle: CycleAnnually, DueAt: datePtr(2025, time.April, 28)},
	}
	points, err := Aggregate(nil, nil, subs, date(2025, time.May, 1))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if points[3].Subscriptions != 75000 {
		t.Fatalf("april subscriptions = %d, want 75000", points[3].Subscriptions)
	}
}

func TestAggregateForecastSeparatesOpenFromPaid(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 50000, Status: StatusDraft, IssuedAt: date(2025, time.March, 2), DueAt: date(2025, time.March, 30)},
		{ID: 2, Amount: 70000, Status: StatusPaid, IssuedAt: date(2025, time.March, 9), DueAt: date(2025, time.March, 30)},
	}
	points, err := Aggregate(invoices, nil, nil, date(2025, time.March, 20))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	march := points[2]
	if march.Forecast != 50000 {
		t.Fatalf("march forecast = %d, want 50000", march.Forecast)
	}
	if march.TotalRevenue != 70000 {
		t.Fatalf("march revenue = %d, want 70000", march.TotalRevenue)
	}
}

func TestAggregateForecastDeductsMonthBurden(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 50000, Status: StatusPending, IssuedAt: date(2025, time.February, 10), DueAt: date(2025, time.March, 10)},
	}
	expenses := []Expense{
		{ID: 1, Amount: 12000, IncurredAt: date(2025, time.February, 11)},
	}
	subs := []Subscription{
		{ID: 1, Amount: 3000, Cycle: CycleMonthly},
	}
	points, err := Aggregate(invoices, expenses, subs, date(2025, time.February, 15))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	feb := points[1]
	if feb.Expenses != 15000 {
		t.Fatalf("feb expenses = %d, want 15000", feb.Expenses)
	}
	if feb.Forecast != 35000 {
		t.Fatalf("feb forecast = %d, want 35000", feb.Forecast)
	}
	// A month with no open invoices forecasts the negative of its burden.
	if points[0].Forecast != -3000 {
		t.Fatalf("jan forecast = %d, want -3000", points[0].Forecast)
	}
}

func TestAggregateYearIsolation(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 10000, Status: StatusPaid, IssuedAt: date(2024, time.December, 31), DueAt: date(2025, time.January, 15)},
		{ID: 2, Amount: 10000, Status: StatusPaid, IssuedAt: date(2026, time.January, 1), DueAt: date(2026, time.February, 1)},
	}
	expenses := []Expense{
		{ID: 1, Amount: 500, IncurredAt: date(2024, time.November, 2)},
	}
	points, err := Aggregate(invoices, expenses, nil, date(2025, time.June, 15))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	for _, p := range points {
		if p.TotalRevenue != 0 || p.Expenses != 0 {
			t.Fatalf("month %s should be empty, got %+v", p.Month, p)
		}
	}
}

func TestAggregateCancelledInvoiceCountsNowhere(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 10000, Status: StatusCancelled, IssuedAt: date(2025, time.April, 1), DueAt: date(2025, time.May, 1)},
	}
	points, err := Aggregate(invoices, nil, nil, date(2025, time.June, 1))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	for _, p := range points {
		if p.TotalRevenue != 0 || p.Forecast != 0 {
			t.Fatalf("cancelled invoice leaked into %s: %+v", p.Month, p)
		}
	}
}

func TestAggregateWindowLength(t *testing.T) {
	cases := []struct {
		month time.Month
		want  int
	}{
		{time.January, 4},
		{time.June, 9},
		{time.August, 11},
		{time.September, 12},
		{time.December, 12},
	}
	for _, tc := range cases {
		points, err := Aggregate(nil, nil, nil, date(2025, tc.month, 10))
		if err != nil {
			t.Fatalf("aggregate: %v", err)
		}
		if len(points) != tc.want {
			t.Fatalf("reference %s: got %d points, want %d", tc.month, len(points), tc.want)
		}
	}
}

func TestAggregateInvariants(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 100100, Status: StatusPaid, IssuedAt: date(2025, time.January, 5), DueAt: date(2025, time.February, 5)},
		{ID: 2, Amount: 33333, Status: StatusPaid, IssuedAt: date(2025, time.March, 5), DueAt: date(2025, time.April, 5)},
		{ID: 3, Amount: 42000, Status: StatusOverdue, IssuedAt: date(2025, time.March, 7), DueAt: date(2025, time.March, 21)},
	}
	expenses := []Expense{
		{ID: 1, Amount: 7500, IncurredAt: date(2025, time.January, 9)},
	}
	subs := []Subscription{
		{ID: 1, Amount: 2500, Cycle: CycleMonthly},
		{ID: 2, Amount: 90000, Cycle: CycleAnnually, DueAt: datePtr(2025, time.March, 1)},
	}
	points, err := Aggregate(invoices, expenses, subs, date(2025, time.April, 10))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	for _, p := range points {
		if p.TaxesDue != p.TotalRevenue.BasisPoints(TaxRateBasisPoints) {
			t.Fatalf("month %s tax invariant broken: revenue=%d taxes=%d", p.Month, p.TotalRevenue, p.TaxesDue)
		}
		if p.NetIncome != p.TotalRevenue-p.TaxesDue-p.Expenses {
			t.Fatalf("month %s net income invariant broken", p.Month)
		}
		if p.UpcomingPayments != p.Subscriptions {
			t.Fatalf("month %s upcoming payments invariant broken", p.Month)
		}
		if p.Subscriptions > p.Expenses {
			t.Fatalf("month %s subscriptions %d exceed expenses %d", p.Month, p.Subscriptions, p.Expenses)
		}
		if p.TaxesDue < 0 {
			t.Fatalf("month %s negative tax", p.Month)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Amount: 100000, Status: StatusPaid, IssuedAt: date(2025, time.March, 15), DueAt: date(2025, time.April, 15)},
		{ID: 2, Amount: 40000, Status: StatusPending, IssuedAt: date(2025, time.May, 2), DueAt: date(2025, time.June, 2)},
	}
	subs := []Subscription{{ID: 1, Amount: 900, Cycle: CycleMonthly}}
	ref := date(2025, time.July, 4)
	first, err := Aggregate(invoices, nil, subs, ref)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	second, err := Aggregate(invoices, nil, subs, ref)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate is not deterministic")
	}
}

func TestAggregateAnnualWithoutDueDateContributesNothing(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Amount: 50000, Cycle: CycleAnnually},
	}
	points, err := Aggregate(nil, nil, subs, date(2025, time.June, 1))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	for _, p := range points {
		if p.Expenses != 0 || p.Subscriptions != 0 {
			t.Fatalf("annual without due date leaked into %s", p.Month)
		}
	}
}

func TestAggregateRejectsMalformedRecords(t *testing.T) {
	ref := date(2025, time.June, 1)

	_, err := Aggregate([]Invoice{{ID: 7, Amount: 100, Status: "SHIPPED", IssuedAt: ref}}, nil, nil, ref)
	if err == nil || !strings.Contains(err.Error(), "invoice 7") {
		t.Fatalf("expected invoice status error, got %v", err)
	}

	_, err = Aggregate([]Invoice{{ID: 8, Amount: -100, Status: StatusPaid, IssuedAt: ref}}, nil, nil, ref)
	if err == nil || !strings.Contains(err.Error(), "negative amount") {
		t.Fatalf("expected negative amount error, got %v", err)
	}

	_, err = Aggregate([]Invoice{{ID: 9, Amount: 100, Status: StatusPaid}}, nil, nil, ref)
	if err == nil || !strings.Contains(err.Error(), "missing issue date") {
		t.Fatalf("expected missing date error, got %v", err)
	}

	_, err = Aggregate(nil, []Expense{{ID: 3, Amount: 100}}, nil, ref)
	if err == nil || !strings.Contains(err.Error(), "expense 3") {
		t.Fatalf("expected expense date error, got %v", err)
	}

	_, err = Aggregate(nil, nil, []Subscription{{ID: 4, Amount: 100, Cycle: "WEEKLY"}}, ref)
	if err == nil || !strings.Contains(err.Error(), "billing cycle") {
		t.Fatalf("expected billing cycle error, got %v", err)
	}

	if _, err := Aggregate(nil, nil, nil, time.Time{}); err == nil {
		t.Fatalf("expected reference date error")
	}
}

func TestAggregateTimezoneDoesNotShiftBuckets(t *testing.T) {
	// 23:30 on Jan 31 in UTC+2 is 21:30 Jan 31 UTC; 00:30 Feb 1 in UTC-3
	// is 03:30 Feb 1 UTC. Bucketing must follow the UTC month.
	plus2 := time.FixedZone("plus2", 2*60*60)
	minus3 := time.FixedZone("minus3", -3*60*60)
	invoices := []Invoice{
		{ID: 1, Amount: 1000, Status: StatusPaid, IssuedAt: time.Date(2025, time.February, 1, 1, 30, 0, 0, plus2)},
		{ID: 2, Amount: 2000, Status: StatusPaid, IssuedAt: time.Date(2025, time.January, 31, 22, 30, 0, 0, minus3)},
	}
	points, err := Aggregate(invoices, nil, nil, date(2025, time.March, 1))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if points[0].TotalRevenue != 1000 {
		t.Fatalf("january revenue = %d, want 1000", points[0].TotalRevenue)
	}
	if points[1].TotalRevenue != 2000 {
		t.Fatalf("february revenue = %d, want 2000", points[1].TotalRevenue)
	}
}
