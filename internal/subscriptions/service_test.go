package subscriptions

import (
	"context"
	"testing"
	"time"
)

type stubRepo struct {
	subs    []Subscription
	deleted []int64
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*Subscription, error) {
	return &Subscription{ID: id}, nil
}

func (s *stubRepo) List(ctx context.Context) ([]Subscription, error) {
	return s.subs, nil
}

func (s *stubRepo) Create(ctx context.Context, input SubscriptionInput) (*Subscription, error) {
	sub := Subscription{ID: int64(len(s.subs) + 1), Name: input.Name, Amount: input.Amount, Cycle: input.Cycle, DueAt: input.DueAt}
	s.subs = append(s.subs, sub)
	return &sub, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, input SubscriptionInput) (*Subscription, error) {
	return &Subscription{ID: id, Name: input.Name, Amount: input.Amount, Cycle: input.Cycle}, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type countingInvalidator struct {
	bumps int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.bumps++
	return nil
}

func TestCreateValidatesCycle(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, SubscriptionInput{Name: "CI runner", Amount: 900, Cycle: "WEEKLY"}); err == nil {
		t.Fatalf("expected billing cycle error")
	}
	if _, err := svc.Create(ctx, SubscriptionInput{Name: "Hosting", Amount: 900, Cycle: CycleAnnually}); err == nil {
		t.Fatalf("expected due date error for annual cycle")
	}

	due := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Create(ctx, SubscriptionInput{Name: "Hosting", Amount: 900, Cycle: CycleAnnually, DueAt: &due}); err != nil {
		t.Fatalf("create annual: %v", err)
	}
	// Monthly cycles do not need a due date.
	if _, err := svc.Create(ctx, SubscriptionInput{Name: "CRM", Amount: 4900, Cycle: CycleMonthly}); err != nil {
		t.Fatalf("create monthly: %v", err)
	}
}

func TestMutationsBumpReportCache(t *testing.T) {
	repo := &stubRepo{}
	reports := &countingInvalidator{}
	svc := NewService(repo, reports, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, SubscriptionInput{Name: "CRM", Amount: 4900, Cycle: CycleMonthly}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, 1, SubscriptionInput{Name: "CRM", Amount: 5900, Cycle: CycleMonthly}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if reports.bumps != 3 {
		t.Fatalf("expected 3 bumps, got %d", reports.bumps)
	}
}
