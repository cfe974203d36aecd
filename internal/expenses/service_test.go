package expenses

import (
	"context"
	"testing"
	"time"
)

type stubRepo struct {
	created  []ExpenseInput
	deleted  []int64
	failWith error
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*Expense, error) {
	return &Expense{ID: id}, nil
}

func (s *stubRepo) List(ctx context.Context) ([]Expense, error) {
	return nil, s.failWith
}

func (s *stubRepo) Create(ctx context.Context, input ExpenseInput) (*Expense, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.created = append(s.created, input)
	return &Expense{ID: int64(len(s.created)), Amount: input.Amount, IncurredAt: input.IncurredAt}, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, input ExpenseInput) (*Expense, error) {
	return &Expense{ID: id, Amount: input.Amount}, nil
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

func TestCreateValidatesAndBumps(t *testing.T) {
	repo := &stubRepo{}
	reports := &countingInvalidator{}
	svc := NewService(repo, reports, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ExpenseInput{Amount: 0, IncurredAt: time.Now()}); err == nil {
		t.Fatalf("expected amount validation error")
	}
	if _, err := svc.Create(ctx, ExpenseInput{Amount: 100}); err == nil {
		t.Fatalf("expected date validation error")
	}
	if reports.bumps != 0 {
		t.Fatalf("rejected input must not bump cache, bumps=%d", reports.bumps)
	}

	if _, err := svc.Create(ctx, ExpenseInput{Amount: 100, IncurredAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if reports.bumps != 1 {
		t.Fatalf("expected 1 bump, got %d", reports.bumps)
	}
}

func TestDeleteBumps(t *testing.T) {
	repo := &stubRepo{}
	reports := &countingInvalidator{}
	svc := NewService(repo, reports, nil)

	if err := svc.Delete(context.Background(), 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 5 {
		t.Fatalf("unexpected deletions %v", repo.deleted)
	}
	if reports.bumps != 1 {
		t.Fatalf("expected 1 bump, got %d", reports.bumps)
	}
}
