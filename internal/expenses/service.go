package expenses

import (
	"context"
	"errors"
	"log/slog"
)

// RepositoryPort defines data access methods for expenses.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Expense, error)
	List(ctx context.Context) ([]Expense, error)
	Create(ctx context.Context, input ExpenseInput) (*Expense, error)
	Update(ctx context.Context, id int64, input ExpenseInput) (*Expense, error)
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops derived report caches after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles expense business logic.
type Service struct {
	repo    RepositoryPort
	reports Invalidator
	logger  *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, reports Invalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, reports: reports, logger: logger}
}

// Get returns one expense.
func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

// List returns all expenses.
func (s *Service) List(ctx context.Context) ([]Expense, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new expense.
func (s *Service) Create(ctx context.Context, input ExpenseInput) (*Expense, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	exp, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return exp, nil
}

// Update validates and replaces an expense.
func (s *Service) Update(ctx context.Context, id int64, input ExpenseInput) (*Expense, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	exp, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return exp, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bumpReports(ctx)
	return nil
}

func (s *Service) bumpReports(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidate report cache", slog.Any("error", err))
	}
}

func validateInput(input ExpenseInput) error {
	if input.Amount <= 0 {
		return errors.New("expenses: amount must be positive")
	}
	if input.IncurredAt.IsZero() {
		return errors.New("expenses: date required")
	}
	return nil
}
