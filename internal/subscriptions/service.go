package subscriptions

import (
	"context"
	"errors"
	"log/slog"
)

// RepositoryPort defines data access methods for subscriptions.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	Create(ctx context.Context, input SubscriptionInput) (*Subscription, error)
	Update(ctx context.Context, id int64, input SubscriptionInput) (*Subscription, error)
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops derived report caches after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles subscription business logic.
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

// Get returns one subscription.
func (s *Service) Get(ctx context.Context, id int64) (*Subscription, error) {
	return s.repo.Get(ctx, id)
}

// List returns all subscriptions.
func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new subscription.
func (s *Service) Create(ctx context.Context, input SubscriptionInput) (*Subscription, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	sub, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return sub, nil
}

// Update validates and replaces a subscription.
func (s *Service) Update(ctx context.Context, id int64, input SubscriptionInput) (*Subscription, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	sub, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return sub, nil
}

// Delete removes a subscription.
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

func validateInput(input SubscriptionInput) error {
	if input.Name == "" {
		return errors.New("subscriptions: name required")
	}
	if input.Amount <= 0 {
		return errors.New("subscriptions: amount must be positive")
	}
	if !input.Cycle.Valid() {
		return errors.New("subscriptions: unknown billing cycle")
	}
	if input.Cycle == CycleAnnually && input.DueAt == nil {
		return errors.New("subscriptions: annual cycle requires a due date")
	}
	return nil
}
