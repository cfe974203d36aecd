package clients

import (
	"context"
	"errors"
	"log/slog"
)

// RepositoryPort defines data access methods for clients.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, input ClientInput) (*Client, error)
	Update(ctx context.Context, id int64, input ClientInput) (*Client, error)
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops derived report caches after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles client business logic.
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

// Get returns one client.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new client.
func (s *Service) Create(ctx context.Context, input ClientInput) (*Client, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	client, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return client, nil
}

// Update validates and replaces a client.
func (s *Service) Update(ctx context.Context, id int64, input ClientInput) (*Client, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	client, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return client, nil
}

// Delete removes a client.
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

func validateInput(input ClientInput) error {
	if input.Name == "" {
		return errors.New("clients: name required")
	}
	return nil
}
