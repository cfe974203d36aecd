package projects

import (
	"context"
	"errors"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Project, error)
	ListByClient(ctx context.Context, clientID int64) ([]Project, error)
	Create(ctx context.Context, input ProjectInput) (*Project, error)
	Update(ctx context.Context, id int64, input ProjectInput) (*Project, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles project business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Get returns one project.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	return s.repo.Get(ctx, id)
}

// List returns projects, optionally filtered by client.
func (s *Service) List(ctx context.Context, clientID int64) ([]Project, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Create validates and stores a new project. New projects default to ACTIVE.
func (s *Service) Create(ctx context.Context, input ProjectInput) (*Project, error) {
	if input.Status == "" {
		input.Status = StatusActive
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

// Update validates and replaces a project.
func (s *Service) Update(ctx context.Context, id int64, input ProjectInput) (*Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateInput(input ProjectInput) error {
	if input.ClientID <= 0 {
		return errors.New("projects: client required")
	}
	if input.Name == "" {
		return errors.New("projects: name required")
	}
	if !input.Status.Valid() {
		return errors.New("projects: unknown status")
	}
	return nil
}
