package invoices

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for invoices.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]Invoice, int, error)
	Create(ctx context.Context, number string, input InvoiceInput) (*Invoice, error)
	Update(ctx context.Context, id int64, input InvoiceInput) (*Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops derived report caches after a mutation. The trends
// service implements it.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles invoice business logic.
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

// Get returns one invoice.
func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

// List returns invoices matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invoice, int, error) {
	return s.repo.List(ctx, filter)
}

// Create validates and stores a new invoice in DRAFT status. Number
// collisions are retried with a fresh number.
func (s *Service) Create(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var inv *Invoice
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		inv, err = s.repo.Create(ctx, generateNumber(), input)
		if !errors.Is(err, ErrDuplicateNumber) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return inv, nil
}

// Update validates and replaces the mutable fields of an invoice.
func (s *Service) Update(ctx context.Context, id int64, input InvoiceInput) (*Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	inv, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.bumpReports(ctx)
	return inv, nil
}

// Transition moves an invoice to a new status.
func (s *Service) Transition(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return errors.New("invoices: unknown status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.bumpReports(ctx)
	return nil
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bumpReports(ctx)
	return nil
}

// bumpReports invalidates cached report data. A failed bump only extends
// staleness inside the cache TTL, so it is logged rather than returned.
func (s *Service) bumpReports(ctx context.Context) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidate report cache", slog.Any("error", err))
	}
}

func validateInput(input InvoiceInput) error {
	if input.ClientID == 0 {
		return errors.New("invoices: client ID required")
	}
	if input.Amount <= 0 {
		return errors.New("invoices: amount must be positive")
	}
	if input.IssuedAt.IsZero() {
		return errors.New("invoices: issue date required")
	}
	if input.DueAt.IsZero() {
		return errors.New("invoices: due date required")
	}
	if input.DueAt.Before(input.IssuedAt) {
		return errors.New("invoices: due date before issue date")
	}
	return nil
}

func generateNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
