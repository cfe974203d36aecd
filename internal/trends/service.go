package trends

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// RepositoryPort defines the record reads required by the fetcher.
type RepositoryPort interface {
	ListInvoicesFrom(ctx context.Context, from time.Time) ([]Invoice, error)
	ListExpensesFrom(ctx context.Context, from time.Time) ([]Expense, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	ListClients(ctx context.Context) ([]Client, error)
}

// Service coordinates record fetching, caching, and aggregation.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	clock func() time.Time
	group singleflight.Group
}

// NewService wires a RepositoryPort with the cache helper.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// Records returns the raw financial records for the fiscal year,
// cache-or-fetch. Store errors propagate unchanged.
func (s *Service) Records(ctx context.Context, year int) (RecordSet, error) {
	if year < 1 || year > 9999 {
		return RecordSet{}, fmt.Errorf("trends: invalid year %d", year)
	}
	loader := func(ctx context.Context) (interface{}, error) {
		return s.loadRecords(ctx, year)
	}
	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return RecordSet{}, err
		}
		return value.(RecordSet), nil
	}
	key, err := s.cache.BuildKey(ctx, keyRecords(year))
	if err != nil {
		return RecordSet{}, err
	}
	var set RecordSet
	if err := s.cache.FetchJSON(ctx, key, &set, loader); err != nil {
		return RecordSet{}, err
	}
	return set, nil
}

// Monthly returns the derived monthly series for the fiscal year. Concurrent
// callers for the same year share one computation. The shared computation is
// detached from the first caller's cancellation so followers still get a
// result when the leader goes away; each caller's own ctx still bounds its
// wait.
func (s *Service) Monthly(ctx context.Context, year int) ([]MonthlyPoint, error) {
	loadCtx := context.WithoutCancel(ctx)
	resultChan := s.group.DoChan(strconv.Itoa(year), func() (interface{}, error) {
		set, err := s.Records(loadCtx, year)
		if err != nil {
			return nil, err
		}
		return Aggregate(set.Invoices, set.Expenses, set.Subscriptions, s.reference(year))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]MonthlyPoint), nil
	}
}

// Invalidate bumps the record cache. CRUD modules call this after any
// invoice, expense, or subscription mutation.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// CurrentYear reports the clock's UTC year, the default fiscal year.
func (s *Service) CurrentYear() int {
	return s.clock().UTC().Year()
}

func (s *Service) loadRecords(ctx context.Context, year int) (RecordSet, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var set RecordSet
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		invoices, err := s.repo.ListInvoicesFrom(ctx, start)
		if err != nil {
			return err
		}
		set.Invoices = invoices
		return nil
	})
	g.Go(func() error {
		expenses, err := s.repo.ListExpensesFrom(ctx, start)
		if err != nil {
			return err
		}
		set.Expenses = expenses
		return nil
	})
	g.Go(func() error {
		subs, err := s.repo.ListSubscriptions(ctx)
		if err != nil {
			return err
		}
		set.Subscriptions = subs
		return nil
	})
	g.Go(func() error {
		clients, err := s.repo.ListClients(ctx)
		if err != nil {
			return err
		}
		set.Clients = clients
		return nil
	})
	if err := g.Wait(); err != nil {
		return RecordSet{}, err
	}
	return set, nil
}

// reference picks the aggregation reference date: the clock for the current
// year, December 31 otherwise so historical years report the full window.
func (s *Service) reference(year int) time.Time {
	now := s.clock().UTC()
	if now.Year() == year {
		return now
	}
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
