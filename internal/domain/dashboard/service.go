package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"homefront/internal/domain/debt"
	"homefront/internal/domain/expense"
	"homefront/internal/domain/income"
)

var (
	dashboardMeter     = otel.Meter("homefront/dashboard")
	summaryDuration, _ = dashboardMeter.Float64Histogram("dashboard.summary.duration",
		metric.WithDescription("Time to build a dashboard summary in seconds"),
		metric.WithUnit("s"),
	)
	summaryCacheLookups, _ = dashboardMeter.Int64Counter("dashboard.summary.cache.lookups",
		metric.WithDescription("Summary cache lookups by result"),
	)
	nonConverged, _ = dashboardMeter.Int64Counter("dashboard.snowball.nonconverged",
		metric.WithDescription("Summaries whose payoff plan exceeded the simulation horizon"),
	)
)

type IncomeLister interface {
	List(ctx context.Context, userID int64) ([]*income.Income, error)
}

type ExpenseLister interface {
	List(ctx context.Context, userID int64) ([]*expense.Expense, error)
}

type DebtLister interface {
	List(ctx context.Context, userID int64) ([]*debt.Debt, error)
}

// Cache stores computed summaries per user.
type Cache interface {
	Get(ctx context.Context, userID int64) (*Summary, bool, error)
	Set(ctx context.Context, userID int64, s *Summary) error
	Delete(ctx context.Context, userID int64) error
	// Clear drops every cached summary.
	Clear(ctx context.Context) error
}

// Service builds dashboard summaries.
type Service struct {
	incomes  IncomeLister
	expenses ExpenseLister
	debts    DebtLister
	cache    Cache
	now      func() time.Time
}

// NewService creates a dashboard service. cache may be nil.
func NewService(incomes IncomeLister, expenses ExpenseLister, debts DebtLister, cache Cache) *Service {
	return &Service{
		incomes:  incomes,
		expenses: expenses,
		debts:    debts,
		cache:    cache,
		now:      time.Now,
	}
}

// Summary returns the user's dashboard, from cache when possible. The three
// record sets load concurrently; if any load fails no summary is produced.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("valid user ID is required")
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Printf("Dashboard cache read failed for user %d: %v", userID, err)
		}
		summaryCacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", ok)))
		if ok {
			return cached, nil
		}
	}

	start := time.Now()

	var (
		incomes  []*income.Income
		expenses []*expense.Expense
		debts    []*debt.Debt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.incomes.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load incomes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		debts, err = s.debts.List(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load debts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := Build(userID, incomes, expenses, debts, s.now())

	summaryDuration.Record(ctx, time.Since(start).Seconds())
	if !summary.Plan.Converged {
		nonConverged.Add(ctx, 1)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, summary); err != nil {
			log.Printf("Dashboard cache write failed for user %d: %v", userID, err)
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary after the user's records change.
func (s *Service) Invalidate(ctx context.Context, userID int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, userID)
}

// InvalidateAll drops every cached summary, for when change notifications may have been lost.
func (s *Service) InvalidateAll(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}
