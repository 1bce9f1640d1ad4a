// Package jobs runs the background maintenance work on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	JobReconcileLedger = "reconcile_ledger"
	JobRefreshRates    = "refresh_market_rates"
)

// DefaultJobTimeout bounds a single run.
const DefaultJobTimeout = 2 * time.Minute

// Scheduler owns the cron runner for ledger reconciliation and rate pre-warming.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	ledger  portssvc.LedgerSvcFacade
	rates   portssvc.MarketRateSvc
	timeout time.Duration
	entries map[string]cron.EntryID
}

// NewScheduler creates a scheduler evaluating specs in loc. rates may be nil.
func NewScheduler(logger *slog.Logger, ledger portssvc.LedgerSvcFacade, rates portssvc.MarketRateSvc, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		ledger:  ledger,
		rates:   rates,
		timeout: DefaultJobTimeout,
		entries: map[string]cron.EntryID{},
	}
}

// Schedule registers both jobs. An empty spec disables that job; the rates
// job is also skipped when no rate service is available.
func (s *Scheduler) Schedule(reconcileSpec, ratesSpec string) error {
	if reconcileSpec != "" {
		if err := s.add(JobReconcileLedger, reconcileSpec, s.RunReconcile); err != nil {
			return err
		}
	}
	if ratesSpec != "" && s.rates != nil {
		if err := s.add(JobRefreshRates, ratesSpec, s.RunRatesRefresh); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) add(name, spec string, run func(context.Context) error) error {
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = run(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling %s with %q: %w", name, spec, err)
	}
	s.entries[name] = id
	s.logger.Info("Scheduled background job", slog.String("job", name), slog.String("schedule", spec))
	return nil
}

// Scheduled reports whether a job was registered.
func (s *Scheduler) Scheduled(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running ones until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Background jobs stopped")
	case <-ctx.Done():
		s.logger.Warn("Background jobs still running at shutdown")
	}
}

// jobContext attaches a run-scoped logger so services log with the job name.
func (s *Scheduler) jobContext(ctx context.Context, name string) (context.Context, *slog.Logger) {
	logger := s.logger.With(slog.String("job", name), slog.String("run_id", uuid.NewString()))
	return middleware.WithLogger(ctx, logger), logger
}

// RunReconcile performs one ledger reconciliation pass.
func (s *Scheduler) RunReconcile(ctx context.Context) error {
	ctx, logger := s.jobContext(ctx, JobReconcileLedger)
	start := time.Now()
	result, err := s.ledger.Reconcile(ctx)
	if err != nil {
		logger.Error("Ledger reconciliation failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Ledger reconciliation run complete",
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("deleted", result.Deleted),
		slog.Duration("took", time.Since(start)))
	return nil
}

// RunRatesRefresh re-fetches market rates into the cache.
func (s *Scheduler) RunRatesRefresh(ctx context.Context) error {
	if s.rates == nil {
		return nil
	}
	ctx, logger := s.jobContext(ctx, JobRefreshRates)
	rates, err := s.rates.Refresh(ctx)
	if err != nil {
		logger.Warn("Market rate refresh failed", slog.String("error", err.Error()))
		return err
	}
	logger.Debug("Market rates pre-warmed", slog.String("source", rates.Source))
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
