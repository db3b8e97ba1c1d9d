// Package service holds background domain logic that runs alongside the API.
package service

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/log"
	"fintrack/internal/storage"
)

const monthLayout = "2006-01"

// Adjuster applies each user's monthly inputs and outputs to their balance
// once per calendar month, catching up on months missed while the process
// was down.
type Adjuster struct {
	store    storage.Store
	logger   *log.Logger
	interval time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

func NewAdjuster(store storage.Store, logger *log.Logger, interval time.Duration) *Adjuster {
	return &Adjuster{
		store:    store,
		logger:   logger.WithComponent(log.ComponentAdjust),
		interval: interval,
		now:      time.Now,
	}
}

// monthsBetween returns all year-month strings from the month after `from`
// up to and including `to`. An empty `from` yields only `to`.
func monthsBetween(from, to string) ([]string, error) {
	if from == "" {
		return []string{to}, nil
	}

	fromTime, err := time.Parse(monthLayout, from)
	if err != nil {
		return nil, fmt.Errorf("parse 'from' month %q: %w", from, err)
	}
	toTime, err := time.Parse(monthLayout, to)
	if err != nil {
		return nil, fmt.Errorf("parse 'to' month %q: %w", to, err)
	}

	var months []string
	for current := fromTime.AddDate(0, 1, 0); !current.After(toTime); current = current.AddDate(0, 1, 0) {
		months = append(months, current.Format(monthLayout))
	}
	return months, nil
}

// Process applies any pending monthly adjustments. On first run it records
// the current month as a baseline without touching balances, so a fresh
// deployment does not credit a month that is already underway.
func (a *Adjuster) Process(ctx context.Context) error {
	lastProcessed, err := a.store.LastProcessedMonth(ctx)
	if err != nil {
		return fmt.Errorf("get last processed month: %w", err)
	}

	now := a.now().Format(monthLayout)

	if lastProcessed == "" {
		a.logger.Info("First run, recording baseline month", "month", now)
		if err := a.store.RecordMonth(ctx, now, false); err != nil {
			return fmt.Errorf("record baseline month: %w", err)
		}
		return nil
	}

	if lastProcessed == now {
		return nil
	}

	pending, err := monthsBetween(lastProcessed, now)
	if err != nil {
		return fmt.Errorf("calculate pending months: %w", err)
	}

	a.logger.Info("Processing pending months", "count", len(pending), "months", pending)

	for _, month := range pending {
		adjusted, err := a.store.ApplyMonthlyFlows(ctx)
		if err != nil {
			return fmt.Errorf("apply adjustment for %s: %w", month, err)
		}
		if err := a.store.RecordMonth(ctx, month, true); err != nil {
			return fmt.Errorf("record month %s: %w", month, err)
		}
		a.logger.Info("Applied monthly adjustment", "month", month, "users_adjusted", adjusted)
	}

	return nil
}

// Run processes pending adjustments immediately, then on every tick until
// ctx is canceled. Processing errors are logged, not fatal.
func (a *Adjuster) Run(ctx context.Context) error {
	if err := a.Process(ctx); err != nil {
		a.logger.Error("Startup adjustment failed", "error", err)
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("Adjustment scheduler started", "interval", a.interval)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Adjustment scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := a.Process(ctx); err != nil {
				a.logger.Error("Periodic adjustment failed", "error", err)
			}
		}
	}
}
