package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want []string
	}{
		{name: "first run", from: "", to: "2026-08", want: []string{"2026-08"}},
		{name: "one month behind", from: "2026-07", to: "2026-08", want: []string{"2026-08"}},
		{name: "several months behind", from: "2026-04", to: "2026-08", want: []string{"2026-05", "2026-06", "2026-07", "2026-08"}},
		{name: "year boundary", from: "2025-11", to: "2026-02", want: []string{"2025-12", "2026-01", "2026-02"}},
		{name: "up to date", from: "2026-08", to: "2026-08", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := monthsBetween(tt.from, tt.to)
			if err != nil {
				t.Fatalf("monthsBetween: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("monthsBetween(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}

	if _, err := monthsBetween("garbage", "2026-08"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func newTestAdjuster(store storage.Store, now time.Time) *Adjuster {
	a := NewAdjuster(store, log.Discard(), time.Hour)
	a.now = func() time.Time { return now }
	return a
}

func TestProcessBaselineFirstRun(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	u, _ := store.CreateUser(ctx, core.NewUser{UserName: "Alice", CurrentAmount: 1000, MonthlyInputs: 500, MonthlyOutputs: 200})

	a := newTestAdjuster(store, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	if err := a.Process(ctx); err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Baseline run records the month without touching balances.
	got, _ := store.GetUser(ctx, u.ID)
	if got.CurrentAmount != 1000 {
		t.Fatalf("baseline run adjusted balance to %d", got.CurrentAmount)
	}
	last, _ := store.LastProcessedMonth(ctx)
	if last != "2026-08" {
		t.Fatalf("LastProcessedMonth = %q", last)
	}

	// Running again in the same month is a no-op.
	if err := a.Process(ctx); err != nil {
		t.Fatalf("second Process: %v", err)
	}
	got, _ = store.GetUser(ctx, u.ID)
	if got.CurrentAmount != 1000 {
		t.Fatalf("idempotency broken, balance = %d", got.CurrentAmount)
	}
}

func TestProcessCatchUp(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	u, _ := store.CreateUser(ctx, core.NewUser{UserName: "Alice", CurrentAmount: 1000, MonthlyInputs: 500, MonthlyOutputs: 200})
	if err := store.RecordMonth(ctx, "2026-05", false); err != nil {
		t.Fatalf("RecordMonth: %v", err)
	}

	// Three months pass while the process is down.
	a := newTestAdjuster(store, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	if err := a.Process(ctx); err != nil {
		t.Fatalf("Process: %v", err)
	}

	// 1000 + 3 * (500 - 200)
	got, _ := store.GetUser(ctx, u.ID)
	if got.CurrentAmount != 1900 {
		t.Fatalf("balance = %d, want 1900", got.CurrentAmount)
	}
	last, _ := store.LastProcessedMonth(ctx)
	if last != "2026-08" {
		t.Fatalf("LastProcessedMonth = %q", last)
	}
}
