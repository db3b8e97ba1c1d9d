package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	u, err := s.CreateUser(ctx, core.NewUser{UserName: "Alice", CurrentAmount: 0, MonthlyInputs: 500000, MonthlyOutputs: 300000})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	txn, err := s.CreateTransaction(ctx, core.NewTransaction{Description: "Coffee", Amount: -450, UserID: u.ID})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if txn.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}

	g, err := s.CreateGoal(ctx, core.NewGoal{Name: "Bike", Price: 80000, UserID: u.ID, Deadline: "2025-12-31"})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	got, err := s.GetGoal(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if got.Deadline != "2025-12-31" {
		t.Fatalf("deadline = %q", got.Deadline)
	}

	upd, err := s.UpdateTransaction(ctx, txn.ID, core.TransactionPatch{Amount: ptr(core.Money(-500))})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if upd.Amount != -500 || upd.Description != "Coffee" {
		t.Fatalf("patch semantics broken: %+v", upd)
	}

	// Cascade on user delete.
	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetTransaction(ctx, txn.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}
	if _, err := s.GetGoal(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}
}

func TestSQLiteMonthlyLog(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	last, err := s.LastProcessedMonth(ctx)
	if err != nil || last != "" {
		t.Fatalf("LastProcessedMonth = %q, %v", last, err)
	}

	u, _ := s.CreateUser(ctx, core.NewUser{UserName: "Alice", CurrentAmount: 1000, MonthlyInputs: 500, MonthlyOutputs: 200})

	if _, err := s.ApplyMonthlyFlows(ctx); err != nil {
		t.Fatalf("ApplyMonthlyFlows: %v", err)
	}
	got, _ := s.GetUser(ctx, u.ID)
	if got.CurrentAmount != 1300 {
		t.Fatalf("balance = %d", got.CurrentAmount)
	}

	if err := s.RecordMonth(ctx, "2026-08", true); err != nil {
		t.Fatalf("RecordMonth: %v", err)
	}
	last, _ = s.LastProcessedMonth(ctx)
	if last != "2026-08" {
		t.Fatalf("LastProcessedMonth = %q", last)
	}
}

func TestSQLiteNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	if _, err := s.GetUser(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser: %v", err)
	}
	if err := s.DeleteGoal(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if _, err := s.UpdateUser(ctx, 42, core.UserPatch{UserName: ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateUser: %v", err)
	}
	if _, err := s.CreateTransaction(ctx, core.NewTransaction{UserID: 42}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("orphan transaction: %v", err)
	}
}
