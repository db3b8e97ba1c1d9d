// Package storage defines the persistence interface of the API server and
// its memory, SQLite, and Postgres implementations.
package storage

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// AuditEntry is one row of the mutation audit trail written by the worker.
type AuditEntry struct {
	Entity     string
	Op         string
	RecordID   int64
	OccurredAt time.Time
}

// Store is the full persistence surface. Deleting a user cascades to the
// user's transactions and goals.
type Store interface {
	ListUsers(ctx context.Context) ([]core.User, error)
	GetUser(ctx context.Context, id int64) (*core.User, error)
	CreateUser(ctx context.Context, nu core.NewUser) (*core.User, error)
	UpdateUser(ctx context.Context, id int64, patch core.UserPatch) (*core.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListTransactionsByUser(ctx context.Context, userID int64) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*core.Transaction, error)
	CreateTransaction(ctx context.Context, nt core.NewTransaction) (*core.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, patch core.TransactionPatch) (*core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	ListGoalsByUser(ctx context.Context, userID int64) ([]core.Goal, error)
	GetGoal(ctx context.Context, id int64) (*core.Goal, error)
	CreateGoal(ctx context.Context, ng core.NewGoal) (*core.Goal, error)
	UpdateGoal(ctx context.Context, id int64, patch core.GoalPatch) (*core.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error

	// Monthly adjustment bookkeeping. Months are "YYYY-MM" strings.
	LastProcessedMonth(ctx context.Context) (string, error)
	RecordMonth(ctx context.Context, month string, adjusted bool) error
	// ApplyMonthlyFlows adds monthly_inputs-monthly_outputs to every user's
	// current_amount and returns the number of users adjusted.
	ApplyMonthlyFlows(ctx context.Context) (int64, error)

	AppendAudit(ctx context.Context, e AuditEntry) error

	Close() error
}
