package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"fintrack/internal/core"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and runs
// pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const userColumns = "id, user_name, current_amount, monthly_inputs, monthly_outputs"

func scanUser(row interface{ Scan(...any) error }) (*core.User, error) {
	var u core.User
	if err := row.Scan(&u.ID, &u.UserName, &u.CurrentAmount, &u.MonthlyInputs, &u.MonthlyOutputs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*core.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *SQLiteStore) CreateUser(ctx context.Context, nu core.NewUser) (*core.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_name, current_amount, monthly_inputs, monthly_outputs) VALUES (?, ?, ?, ?)`,
		nu.UserName, nu.CurrentAmount, nu.MonthlyInputs, nu.MonthlyOutputs)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("user insert id: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, id int64, patch core.UserPatch) (*core.User, error) {
	var set []string
	var args []any
	if patch.UserName != nil {
		set = append(set, "user_name = ?")
		args = append(args, *patch.UserName)
	}
	if patch.CurrentAmount != nil {
		set = append(set, "current_amount = ?")
		args = append(args, *patch.CurrentAmount)
	}
	if patch.MonthlyInputs != nil {
		set = append(set, "monthly_inputs = ?")
		args = append(args, *patch.MonthlyInputs)
	}
	if patch.MonthlyOutputs != nil {
		set = append(set, "monthly_outputs = ?")
		args = append(args, *patch.MonthlyOutputs)
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const transactionColumns = "id, description, amount, is_debt, user_id, created_at"

func scanTransaction(row interface{ Scan(...any) error }) (*core.Transaction, error) {
	var t core.Transaction
	var createdAt string
	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.IsDebt, &t.UserID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	t.CreatedAt = ts
	return &t, nil
}

func (s *SQLiteStore) ListTransactionsByUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id int64) (*core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	return scanTransaction(row)
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, nt core.NewTransaction) (*core.Transaction, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (description, amount, is_debt, user_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		nt.Description, nt.Amount, nt.IsDebt, nt.UserID, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("transaction insert id: %w", err)
	}
	return s.GetTransaction(ctx, id)
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, id int64, patch core.TransactionPatch) (*core.Transaction, error) {
	var set []string
	var args []any
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.IsDebt != nil {
		set = append(set, "is_debt = ?")
		args = append(args, *patch.IsDebt)
	}
	if len(set) == 0 {
		return s.GetTransaction(ctx, id)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetTransaction(ctx, id)
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const goalColumns = "id, name, description, price, pros, cons, deadline, user_id, created_at"

func scanGoal(row interface{ Scan(...any) error }) (*core.Goal, error) {
	var g core.Goal
	var createdAt string
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Price, &g.Pros, &g.Cons, &g.Deadline, &g.UserID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = ts
	return &g, nil
}

func (s *SQLiteStore) ListGoalsByUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetGoal(ctx context.Context, id int64) (*core.Goal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	return scanGoal(row)
}

func (s *SQLiteStore) CreateGoal(ctx context.Context, ng core.NewGoal) (*core.Goal, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (name, description, price, pros, cons, deadline, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ng.Name, ng.Description, ng.Price, ng.Pros, ng.Cons, ng.Deadline, ng.UserID, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("goal insert id: %w", err)
	}
	return s.GetGoal(ctx, id)
}

func (s *SQLiteStore) UpdateGoal(ctx context.Context, id int64, patch core.GoalPatch) (*core.Goal, error) {
	var set []string
	var args []any
	if patch.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.Pros != nil {
		set = append(set, "pros = ?")
		args = append(args, *patch.Pros)
	}
	if patch.Cons != nil {
		set = append(set, "cons = ?")
		args = append(args, *patch.Cons)
	}
	if patch.Deadline != nil {
		set = append(set, "deadline = ?")
		args = append(args, *patch.Deadline)
	}
	if len(set) == 0 {
		return s.GetGoal(ctx, id)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetGoal(ctx, id)
}

func (s *SQLiteStore) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) LastProcessedMonth(ctx context.Context) (string, error) {
	var month string
	err := s.db.QueryRowContext(ctx, `SELECT month FROM monthly_log ORDER BY month DESC LIMIT 1`).Scan(&month)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last processed month: %w", err)
	}
	return month, nil
}

func (s *SQLiteStore) RecordMonth(ctx context.Context, month string, adjusted bool) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO monthly_log (month, adjusted, processed_at) VALUES (?, ?, ?)`,
		month, adjusted, now)
	if err != nil {
		return fmt.Errorf("record month: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ApplyMonthlyFlows(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET current_amount = current_amount + monthly_inputs - monthly_outputs`)
	if err != nil {
		return 0, fmt.Errorf("apply monthly flows: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("monthly flows rows affected: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) AppendAudit(ctx context.Context, e AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (entity, op, record_id, occurred_at) VALUES (?, ?, ?, ?)`,
		e.Entity, e.Op, e.RecordID, e.OccurredAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// isForeignKeyViolation reports whether err is a SQLite foreign key failure,
// which surfaces when creating a scoped record for a missing user.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
