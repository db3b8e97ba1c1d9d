package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/core"
)

// PostgresStore implements Store on a Postgres pool. The schema is created
// on startup if missing; the SQL mirrors the SQLite migrations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    user_name TEXT NOT NULL,
    current_amount BIGINT NOT NULL DEFAULT 0,
    monthly_inputs BIGINT NOT NULL DEFAULT 0,
    monthly_outputs BIGINT NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    description TEXT NOT NULL DEFAULT '',
    amount BIGINT NOT NULL,
    is_debt BOOLEAN NOT NULL DEFAULT FALSE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id);
CREATE TABLE IF NOT EXISTS goals (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price BIGINT NOT NULL DEFAULT 0,
    pros TEXT NOT NULL DEFAULT '',
    cons TEXT NOT NULL DEFAULT '',
    deadline TEXT NOT NULL DEFAULT '',
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
CREATE TABLE IF NOT EXISTS monthly_log (
    month TEXT PRIMARY KEY,
    adjusted BOOLEAN NOT NULL DEFAULT FALSE,
    processed_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS audit_log (
    id BIGSERIAL PRIMARY KEY,
    entity TEXT NOT NULL,
    op TEXT NOT NULL,
    record_id BIGINT NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL
);`

// NewPostgresStore connects to dsn and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func notFoundErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_name, current_amount, monthly_inputs, monthly_outputs FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.UserName, &u.CurrentAmount, &u.MonthlyInputs, &u.MonthlyOutputs); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*core.User, error) {
	var u core.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_name, current_amount, monthly_inputs, monthly_outputs FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.UserName, &u.CurrentAmount, &u.MonthlyInputs, &u.MonthlyOutputs)
	if err != nil {
		return nil, notFoundErr(err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, nu core.NewUser) (*core.User, error) {
	u := core.User{
		UserName:       nu.UserName,
		CurrentAmount:  nu.CurrentAmount,
		MonthlyInputs:  nu.MonthlyInputs,
		MonthlyOutputs: nu.MonthlyOutputs,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (user_name, current_amount, monthly_inputs, monthly_outputs)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		nu.UserName, nu.CurrentAmount, nu.MonthlyInputs, nu.MonthlyOutputs).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, patch core.UserPatch) (*core.User, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.UserName != nil {
		add("user_name", *patch.UserName)
	}
	if patch.CurrentAmount != nil {
		add("current_amount", *patch.CurrentAmount)
	}
	if patch.MonthlyInputs != nil {
		add("monthly_inputs", *patch.MonthlyInputs)
	}
	if patch.MonthlyOutputs != nil {
		add("monthly_outputs", *patch.MonthlyOutputs)
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}
	args = append(args, id)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListTransactionsByUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, description, amount, is_debt, user_id, created_at FROM transactions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.IsDebt, &t.UserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetTransaction(ctx context.Context, id int64) (*core.Transaction, error) {
	var t core.Transaction
	err := s.pool.QueryRow(ctx,
		`SELECT id, description, amount, is_debt, user_id, created_at FROM transactions WHERE id = $1`, id).
		Scan(&t.ID, &t.Description, &t.Amount, &t.IsDebt, &t.UserID, &t.CreatedAt)
	if err != nil {
		return nil, notFoundErr(err)
	}
	return &t, nil
}

func (s *PostgresStore) CreateTransaction(ctx context.Context, nt core.NewTransaction) (*core.Transaction, error) {
	t := core.Transaction{
		Description: nt.Description,
		Amount:      nt.Amount,
		IsDebt:      nt.IsDebt,
		UserID:      nt.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO transactions (description, amount, is_debt, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		nt.Description, nt.Amount, nt.IsDebt, nt.UserID, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		if isPGForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) UpdateTransaction(ctx context.Context, id int64, patch core.TransactionPatch) (*core.Transaction, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.IsDebt != nil {
		add("is_debt", *patch.IsDebt)
	}
	if len(set) == 0 {
		return s.GetTransaction(ctx, id)
	}
	args = append(args, id)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE transactions SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetTransaction(ctx, id)
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListGoalsByUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, price, pros, cons, deadline, user_id, created_at FROM goals WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Price, &g.Pros, &g.Cons, &g.Deadline, &g.UserID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetGoal(ctx context.Context, id int64) (*core.Goal, error) {
	var g core.Goal
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, price, pros, cons, deadline, user_id, created_at FROM goals WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.Description, &g.Price, &g.Pros, &g.Cons, &g.Deadline, &g.UserID, &g.CreatedAt)
	if err != nil {
		return nil, notFoundErr(err)
	}
	return &g, nil
}

func (s *PostgresStore) CreateGoal(ctx context.Context, ng core.NewGoal) (*core.Goal, error) {
	g := core.Goal{
		Name:        ng.Name,
		Description: ng.Description,
		Price:       ng.Price,
		Pros:        ng.Pros,
		Cons:        ng.Cons,
		Deadline:    ng.Deadline,
		UserID:      ng.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO goals (name, description, price, pros, cons, deadline, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		ng.Name, ng.Description, ng.Price, ng.Pros, ng.Cons, ng.Deadline, ng.UserID, g.CreatedAt).Scan(&g.ID)
	if err != nil {
		if isPGForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return &g, nil
}

func (s *PostgresStore) UpdateGoal(ctx context.Context, id int64, patch core.GoalPatch) (*core.Goal, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Pros != nil {
		add("pros", *patch.Pros)
	}
	if patch.Cons != nil {
		add("cons", *patch.Cons)
	}
	if patch.Deadline != nil {
		add("deadline", *patch.Deadline)
	}
	if len(set) == 0 {
		return s.GetGoal(ctx, id)
	}
	args = append(args, id)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE goals SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetGoal(ctx, id)
}

func (s *PostgresStore) DeleteGoal(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) LastProcessedMonth(ctx context.Context) (string, error) {
	var month string
	err := s.pool.QueryRow(ctx, `SELECT month FROM monthly_log ORDER BY month DESC LIMIT 1`).Scan(&month)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last processed month: %w", err)
	}
	return month, nil
}

func (s *PostgresStore) RecordMonth(ctx context.Context, month string, adjusted bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO monthly_log (month, adjusted, processed_at) VALUES ($1, $2, $3)`,
		month, adjusted, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record month: %w", err)
	}
	return nil
}

func (s *PostgresStore) ApplyMonthlyFlows(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET current_amount = current_amount + monthly_inputs - monthly_outputs`)
	if err != nil {
		return 0, fmt.Errorf("apply monthly flows: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) AppendAudit(ctx context.Context, e AuditEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_log (entity, op, record_id, occurred_at) VALUES ($1, $2, $3, $4)`,
		e.Entity, e.Op, e.RecordID, e.OccurredAt.UTC())
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// isPGForeignKeyViolation reports whether err is Postgres error 23503
// (foreign_key_violation).
func isPGForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}
