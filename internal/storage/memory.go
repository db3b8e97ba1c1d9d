package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
)

// MemoryStore is a mutex-guarded in-memory Store. It is the default backend
// for local development and the double used in tests.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[int64]core.User
	transactions map[int64]core.Transaction
	goals        map[int64]core.Goal
	months       []monthRecord
	audit        []AuditEntry
	nextID       int64
}

type monthRecord struct {
	month    string
	adjusted bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]core.User),
		transactions: make(map[int64]core.Transaction),
		goals:        make(map[int64]core.Goal),
		nextID:       1,
	}
}

func (m *MemoryStore) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id int64) (*core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) CreateUser(ctx context.Context, nu core.NewUser) (*core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := core.User{
		ID:             m.id(),
		UserName:       nu.UserName,
		CurrentAmount:  nu.CurrentAmount,
		MonthlyInputs:  nu.MonthlyInputs,
		MonthlyOutputs: nu.MonthlyOutputs,
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, id int64, patch core.UserPatch) (*core.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.UserName != nil {
		u.UserName = *patch.UserName
	}
	if patch.CurrentAmount != nil {
		u.CurrentAmount = *patch.CurrentAmount
	}
	if patch.MonthlyInputs != nil {
		u.MonthlyInputs = *patch.MonthlyInputs
	}
	if patch.MonthlyOutputs != nil {
		u.MonthlyOutputs = *patch.MonthlyOutputs
	}
	m.users[id] = u
	return &u, nil
}

func (m *MemoryStore) DeleteUser(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	// Cascade to scoped records
	for tid, t := range m.transactions {
		if t.UserID == id {
			delete(m.transactions, tid)
		}
	}
	for gid, g := range m.goals {
		if g.UserID == id {
			delete(m.goals, gid)
		}
	}
	return nil
}

func (m *MemoryStore) ListTransactionsByUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Transaction, 0)
	for _, t := range m.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, id int64) (*core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, nt core.NewTransaction) (*core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[nt.UserID]; !ok {
		return nil, ErrNotFound
	}
	t := core.Transaction{
		ID:          m.id(),
		Description: nt.Description,
		Amount:      nt.Amount,
		IsDebt:      nt.IsDebt,
		UserID:      nt.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	m.transactions[t.ID] = t
	return &t, nil
}

func (m *MemoryStore) UpdateTransaction(ctx context.Context, id int64, patch core.TransactionPatch) (*core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.IsDebt != nil {
		t.IsDebt = *patch.IsDebt
	}
	m.transactions[id] = t
	return &t, nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MemoryStore) ListGoalsByUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Goal, 0)
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetGoal(ctx context.Context, id int64) (*core.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (m *MemoryStore) CreateGoal(ctx context.Context, ng core.NewGoal) (*core.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[ng.UserID]; !ok {
		return nil, ErrNotFound
	}
	g := core.Goal{
		ID:          m.id(),
		Name:        ng.Name,
		Description: ng.Description,
		Price:       ng.Price,
		Pros:        ng.Pros,
		Cons:        ng.Cons,
		Deadline:    ng.Deadline,
		UserID:      ng.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	m.goals[g.ID] = g
	return &g, nil
}

func (m *MemoryStore) UpdateGoal(ctx context.Context, id int64, patch core.GoalPatch) (*core.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Description != nil {
		g.Description = *patch.Description
	}
	if patch.Price != nil {
		g.Price = *patch.Price
	}
	if patch.Pros != nil {
		g.Pros = *patch.Pros
	}
	if patch.Cons != nil {
		g.Cons = *patch.Cons
	}
	if patch.Deadline != nil {
		g.Deadline = *patch.Deadline
	}
	m.goals[id] = g
	return &g, nil
}

func (m *MemoryStore) DeleteGoal(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *MemoryStore) LastProcessedMonth(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.months) == 0 {
		return "", nil
	}
	last := ""
	for _, r := range m.months {
		if r.month > last {
			last = r.month
		}
	}
	return last, nil
}

func (m *MemoryStore) RecordMonth(ctx context.Context, month string, adjusted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.months = append(m.months, monthRecord{month: month, adjusted: adjusted})
	return nil
}

func (m *MemoryStore) ApplyMonthlyFlows(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, u := range m.users {
		u.CurrentAmount += u.MonthlyInputs - u.MonthlyOutputs
		m.users[id] = u
		n++
	}
	return n, nil
}

func (m *MemoryStore) AppendAudit(ctx context.Context, e AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, e)
	return nil
}

// AuditEntries returns a copy of the audit trail, oldest first.
func (m *MemoryStore) AuditEntries() []AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AuditEntry, len(m.audit))
	copy(out, m.audit)
	return out
}

func (m *MemoryStore) Close() error { return nil }
