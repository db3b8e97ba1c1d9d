package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

type recordedEvent struct {
	Entity string
	Op     string
	ID     int64
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishMutation(_ context.Context, entity, op string, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Entity: entity, Op: op, ID: id})
	return nil
}

func (p *recordingPublisher) all() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedEvent(nil), p.events...)
}

func newTestServer(t *testing.T) (*httptest.Server, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	srv := NewServer(":0", storage.NewMemoryStore(), pub, log.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, pub
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestUserLifecycle(t *testing.T) {
	ts, pub := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/users", map[string]any{
		"user_name":       "Alice",
		"current_amount":  0,
		"monthly_inputs":  500000,
		"monthly_outputs": 300000,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	alice := decodeBody[core.User](t, resp)
	if alice.ID == 0 || alice.UserName != "Alice" {
		t.Fatalf("created user = %+v", alice)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/users", nil)
	users := decodeBody[[]core.User](t, resp)
	if len(users) != 1 {
		t.Fatalf("list = %+v", users)
	}

	// Partial update touches only the named field.
	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/users/%d", ts.URL, alice.ID), map[string]any{"user_name": "Alicia"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d", resp.StatusCode)
	}
	upd := decodeBody[core.User](t, resp)
	if upd.UserName != "Alicia" || upd.MonthlyInputs != 500000 {
		t.Fatalf("patched user = %+v", upd)
	}

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/users/%d", ts.URL, alice.ID), nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/users/%d", ts.URL, alice.ID), nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}

	want := []recordedEvent{
		{Entity: "user", Op: "create", ID: alice.ID},
		{Entity: "user", Op: "update", ID: alice.ID},
		{Entity: "user", Op: "delete", ID: alice.ID},
	}
	got := pub.all()
	if len(got) != len(want) {
		t.Fatalf("events = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScopedListings(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/users", map[string]any{"user_name": "Alice"})
	alice := decodeBody[core.User](t, resp)
	resp = doJSON(t, http.MethodPost, ts.URL+"/users", map[string]any{"user_name": "Bob"})
	bob := decodeBody[core.User](t, resp)

	resp = doJSON(t, http.MethodPost, ts.URL+"/transactions", map[string]any{
		"description": "Coffee", "amount": -450, "user_id": alice.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transaction status = %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = doJSON(t, http.MethodPost, ts.URL+"/goals", map[string]any{
		"name": "Bike", "price": 80000, "user_id": alice.ID, "deadline": "2025-12-31",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create goal status = %d", resp.StatusCode)
	}
	goal := decodeBody[core.Goal](t, resp)
	if goal.Deadline != "2025-12-31" {
		t.Fatalf("goal deadline = %q", goal.Deadline)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/users/transactions/%d", ts.URL, alice.ID), nil)
	txns := decodeBody[[]core.Transaction](t, resp)
	if len(txns) != 1 || txns[0].Description != "Coffee" || txns[0].Amount != -450 {
		t.Fatalf("alice transactions = %+v", txns)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/users/transactions/%d", ts.URL, bob.ID), nil)
	txns = decodeBody[[]core.Transaction](t, resp)
	if len(txns) != 0 {
		t.Fatalf("bob transactions = %+v", txns)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/users/goals/%d", ts.URL, alice.ID), nil)
	goals := decodeBody[[]core.Goal](t, resp)
	if len(goals) != 1 || goals[0].Name != "Bike" {
		t.Fatalf("alice goals = %+v", goals)
	}
}

func TestValidation(t *testing.T) {
	ts, pub := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"missing user_name", http.MethodPost, "/users", map[string]any{}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/users", nil, http.StatusBadRequest},
		{"transaction without user", http.MethodPost, "/transactions", map[string]any{"description": "x"}, http.StatusBadRequest},
		{"transaction orphan user", http.MethodPost, "/transactions", map[string]any{"description": "x", "user_id": 999}, http.StatusNotFound},
		{"goal bad deadline", http.MethodPost, "/goals", map[string]any{"name": "x", "user_id": 1, "deadline": "next year"}, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/users/abc", nil, http.StatusBadRequest},
		{"missing transaction", http.MethodGet, "/transactions/99", nil, http.StatusNotFound},
		{"missing goal delete", http.MethodDelete, "/goals/99", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, tt.method, ts.URL+tt.path, tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
				t.Fatalf("error envelope missing: %v, %+v", err, e)
			}
		})
	}

	// Failed writes publish nothing.
	if got := pub.all(); len(got) != 0 {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestOwnershipImmutableOnPatch(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/users", map[string]any{"user_name": "Alice"})
	alice := decodeBody[core.User](t, resp)
	resp = doJSON(t, http.MethodPost, ts.URL+"/users", map[string]any{"user_name": "Bob"})
	bob := decodeBody[core.User](t, resp)

	resp = doJSON(t, http.MethodPost, ts.URL+"/transactions", map[string]any{
		"description": "Coffee", "amount": -450, "user_id": alice.ID,
	})
	txn := decodeBody[core.Transaction](t, resp)

	// A user_id in the patch body is ignored, not applied.
	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/transactions/%d", ts.URL, txn.ID), map[string]any{
		"amount": -500, "user_id": bob.ID,
	})
	upd := decodeBody[core.Transaction](t, resp)
	if upd.UserID != alice.ID {
		t.Fatalf("ownership changed to %d", upd.UserID)
	}
	if upd.Amount != -500 {
		t.Fatalf("amount = %d", upd.Amount)
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
}
