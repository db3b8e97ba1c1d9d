package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type captureNotifier struct {
	errs []error
}

func (n *captureNotifier) NotifyError(err error) { n.errs = append(n.errs, err) }

func TestClientSuccessSkipsNotifier(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"user_name":"Alice","current_amount":0,"monthly_inputs":500000,"monthly_outputs":300000}]`))
	}))
	defer ts.Close()

	n := &captureNotifier{}
	c := New(ts.URL, log.Discard())
	users, err := c.ListUsers(WithNotifier(context.Background(), n))
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].UserName != "Alice" {
		t.Fatalf("users = %+v", users)
	}
	if len(n.errs) != 0 {
		t.Fatalf("notifier called on success: %v", n.errs)
	}
}

func TestClientSurfacesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"record not found"}`))
	}))
	defer ts.Close()

	n := &captureNotifier{}
	c := New(ts.URL, log.Discard())
	_, err := c.GetUser(WithNotifier(context.Background(), n), 42)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "record not found" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if len(n.errs) != 1 {
		t.Fatalf("notifier calls = %d", len(n.errs))
	}
}

func TestClientStatusOnlyError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(ts.URL, log.Discard())
	err := c.DeleteGoal(context.Background(), 1)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Message != "" || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	// Falls back to a status-coded message.
	if apiErr.Error() != "api: status 502" {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
}

func TestClientTransportFailureNotifies(t *testing.T) {
	n := &captureNotifier{}
	c := New("http://127.0.0.1:1", log.Discard())
	_, err := c.CreateUser(WithNotifier(context.Background(), n), core.NewUser{UserName: "Alice"})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if len(n.errs) != 1 {
		t.Fatalf("notifier calls = %d", len(n.errs))
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure should not be an APIError: %v", err)
	}
}
