// Package client is the typed HTTP client for the REST API, used by the web
// frontend. Every call reports failures to the Notifier carried in the
// context before returning the error, so callers only decide whether to
// continue, not how to surface the problem.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// APIError is a non-2xx response from the API. Message is the server's
// error field when present, otherwise empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Notifier is told about every failed call. Implementations surface the
// failure to the user (the web layer shows a toast).
type Notifier interface {
	NotifyError(err error)
}

type notifierKey struct{}

// WithNotifier attaches a Notifier to the context for calls made with it.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

func notifierFrom(ctx context.Context) Notifier {
	n, _ := ctx.Value(notifierKey{}).(Notifier)
	return n
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func New(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger.WithComponent(log.ComponentWeb),
	}
}

// do runs one API call. A nil out discards the response body. Failures are
// reported to the context's Notifier before being returned.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.roundTrip(ctx, method, path, body, out)
	if err != nil {
		if n := notifierFrom(ctx); n != nil {
			n.NotifyError(err)
		}
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("API call failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Error
		}
		c.logger.Warn("API call rejected", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	var users []core.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id int64) (*core.User, error) {
	var u core.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, nu core.NewUser) (*core.User, error) {
	var u core.User
	if err := c.do(ctx, http.MethodPost, "/users", nu, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, patch core.UserPatch) (*core.User, error) {
	var u core.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), patch, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

func (c *Client) ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	var txns []core.Transaction
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/transactions/%d", userID), nil, &txns)
	return txns, err
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (*core.Transaction, error) {
	var t core.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTransaction(ctx context.Context, nt core.NewTransaction) (*core.Transaction, error) {
	var t core.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nt, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, patch core.TransactionPatch) (*core.Transaction, error) {
	var t core.Transaction
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/transactions/%d", id), patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil)
}

func (c *Client) ListGoals(ctx context.Context, userID int64) ([]core.Goal, error) {
	var goals []core.Goal
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/goals/%d", userID), nil, &goals)
	return goals, err
}

func (c *Client) GetGoal(ctx context.Context, id int64) (*core.Goal, error) {
	var g core.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/%d", id), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) CreateGoal(ctx context.Context, ng core.NewGoal) (*core.Goal, error) {
	var g core.Goal
	if err := c.do(ctx, http.MethodPost, "/goals", ng, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id int64, patch core.GoalPatch) (*core.Goal, error) {
	var g core.Goal
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/goals/%d", id), patch, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", id), nil, nil)
}
