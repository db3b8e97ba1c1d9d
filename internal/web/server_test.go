package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"fintrack/internal/api"
	"fintrack/internal/client"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

type fixture struct {
	store   *storage.MemoryStore
	apiHits *atomic.Int64
	http    *http.Client
	baseURL string
}

// newFixture stands up a real API server and the web server in front of it.
// The returned HTTP client carries cookies and follows redirects, behaving
// like a browser.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := storage.NewMemoryStore()
	apiSrv := api.NewServer(":0", store, nil, log.Discard())

	hits := &atomic.Int64{}
	counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		apiSrv.Handler().ServeHTTP(w, r)
	})
	apiTS := httptest.NewServer(counted)
	t.Cleanup(apiTS.Close)

	webSrv, err := NewServer(":0", client.New(apiTS.URL, log.Discard()), log.Discard())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	webTS := httptest.NewServer(webSrv.Handler())
	t.Cleanup(webTS.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &fixture{
		store:   store,
		apiHits: hits,
		http:    &http.Client{Jar: jar},
		baseURL: webTS.URL,
	}
}

func (f *fixture) get(t *testing.T, path string) string {
	t.Helper()
	resp, err := f.http.Get(f.baseURL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

// post submits a form and returns the body of the page the redirect lands on.
func (f *fixture) post(t *testing.T, path string, form url.Values) string {
	t.Helper()
	resp, err := f.http.PostForm(f.baseURL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func (f *fixture) seedUser(t *testing.T, name string, current, in, out core.Money) *core.User {
	t.Helper()
	u, err := f.store.CreateUser(context.Background(), core.NewUser{
		UserName: name, CurrentAmount: current, MonthlyInputs: in, MonthlyOutputs: out,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUsersPageRendersFormattedAmounts(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Alice", 0, 500000, 300000)

	body := f.get(t, "/users")
	for _, want := range []string{"Alice", "0.00", "5,000.00", "3,000.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestSelectAndDeselect(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)

	body := f.post(t, "/users/"+itoa(alice.ID)+"/select", url.Values{"name": {"Alice"}})
	if !strings.Contains(body, `User "Alice" selected`) {
		t.Error("selection toast missing")
	}
	if !strings.Contains(body, "Selected:") {
		t.Error("selection banner missing")
	}

	body = f.post(t, "/users/deselect", url.Values{})
	if !strings.Contains(body, "No user selected") {
		t.Error("deselect did not clear the banner")
	}
	// Deselection is traceless, no toast.
	if strings.Contains(body, `id="toast"`) {
		t.Error("unexpected toast after deselect")
	}
}

func TestDeleteSelectedUserClearsSelection(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)

	f.post(t, "/users/"+itoa(alice.ID)+"/select", url.Values{"name": {"Alice"}})

	// Stage the deletion; the confirmation dialog renders with the prompt.
	body := f.post(t, "/users/"+itoa(alice.ID)+"/delete", url.Values{"name": {"Alice"}})
	if !strings.Contains(body, `Are you sure you want to delete user "Alice"`) {
		t.Fatal("confirmation prompt missing")
	}

	body = f.post(t, "/confirm/accept", url.Values{})
	if !strings.Contains(body, "User deleted successfully") {
		t.Error("delete toast missing")
	}
	if !strings.Contains(body, "No user selected") {
		t.Error("selection survived deleting the selected user")
	}
}

func TestConfirmCancelKeepsRecord(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)

	f.post(t, "/users/"+itoa(alice.ID)+"/delete", url.Values{"name": {"Alice"}})
	body := f.post(t, "/confirm/cancel", url.Values{})

	if !strings.Contains(body, "Alice") {
		t.Error("record gone after cancel")
	}
	if _, err := f.store.GetUser(context.Background(), alice.ID); err != nil {
		t.Errorf("user deleted despite cancel: %v", err)
	}
}

func TestTransactionCreateRequiresSelection(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Alice", 0, 0, 0)

	before := f.apiHits.Load()
	body := f.get(t, "/transactions/new")
	if !strings.Contains(body, "Please select a user") {
		t.Error("missing selection toast")
	}
	// Rejected before any API call.
	if got := f.apiHits.Load(); got != before {
		t.Errorf("API was called %d times", got-before)
	}
}

func TestTransactionLifecycleThroughForms(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)
	f.post(t, "/users/"+itoa(alice.ID)+"/select", url.Values{"name": {"Alice"}})

	body := f.post(t, "/transactions/save", url.Values{
		"description": {"Coffee"},
		"amount":      {"-4.50"},
	})
	if !strings.Contains(body, "Transaction created successfully") {
		t.Fatal("create toast missing")
	}
	if !strings.Contains(body, "-4.50") || !strings.Contains(body, "negative") {
		t.Error("negative amount not rendered with negative styling")
	}

	txns, _ := f.store.ListTransactionsByUser(context.Background(), alice.ID)
	if len(txns) != 1 || txns[0].Amount != -450 {
		t.Fatalf("stored transactions = %+v", txns)
	}

	// Edit keeps ownership and patches fields.
	id := itoa(txns[0].ID)
	body = f.post(t, "/transactions/save", url.Values{
		"id":          {id},
		"description": {"Espresso"},
		"amount":      {"-5.00"},
		"is_debt":     {"1"},
	})
	if !strings.Contains(body, "Transaction updated successfully") {
		t.Fatal("update toast missing")
	}
	updated, _ := f.store.GetTransaction(context.Background(), txns[0].ID)
	if updated.Description != "Espresso" || updated.Amount != -500 || !updated.IsDebt {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.UserID != alice.ID {
		t.Fatalf("ownership changed: %+v", updated)
	}
}

func TestInvalidAmountRejectedWithToast(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)
	f.post(t, "/users/"+itoa(alice.ID)+"/select", url.Values{"name": {"Alice"}})

	before := len(mustList(t, f.store, alice.ID))
	body := f.post(t, "/transactions/save", url.Values{
		"description": {"Coffee"},
		"amount":      {"12x3"},
	})
	if !strings.Contains(body, "Invalid amount") {
		t.Error("invalid amount toast missing")
	}
	if got := len(mustList(t, f.store, alice.ID)); got != before {
		t.Errorf("transaction created from malformed amount")
	}
}

func TestGoalDeadlineFormRoundTrip(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)
	f.post(t, "/users/"+itoa(alice.ID)+"/select", url.Values{"name": {"Alice"}})

	f.post(t, "/goals/save", url.Values{
		"name":     {"Bike"},
		"price":    {"800.00"},
		"deadline": {"2025-12-31"},
	})
	goals, _ := f.store.ListGoalsByUser(context.Background(), alice.ID)
	if len(goals) != 1 || goals[0].Deadline != "2025-12-31" {
		t.Fatalf("stored goals = %+v", goals)
	}

	// The edit form carries the deadline back verbatim for the date input.
	body := f.get(t, "/goals/"+itoa(goals[0].ID)+"/edit")
	if !strings.Contains(body, `value="2025-12-31"`) {
		t.Error("edit form lost the raw deadline")
	}
}

func TestLanguageSwitchChangesLabelsNotData(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "Alice", 0, 500000, 0)

	body := f.get(t, "/users")
	if !strings.Contains(body, "Users") || !strings.Contains(body, "5,000.00") {
		t.Fatal("english page not as expected")
	}

	body = f.post(t, "/lang/pt", url.Values{"return_to": {"/users"}})
	if !strings.Contains(body, "Usuários") {
		t.Error("labels not localized")
	}
	if !strings.Contains(body, "5.000,00") {
		t.Error("amounts not reformatted for pt")
	}
	if !strings.Contains(body, "Alice") {
		t.Error("data changed with language switch")
	}
}

func TestRenamingSelectedUserUpdatesBanner(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "Alice", 0, 0, 0)
	f.post(t, "/users/"+itoa(alice.ID)+"/select", url.Values{"name": {"Alice"}})

	body := f.post(t, "/users/save", url.Values{
		"id":              {itoa(alice.ID)},
		"user_name":       {"Alicia"},
		"current_amount":  {"0"},
		"monthly_inputs":  {"0"},
		"monthly_outputs": {"0"},
	})
	if !strings.Contains(body, "<strong>Alicia</strong>") {
		t.Error("selection banner kept the stale name")
	}
}

func mustList(t *testing.T, store *storage.MemoryStore, userID int64) []core.Transaction {
	t.Helper()
	txns, err := store.ListTransactionsByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	return txns
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
