package actual

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/account/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid-password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"token": "test-token"},
		})
	})

	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "unauthorized"})
			return false
		}
		return true
	}

	mux.HandleFunc("/v1/budgets/my-budget/accounts", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []Account{
				{ID: "a1", Name: "Checking"},
				{ID: "a2", Name: "Savings", Closed: true},
			},
		})
	})

	mux.HandleFunc("/v1/budgets/my-budget/transactions", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []Transaction{
				{ID: "t2", Account: "a1", Date: "2024-01-06", Amount: -500},
				{ID: "t1", Account: "a1", Category: "c1", Date: "2024-01-05", Amount: -1500, Payee: "p1"},
			},
		})
	})

	mux.HandleFunc("/v1/budgets/my-budget/accounts/a1/balance", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": int64(123456)})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client := NewClient(ClientConfig{
		ServerURL: serverURL,
		Password:  "hunter2",
		SyncID:    "my-budget",
		Timeout:   5 * time.Second,
	})
	if err := client.Login(); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	return client
}

func TestLogin(t *testing.T) {
	server := newTestServer(t)

	client := NewClient(ClientConfig{
		ServerURL: server.URL,
		Password:  "hunter2",
		SyncID:    "my-budget",
	})
	if err := client.Login(); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if client.token != "test-token" {
		t.Errorf("Login() token = %q, expected %q", client.token, "test-token")
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	server := newTestServer(t)

	client := NewClient(ClientConfig{
		ServerURL: server.URL,
		Password:  "wrong",
		SyncID:    "my-budget",
	})
	if err := client.Login(); err == nil {
		t.Fatal("Login() expected error for invalid password")
	}
}

func TestAccounts(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL)

	accounts, err := client.Accounts()
	if err != nil {
		t.Fatalf("Accounts() failed: %v", err)
	}

	if len(accounts) != 2 {
		t.Fatalf("Accounts() returned %d accounts, expected 2", len(accounts))
	}
	if accounts[0].ID != "a1" || accounts[0].Name != "Checking" {
		t.Errorf("Accounts()[0] = %+v, expected a1/Checking", accounts[0])
	}
	if !accounts[1].Closed {
		t.Errorf("Accounts()[1].Closed = false, expected true")
	}
}

func TestTransactions(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL)

	txns, err := client.Transactions()
	if err != nil {
		t.Fatalf("Transactions() failed: %v", err)
	}

	if len(txns) != 2 {
		t.Fatalf("Transactions() returned %d transactions, expected 2", len(txns))
	}

	// Server order is newest first
	if txns[0].ID != "t2" || txns[1].ID != "t1" {
		t.Errorf("Transactions() order = %s, %s, expected t2, t1", txns[0].ID, txns[1].ID)
	}
	if txns[1].Amount != -1500 {
		t.Errorf("Transactions()[1].Amount = %d, expected -1500", txns[1].Amount)
	}
}

func TestAccountBalance(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL)

	balance, err := client.AccountBalance("a1")
	if err != nil {
		t.Fatalf("AccountBalance() failed: %v", err)
	}
	if balance != 123456 {
		t.Errorf("AccountBalance() = %d, expected 123456", balance)
	}
}

func TestUnauthorizedRequest(t *testing.T) {
	server := newTestServer(t)

	client := NewClient(ClientConfig{
		ServerURL: server.URL,
		Password:  "hunter2",
		SyncID:    "my-budget",
	})
	// No login: the request must fail with the decoded API error.
	if _, err := client.Accounts(); err == nil {
		t.Fatal("Accounts() expected error without login")
	}
}

func TestClose(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL)

	if err := client.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if client.token != "" {
		t.Errorf("Close() left token %q, expected empty", client.token)
	}
}
