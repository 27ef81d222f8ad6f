package actual

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ClientConfig represents the configuration for the Actual API client.
type ClientConfig struct {
	ServerURL string
	Password  string
	SyncID    string
	Timeout   time.Duration // Default: 30 seconds
}

// Client is an Actual Budget server API client.
//
// All reads are sequential request/response round trips; the client keeps no
// state beyond the session token obtained by Login.
type Client struct {
	httpClient *http.Client
	baseURL    string
	password   string
	syncID     string
	token      string
}

// NewClient creates a new Actual API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  config.ServerURL,
		password: config.Password,
		syncID:   config.SyncID,
	}
}

// Login exchanges the server password for a session token.
// It must be called before any read operation.
func (c *Client) Login() error {
	loginURL := fmt.Sprintf("%s/account/login", c.baseURL)

	body, err := json.Marshal(map[string]string{"password": c.password})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequest("POST", loginURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	var loginResp loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if loginResp.Data.Token == "" {
		return fmt.Errorf("actual API error: login returned an empty token")
	}

	c.token = loginResp.Data.Token
	return nil
}

// SetToken sets the session token directly, bypassing Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Close releases the client session. The Actual server keeps no per-client
// state worth tearing down, so this only clears the token.
func (c *Client) Close() error {
	c.token = ""
	return nil
}

// Accounts fetches all budget accounts.
func (c *Client) Accounts() ([]Account, error) {
	var resp accountsResponse
	if err := c.get("accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return resp.Data, nil
}

// Categories fetches all budget categories.
func (c *Client) Categories() ([]Category, error) {
	var resp categoriesResponse
	if err := c.get("categories", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return resp.Data, nil
}

// Payees fetches all payees.
func (c *Client) Payees() ([]Payee, error) {
	var resp payeesResponse
	if err := c.get("payees", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch payees: %w", err)
	}
	return resp.Data, nil
}

// Transactions fetches all transactions of the budget. The server returns
// them newest first.
func (c *Client) Transactions() ([]Transaction, error) {
	var resp transactionsResponse
	if err := c.get("transactions", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return resp.Data, nil
}

// AccountBalance fetches the current running balance of an account in minor
// currency units.
func (c *Client) AccountBalance(accountID string) (int64, error) {
	var resp balanceResponse
	path := fmt.Sprintf("accounts/%s/balance", accountID)
	if err := c.get(path, nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch balance for account %s: %w", accountID, err)
	}
	return resp.Data, nil
}

// get performs an authenticated GET against a budget-scoped endpoint and
// decodes the JSON response into out.
func (c *Client) get(path string, params map[string]string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/v1/budgets/%s/%s", c.baseURL, c.syncID, path)

	if len(params) > 0 {
		queryParams := url.Values{}
		for k, v := range params {
			queryParams.Set(k, v)
		}
		endpoint = fmt.Sprintf("%s?%s", endpoint, queryParams.Encode())
	}

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// parseError parses an error response from the Actual API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("actual API error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("actual API error (status %d): %s", resp.StatusCode, string(body))
	}

	if errResp.Message != "" {
		return fmt.Errorf("actual API error: %s - %s", errResp.Error, errResp.Message)
	}

	return fmt.Errorf("actual API error: %s", errResp.Error)
}
