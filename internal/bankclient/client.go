// Package bankclient is a typed HTTP client for the banking backend. All
// business logic (balance arithmetic, ledger writes, server-side validation)
// lives behind these endpoints; this package only shapes requests and
// validates response contracts.
package bankclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1_048_576 // 1 MB

func init() {
	// The backend speaks plain JSON numbers for amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// Client issues bearer-token-authenticated requests against a single
// externally supplied base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Register creates a user and returns the session token plus profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMalformedResponse
	}
	return &resp, nil
}

// Login authenticates a user and returns the session token plus profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMalformedResponse
	}
	return &resp, nil
}

// CreateAccount opens a bank account for the authenticated user.
func (c *Client) CreateAccount(ctx context.Context, token string, req CreateAccountRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/bank/create-account", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAccounts fetches the full, unpaginated set of accounts owned by the
// authenticated user.
func (c *Client) GetAccounts(ctx context.Context, token string) ([]Account, error) {
	var env accountsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/bank/get-accounts", token, nil, &env); err != nil {
		return nil, err
	}
	if env.Accounts == nil {
		return nil, ErrMalformedResponse
	}
	return env.Accounts, nil
}

// Deposit credits the given account. The backend records the transaction.
func (c *Client) Deposit(ctx context.Context, token, accountID string, amount decimal.Decimal) (*MessageResponse, error) {
	return c.mutateAmount(ctx, token, "deposit", accountID, amount)
}

// Withdraw debits the given account. The backend enforces sufficiency.
func (c *Client) Withdraw(ctx context.Context, token, accountID string, amount decimal.Decimal) (*MessageResponse, error) {
	return c.mutateAmount(ctx, token, "withdraw", accountID, amount)
}

func (c *Client) mutateAmount(ctx context.Context, token, op, accountID string, amount decimal.Decimal) (*MessageResponse, error) {
	var resp MessageResponse
	path := fmt.Sprintf("/api/bank/%s/%s", op, url.PathEscape(accountID))
	if err := c.do(ctx, http.MethodPost, path, token, amountBody{Amount: amount}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteAccount removes the given account.
func (c *Client) DeleteAccount(ctx context.Context, token, accountID string) (*MessageResponse, error) {
	var resp MessageResponse
	path := "/api/bank/delete/" + url.PathEscape(accountID)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTransactions fetches the authenticated user's transaction history.
func (c *Client) GetTransactions(ctx context.Context, token string) ([]Transaction, error) {
	var env transactionsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/bank/transactions", token, nil, &env); err != nil {
		return nil, err
	}
	if env.Transactions == nil {
		return nil, ErrMalformedResponse
	}
	return env.Transactions, nil
}

// do performs one request/response round trip. Failures are terminal for the
// attempt: no retry, no backoff, the only deadline is the client timeout.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bank api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("bank api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bank api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("bank api: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg MessageResponse
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return ErrMalformedResponse
		}
	}
	return nil
}
