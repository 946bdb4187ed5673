package bankclient

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the profile slice of an auth response. The password is never
// retained client-side.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
}

// AuthResponse is returned by register and login on success.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// CreateAccountRequest represents the create-account payload
type CreateAccountRequest struct {
	Name          string          `json:"name"`
	CNIC          string          `json:"cnic"`
	BranchCode    string          `json:"branchCode"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	CashDeposit   decimal.Decimal `json:"cashDeposit"`
}

// Account mirrors a backend account record. The backend owns the record;
// copies here are scoped to a single page render.
type Account struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	CNIC          string          `json:"cnic"`
	BranchCode    string          `json:"branchCode"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	CashDeposit   decimal.Decimal `json:"cashDeposit"`
}

// Transaction mirrors a backend ledger entry. Immutable from this side.
type Transaction struct {
	ID            string          `json:"_id"`
	AccountID     string          `json:"accountId"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// MessageResponse is the generic mutation acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

type accountsEnvelope struct {
	Accounts []Account `json:"accounts"`
}

type transactionsEnvelope struct {
	Transactions []Transaction `json:"transactions"`
}

type amountBody struct {
	Amount decimal.Decimal `json:"amount"`
}
