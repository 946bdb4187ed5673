// Package forms holds the client-side validation rules. Checks run in a
// fixed order and stop at the first failing rule; a failed form never
// reaches the backend. Authoritative validation remains server-side.
package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// RegisterForm carries the registration inputs. Field order is the
// validation order.
type RegisterForm struct {
	FirstName       string `validate:"required,min=3"`
	LastName        string
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

var registerMessages = map[string]string{
	"FirstName":       "First Name must be at least 3 characters long",
	"Email.required":  "Email is required",
	"Email.email":     "Please enter a valid email address",
	"Password":        "Password is required",
	"ConfirmPassword": "Passwords do not match",
}

// ParseRegisterForm reads and trims the registration fields.
func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		FirstName:       strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:        strings.TrimSpace(r.PostFormValue("lastName")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        strings.TrimSpace(r.PostFormValue("password")),
		ConfirmPassword: strings.TrimSpace(r.PostFormValue("confirmPassword")),
	}
}

// Validate returns the first failing rule's message, or "" when the form
// may be submitted.
func (f RegisterForm) Validate() string {
	return firstMessage(validate.Struct(f), registerMessages)
}

// LoginForm carries the login inputs, checked symmetrically to register.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

var loginMessages = map[string]string{
	"Email.required": "Email is required",
	"Email.email":    "Please enter a valid email address",
	"Password":       "Password is required",
}

func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: strings.TrimSpace(r.PostFormValue("password")),
	}
}

func (f LoginForm) Validate() string {
	return firstMessage(validate.Struct(f), loginMessages)
}

// CreateAccountForm carries the account-opening inputs. The numeric fields
// are fixed-length; templates cap them as the user types, these rules are
// the submit-time gate.
type CreateAccountForm struct {
	Name          string `validate:"required"`
	CNIC          string `validate:"required,len=13,numeric"`
	BranchCode    string `validate:"required,len=2,numeric"`
	AccountNumber string `validate:"required,len=9,numeric"`
	AccountType   string `validate:"required,oneof=Saving Current"`
	CashDeposit   string `validate:"required"`
}

var createAccountMessages = map[string]string{
	"Name":          "Name is required",
	"CNIC":          "CNIC must be 13 digits",
	"BranchCode":    "Branch Code is required 2 digits",
	"AccountNumber": "Account Number must be 9 digits required",
	"AccountType":   "Please select Account Type",
	"CashDeposit":   "Cash Deposit is required",
}

func ParseCreateAccountForm(r *http.Request) CreateAccountForm {
	return CreateAccountForm{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		CNIC:          strings.TrimSpace(r.PostFormValue("cnic")),
		BranchCode:    strings.TrimSpace(r.PostFormValue("branchCode")),
		AccountNumber: strings.TrimSpace(r.PostFormValue("accountNumber")),
		AccountType:   strings.TrimSpace(r.PostFormValue("accountType")),
		CashDeposit:   strings.TrimSpace(r.PostFormValue("cashDeposit")),
	}
}

// Validate returns the first failing rule's message, or "". The deposit
// amount must also parse as a non-negative number.
func (f CreateAccountForm) Validate() string {
	if msg := firstMessage(validate.Struct(f), createAccountMessages); msg != "" {
		return msg
	}
	amount, err := decimal.NewFromString(f.CashDeposit)
	if err != nil || !amount.IsPositive() {
		return createAccountMessages["CashDeposit"]
	}
	return ""
}

// Deposit returns the parsed initial deposit. Call only after Validate.
func (f CreateAccountForm) Deposit() decimal.Decimal {
	amount, _ := decimal.NewFromString(f.CashDeposit)
	return amount
}

// ParseAmount validates a deposit/withdraw amount: it must be present and
// strictly positive. The message matches the transaction form's toast.
func ParseAmount(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, "Enter a valid amount"
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, "Enter a valid amount"
	}
	return amount, ""
}

// firstMessage maps the first validation failure to its user-facing
// message. Lookup is by "Field.tag", then by "Field".
func firstMessage(err error, messages map[string]string) string {
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Something went wrong. Please try again."
	}
	first := verrs[0]
	if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[first.Field()]; ok {
		return msg
	}
	return "Something went wrong. Please try again."
}
