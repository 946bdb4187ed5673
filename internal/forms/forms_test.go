package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterForm_Validate(t *testing.T) {
	valid := RegisterForm{
		FirstName:       "John",
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	t.Run("valid form passes", func(t *testing.T) {
		assert.Empty(t, valid.Validate())
	})

	t.Run("last name is optional", func(t *testing.T) {
		f := valid
		f.LastName = ""
		assert.Empty(t, f.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		want   string
	}{
		{
			name:   "short first name",
			mutate: func(f *RegisterForm) { f.FirstName = "Al" },
			want:   "First Name must be at least 3 characters long",
		},
		{
			name:   "empty first name",
			mutate: func(f *RegisterForm) { f.FirstName = "" },
			want:   "First Name must be at least 3 characters long",
		},
		{
			name:   "missing email",
			mutate: func(f *RegisterForm) { f.Email = "" },
			want:   "Email is required",
		},
		{
			name:   "invalid email shape",
			mutate: func(f *RegisterForm) { f.Email = "not-an-email" },
			want:   "Please enter a valid email address",
		},
		{
			name:   "missing password",
			mutate: func(f *RegisterForm) { f.Password = ""; f.ConfirmPassword = "" },
			want:   "Password is required",
		},
		{
			name:   "password mismatch",
			mutate: func(f *RegisterForm) { f.ConfirmPassword = "different" },
			want:   "Passwords do not match",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			assert.Equal(t, tt.want, f.Validate())
		})
	}

	t.Run("first failing rule wins", func(t *testing.T) {
		f := RegisterForm{}
		assert.Equal(t, "First Name must be at least 3 characters long", f.Validate())
	})
}

func TestCreateAccountForm_Validate(t *testing.T) {
	valid := CreateAccountForm{
		Name:          "John Doe",
		CNIC:          "1234567890123",
		BranchCode:    "01",
		AccountNumber: "123456789",
		AccountType:   "Saving",
		CashDeposit:   "5000",
	}

	t.Run("valid form passes", func(t *testing.T) {
		assert.Empty(t, valid.Validate())
		assert.Equal(t, "5000", valid.Deposit().String())
	})

	tests := []struct {
		name   string
		mutate func(*CreateAccountForm)
		want   string
	}{
		{
			name:   "missing name",
			mutate: func(f *CreateAccountForm) { f.Name = "" },
			want:   "Name is required",
		},
		{
			name:   "short cnic",
			mutate: func(f *CreateAccountForm) { f.CNIC = "12345" },
			want:   "CNIC must be 13 digits",
		},
		{
			name:   "non-numeric cnic",
			mutate: func(f *CreateAccountForm) { f.CNIC = "12345abc90123" },
			want:   "CNIC must be 13 digits",
		},
		{
			name:   "wrong branch code length",
			mutate: func(f *CreateAccountForm) { f.BranchCode = "123" },
			want:   "Branch Code is required 2 digits",
		},
		{
			name:   "wrong account number length",
			mutate: func(f *CreateAccountForm) { f.AccountNumber = "1234" },
			want:   "Account Number must be 9 digits required",
		},
		{
			name:   "missing account type",
			mutate: func(f *CreateAccountForm) { f.AccountType = "" },
			want:   "Please select Account Type",
		},
		{
			name:   "unknown account type",
			mutate: func(f *CreateAccountForm) { f.AccountType = "Offshore" },
			want:   "Please select Account Type",
		},
		{
			name:   "missing deposit",
			mutate: func(f *CreateAccountForm) { f.CashDeposit = "" },
			want:   "Cash Deposit is required",
		},
		{
			name:   "zero deposit",
			mutate: func(f *CreateAccountForm) { f.CashDeposit = "0" },
			want:   "Cash Deposit is required",
		},
		{
			name:   "non-numeric deposit",
			mutate: func(f *CreateAccountForm) { f.CashDeposit = "lots" },
			want:   "Cash Deposit is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			assert.Equal(t, tt.want, f.Validate())
		})
	}

	t.Run("cnic checked before branch code", func(t *testing.T) {
		f := valid
		f.CNIC = "12"
		f.BranchCode = "12345"
		assert.Equal(t, "CNIC must be 13 digits", f.Validate())
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
		want    string
	}{
		{name: "valid integer", raw: "250", want: "250"},
		{name: "valid decimal", raw: "99.50", want: "99.5"},
		{name: "trims whitespace", raw: " 10 ", want: "10"},
		{name: "empty", raw: "", wantMsg: "Enter a valid amount"},
		{name: "zero", raw: "0", wantMsg: "Enter a valid amount"},
		{name: "negative", raw: "-5", wantMsg: "Enter a valid amount"},
		{name: "not a number", raw: "ten", wantMsg: "Enter a valid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, msg := ParseAmount(tt.raw)
			assert.Equal(t, tt.wantMsg, msg)
			if tt.wantMsg == "" {
				assert.Equal(t, tt.want, amount.String())
			}
		})
	}
}
