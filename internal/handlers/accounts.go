package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/paklite/bankportal/internal/bankclient"
	"github.com/paklite/bankportal/internal/forms"
	"github.com/paklite/bankportal/internal/middleware"
	"github.com/paklite/bankportal/internal/session"
)

const accountsPageSize = 5

type accountListData struct {
	Accounts     []bankclient.Account
	PageAccounts []bankclient.Account
	Page         int
	TotalPages   int
	Selected     *bankclient.Account
	TxnType      string
	QRCode       template.URL
}

// AccountList fetches the full account set and renders the table, plus the
// detail and amount views selected via query parameters.
func (h *Handler) AccountList(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	accounts, err := h.client.GetAccounts(r.Context(), sess.Token)
	if err != nil {
		if errors.Is(err, bankclient.ErrUnauthorized) {
			h.unauthorized(w, r)
			return
		}
		log.Printf("[BANK] Account list fetch failed: %v", err)
		flash := session.Error(errorMessage(err, "Failed to fetch accounts"))
		h.render(w, r, "account_list", "My Bank Accounts", accountListData{Page: 1, TotalPages: 1}, &flash)
		return
	}

	data := accountListData{Accounts: accounts}
	data.Page, data.TotalPages, data.PageAccounts = paginate(accounts, r.URL.Query().Get("page"), accountsPageSize)

	if id := r.URL.Query().Get("view"); id != "" {
		for i := range accounts {
			if accounts[i].ID == id {
				data.Selected = &accounts[i]
				break
			}
		}
		if data.Selected != nil {
			switch t := r.URL.Query().Get("txn"); t {
			case "deposit", "withdraw":
				data.TxnType = t
			}
			qr, err := accountQR(data.Selected.AccountNumber)
			if err != nil {
				log.Printf("[BANK] QR render failed for account %s: %v", id, err)
			} else {
				data.QRCode = qr
			}
		}
	}

	h.render(w, r, "account_list", "My Bank Accounts", data, nil)
}

// ShowCreateAccount renders the account-opening form.
func (h *Handler) ShowCreateAccount(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "create_account", "Create Bank Account", forms.CreateAccountForm{}, nil)
}

// CreateAccount validates the form and opens the account via the backend.
// 401 and 400 get differentiated messages; everything else is generic.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseCreateAccountForm(r)
	if msg := form.Validate(); msg != "" {
		flash := session.Error(msg)
		h.render(w, r, "create_account", "Create Bank Account", form, &flash)
		return
	}

	sess := middleware.SessionFrom(r.Context())
	resp, err := h.client.CreateAccount(r.Context(), sess.Token, bankclient.CreateAccountRequest{
		Name:          form.Name,
		CNIC:          form.CNIC,
		BranchCode:    form.BranchCode,
		AccountNumber: form.AccountNumber,
		AccountType:   form.AccountType,
		CashDeposit:   form.Deposit(),
	})
	if err != nil {
		if errors.Is(err, bankclient.ErrUnauthorized) {
			h.unauthorized(w, r)
			return
		}
		log.Printf("[BANK] Create account failed: %v", err)

		msg := "Failed to create account. Please try again later."
		var apiErr *bankclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			msg = "Invalid input data."
			if apiErr.Message != "" {
				msg = apiErr.Message
			}
		}
		flash := session.Error(msg)
		h.render(w, r, "create_account", "Create Bank Account", form, &flash)
		return
	}

	msg := resp.Message
	if msg == "" {
		msg = "Account created successfully!"
	}
	redirectFlash(w, r, "/dashboard", session.Success(msg))
}

// Deposit credits the selected account.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, "deposit")
}

// Withdraw debits the selected account.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, "withdraw")
}

// transact runs a deposit or withdraw. On success both the amount and
// detail views close and the list is re-fetched; on failure the amount
// view stays open so the user may retry.
func (h *Handler) transact(w http.ResponseWriter, r *http.Request, txnType string) {
	sess := middleware.SessionFrom(r.Context())
	accountID := chi.URLParam(r, "accountID")
	amountView := fmt.Sprintf("/dashboard/accountlist?view=%s&txn=%s", url.QueryEscape(accountID), txnType)

	amount, msg := forms.ParseAmount(r.PostFormValue("amount"))
	if msg != "" {
		redirectFlash(w, r, amountView, session.Error(msg))
		return
	}

	var (
		resp *bankclient.MessageResponse
		err  error
	)
	if txnType == "deposit" {
		resp, err = h.client.Deposit(r.Context(), sess.Token, accountID, amount)
	} else {
		resp, err = h.client.Withdraw(r.Context(), sess.Token, accountID, amount)
	}
	if err != nil {
		if errors.Is(err, bankclient.ErrUnauthorized) {
			h.unauthorized(w, r)
			return
		}
		log.Printf("[BANK] %s failed for account %s: %v", txnType, accountID, err)
		redirectFlash(w, r, amountView, session.Error(errorMessage(err, "Failed to "+txnType)))
		return
	}

	success := resp.Message
	if success == "" {
		success = txnType + " successful!"
	}
	redirectFlash(w, r, "/dashboard/accountlist", session.Success(success))
}

// DeleteAccount removes an account. The destructive call is only issued
// with explicit confirmation; declining closes nothing and sends nothing.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	accountID := chi.URLParam(r, "accountID")
	detailView := "/dashboard/accountlist?view=" + url.QueryEscape(accountID)

	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, detailView, http.StatusSeeOther)
		return
	}

	resp, err := h.client.DeleteAccount(r.Context(), sess.Token, accountID)
	if err != nil {
		if errors.Is(err, bankclient.ErrUnauthorized) {
			h.unauthorized(w, r)
			return
		}
		log.Printf("[BANK] Delete failed for account %s: %v", accountID, err)
		redirectFlash(w, r, detailView, session.Error(errorMessage(err, "Failed to delete account")))
		return
	}

	msg := resp.Message
	if msg == "" {
		msg = "Account deleted successfully"
	}
	redirectFlash(w, r, "/dashboard/accountlist", session.Success(msg))
}
