package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/paklite/bankportal/internal/bankclient"
	"github.com/paklite/bankportal/internal/middleware"
	"github.com/paklite/bankportal/internal/session"
)

const transactionsPageSize = 10

type transactionsData struct {
	Transactions     []bankclient.Transaction
	PageTransactions []bankclient.Transaction
	Page             int
	TotalPages       int
	Selected         *bankclient.Transaction
}

// Transactions renders the read-only history, paginated UI-side, with a
// detail view selected via query parameter. No mutation capability.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	txs, err := h.client.GetTransactions(r.Context(), sess.Token)
	if err != nil {
		if errors.Is(err, bankclient.ErrUnauthorized) {
			h.unauthorized(w, r)
			return
		}
		log.Printf("[BANK] Transaction list fetch failed: %v", err)
		flash := session.Error(errorMessage(err, "Failed to fetch transactions"))
		h.render(w, r, "transactions", "Transactions", transactionsData{Page: 1, TotalPages: 1}, &flash)
		return
	}

	data := transactionsData{Transactions: txs}
	data.Page, data.TotalPages, data.PageTransactions = paginate(txs, r.URL.Query().Get("page"), transactionsPageSize)

	if id := r.URL.Query().Get("view"); id != "" {
		for i := range txs {
			if txs[i].ID == id {
				data.Selected = &txs[i]
				break
			}
		}
	}

	h.render(w, r, "transactions", "Transactions", data, nil)
}
