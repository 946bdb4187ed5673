package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/paklite/bankportal/internal/bankclient"
)

func testTransactions(n int) []bankclient.Transaction {
	txs := make([]bankclient.Transaction, n)
	for i := range txs {
		kind := "deposit"
		if i%2 == 1 {
			kind = "withdraw"
		}
		txs[i] = bankclient.Transaction{
			ID:            fmt.Sprintf("t%d", i+1),
			AccountID:     "a1",
			AccountNumber: "123456789",
			Type:          kind,
			Amount:        decimal.NewFromInt(int64(100 * (i + 1))),
			Date:          time.Date(2024, 5, i+1, 10, 30, 0, 0, time.UTC),
		}
	}
	return txs
}

func transactionsResponse(t *testing.T, txs []bankclient.Transaction) http.HandlerFunc {
	return jsonResponse(t, map[string]any{"transactions": txs})
}

func TestTransactions(t *testing.T) {
	t.Run("empty state", func(t *testing.T) {
		h := newHarness(t, transactionsResponse(t, []bankclient.Transaction{}))

		rec := h.get(t, "/dashboard/transactions", h.login(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No transactions have been made yet.")
	})

	t.Run("first page holds ten entries", func(t *testing.T) {
		h := newHarness(t, transactionsResponse(t, testTransactions(12)))

		rec := h.get(t, "/dashboard/transactions", h.login(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `?view=t1"`)
		assert.NotContains(t, rec.Body.String(), `?view=t11"`)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		h := newHarness(t, transactionsResponse(t, testTransactions(12)))

		rec := h.get(t, "/dashboard/transactions?page=2", h.login(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `?view=t11"`)
		assert.NotContains(t, rec.Body.String(), `?view=t5"`)
	})

	t.Run("view parameter opens the detail modal", func(t *testing.T) {
		h := newHarness(t, transactionsResponse(t, testTransactions(12)))

		rec := h.get(t, "/dashboard/transactions?view=t5", h.login(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Transaction Details")
		assert.Contains(t, rec.Body.String(), "Sunday, May 5, 2024 10:30 AM")
	})

	t.Run("fetch failure renders inline error", func(t *testing.T) {
		h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		rec := h.get(t, "/dashboard/transactions", h.login(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to fetch transactions")
	})
}
