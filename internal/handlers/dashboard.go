package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/paklite/bankportal/internal/bankclient"
	"github.com/paklite/bankportal/internal/middleware"
	"github.com/paklite/bankportal/internal/session"
)

type overviewData struct {
	AccountCount     int
	TransactionCount int
}

// Overview shows the two cardinality counters. The reads run in parallel
// and resolve independently; no ordering between them is assumed.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	var (
		wg       sync.WaitGroup
		accounts []bankclient.Account
		txs      []bankclient.Transaction
		accErr   error
		txErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		accounts, accErr = h.client.GetAccounts(r.Context(), sess.Token)
	}()
	go func() {
		defer wg.Done()
		txs, txErr = h.client.GetTransactions(r.Context(), sess.Token)
	}()
	wg.Wait()

	if errors.Is(accErr, bankclient.ErrUnauthorized) || errors.Is(txErr, bankclient.ErrUnauthorized) {
		h.unauthorized(w, r)
		return
	}

	var flash *session.Flash
	if accErr != nil || txErr != nil {
		log.Printf("[DASHBOARD] Overview fetch failed: accounts=%v transactions=%v", accErr, txErr)
		f := session.Error("Failed to load dashboard data")
		flash = &f
	}

	h.render(w, r, "overview", "Dashboard Overview", overviewData{
		AccountCount:     len(accounts),
		TransactionCount: len(txs),
	}, flash)
}
