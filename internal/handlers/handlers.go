// Package handlers wires the portal's pages. Every page fetch is scoped to
// one request; nothing fetched here outlives the response.
package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paklite/bankportal/internal/bankclient"
	"github.com/paklite/bankportal/internal/middleware"
	"github.com/paklite/bankportal/internal/session"
	"github.com/paklite/bankportal/internal/web"
)

type Handler struct {
	client   *bankclient.Client
	sessions *session.Manager
	renderer *web.Renderer
}

func New(client *bankclient.Client, sessions *session.Manager, renderer *web.Renderer) *Handler {
	return &Handler{client: client, sessions: sessions, renderer: renderer}
}

// Routes returns the portal's route map. Everything under /dashboard is
// gated behind the session.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Home)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", h.ShowRegister)
		r.Post("/register", h.Register)
		r.Get("/login", h.ShowLogin)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions))
		r.Get("/", h.Overview)
		r.Get("/createaccount", h.ShowCreateAccount)
		r.Post("/createaccount", h.CreateAccount)
		r.Get("/accountlist", h.AccountList)
		r.Post("/accountlist/{accountID}/deposit", h.Deposit)
		r.Post("/accountlist/{accountID}/withdraw", h.Withdraw)
		r.Post("/accountlist/{accountID}/delete", h.DeleteAccount)
		r.Get("/transactions", h.Transactions)
	})

	return r
}

// Home renders the public landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home", "Welcome", nil, nil)
}

// render builds the page envelope and writes it out. When no inline flash
// is given, the pending cookie flash is consumed.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any, flash *session.Flash) {
	sess := middleware.SessionFrom(r.Context())
	if sess == nil {
		sess, _ = h.sessions.Get(w, r)
	}
	if flash == nil {
		flash = session.PopFlash(w, r)
	}

	pageData := web.Page{Title: title, Data: data, Flash: flash}
	if sess != nil {
		pageData.Authenticated = true
		pageData.UserName = strings.TrimSpace(sess.User.FirstName + " " + sess.User.LastName)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, pageData); err != nil {
		log.Printf("[WEB] Render %s failed: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// unauthorized is the single 401 policy: any backend rejection of the token
// clears the session and sends the user back to login.
func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Backend rejected token, clearing session")
	h.sessions.Destroy(w, r)
	redirectFlash(w, r, "/auth/login", session.Error("Unauthorized — please log in again."))
}

func redirectFlash(w http.ResponseWriter, r *http.Request, target string, f session.Flash) {
	session.SetFlash(w, f)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// errorMessage surfaces the server-supplied message verbatim when one came
// back, otherwise the flow's fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *bankclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// paginate slices items into a 1-based page window. Pages are a UI concern
// only; the backend calls are unpaginated.
func paginate[T any](items []T, rawPage string, size int) (page, totalPages int, window []T) {
	totalPages = (len(items) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	page = 1
	if n, err := strconv.Atoi(rawPage); err == nil && n > 0 {
		page = n
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return page, totalPages, items[start:end]
}
