package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/paklite/bankportal/internal/session"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// RequireSession gates protected routes. Anonymous requests are flashed and
// redirected to the login page; expired tokens force a global logout with
// distinct messaging. The loaded session goes into the request context.
func RequireSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Get(w, r)
			if err != nil {
				if errors.Is(err, session.ErrExpired) {
					session.SetFlash(w, session.Error("Session expired — please log in again."))
				} else {
					session.SetFlash(w, session.Error("Please login first"))
				}
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session placed in the context by RequireSession,
// or nil outside the protected route group.
func SessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey).(*session.Session)
	return sess
}
