// Package session keeps the authentication state of the portal: an opaque
// backend token plus a minimal user profile, persisted server-side under a
// cookie-carried session ID so the session survives a page reload. It is the
// single read/write boundary for credentials; pages never touch storage
// directly.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/paklite/bankportal/internal/bankclient"
)

var (
	// ErrNoSession is returned when the request carries no valid session.
	ErrNoSession = errors.New("session: no session")
	// ErrExpired is returned when the stored backend token has expired.
	// The session record is destroyed before this is returned.
	ErrExpired = errors.New("session: token expired")
)

// Session holds the authenticated state for one user.
type Session struct {
	ID    string          `json:"-"`
	Token string          `json:"token"`
	User  bankclient.User `json:"user"`
}

// Manager creates, loads and destroys sessions. Cookie values are
// HMAC-signed so a forged session ID is rejected before hitting the store.
type Manager struct {
	store      Store
	cookieName string
	hashKey    []byte
	ttl        time.Duration
}

func NewManager(store Store, cookieName string, hashKey []byte, ttl time.Duration) *Manager {
	return &Manager{store: store, cookieName: cookieName, hashKey: hashKey, ttl: ttl}
}

// Create persists a fresh session and sets the signed cookie. This is the
// anonymous -> authenticated transition.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, token string, user bankclient.User) error {
	sess := Session{Token: token, User: user}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	if err := m.store.Save(r.Context(), id, data, m.ttl); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    m.sign(id),
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get loads the session for the request. An expired backend token destroys
// the session and reports ErrExpired, forcing a global logout.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	id, ok := m.verify(cookie.Value)
	if !ok {
		m.clearCookie(w)
		return nil, ErrNoSession
	}

	data, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[SESSION] Load failed for %s: %v", id, err)
		}
		m.clearCookie(w)
		return nil, ErrNoSession
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		m.store.Delete(r.Context(), id)
		m.clearCookie(w)
		return nil, ErrNoSession
	}
	sess.ID = id

	if tokenExpired(sess.Token) {
		log.Printf("[SESSION] Token expired for session %s, forcing logout", id)
		m.store.Delete(r.Context(), id)
		m.clearCookie(w)
		return nil, ErrExpired
	}
	return &sess, nil
}

// Destroy clears persisted credentials and the cookie. This is the
// authenticated -> anonymous transition.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if id, ok := m.verify(cookie.Value); ok {
			if err := m.store.Delete(r.Context(), id); err != nil {
				log.Printf("[SESSION] Delete failed for %s: %v", id, err)
			}
		}
	}
	m.clearCookie(w)
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.hashKey)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, m.hashKey)
	mac.Write([]byte(id))
	if !hmac.Equal(want, mac.Sum(nil)) {
		return "", false
	}
	return id, true
}

// tokenExpired inspects the backend JWT's exp claim without verifying the
// signature; the portal holds no signing key. Tokens that are not JWTs, or
// carry no exp claim, are treated as unexpired and left to the backend's
// 401 policy.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
