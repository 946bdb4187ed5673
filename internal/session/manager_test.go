package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paklite/bankportal/internal/bankclient"
)

func newTestManager() *Manager {
	return NewManager(NewMemoryStore(), "bank_session", []byte("test-hash-key"), time.Hour)
}

func createSession(t *testing.T, m *Manager, token string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.Create(rec, req, token, bankclient.User{FirstName: "John", Email: "john@example.com"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager()
	cookie := createSession(t, m, "opaque-token")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)

	sess, err := m.Get(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", sess.Token)
	assert.Equal(t, "John", sess.User.FirstName)
	assert.NotEmpty(t, sess.ID)
}

func TestManager_Get(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		m := newTestManager()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := m.Get(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("tampered cookie is rejected", func(t *testing.T) {
		m := newTestManager()
		cookie := createSession(t, m, "opaque-token")
		cookie.Value = "forged-id." + cookie.Value[len(cookie.Value)-10:]

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)

		_, err := m.Get(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired jwt forces logout", func(t *testing.T) {
		m := newTestManager()
		cookie := createSession(t, m, signedToken(t, time.Now().Add(-time.Minute)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)

		_, err := m.Get(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, ErrExpired)

		// The record is destroyed; the same cookie is now anonymous.
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		_, err = m.Get(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("unexpired jwt passes", func(t *testing.T) {
		m := newTestManager()
		cookie := createSession(t, m, signedToken(t, time.Now().Add(time.Hour)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)

		_, err := m.Get(httptest.NewRecorder(), req)
		assert.NoError(t, err)
	})
}

func TestManager_Destroy(t *testing.T) {
	m := newTestManager()
	cookie := createSession(t, m, "opaque-token")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	m.Destroy(rec, req)

	// Cookie cleared on the response.
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	// Store record gone.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	_, err := m.Get(httptest.NewRecorder(), req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFlash(t *testing.T) {
	t.Run("set then pop", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SetFlash(rec, Error("Enter a valid amount"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		popRec := httptest.NewRecorder()
		flash := PopFlash(popRec, req)
		require.NotNil(t, flash)
		assert.Equal(t, "error", flash.Level)
		assert.Equal(t, "Enter a valid amount", flash.Message)

		// Pop clears the cookie.
		cookies := popRec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("no flash pending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Nil(t, PopFlash(httptest.NewRecorder(), req))
	})
}
