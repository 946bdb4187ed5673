package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "bank_flash"

// Flash is a one-shot notification rendered on the next page load, the
// server-side equivalent of a transient toast.
type Flash struct {
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
}

func Success(message string) Flash {
	return Flash{Level: "success", Message: message}
}

func Error(message string) Flash {
	return Flash{Level: "error", Message: message}
}

// SetFlash queues a flash for the next request. Flashes ride a cookie so
// anonymous flows (login, register) can toast without a session record.
func SetFlash(w http.ResponseWriter, f Flash) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash consumes the pending flash, if any, and clears the cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}
