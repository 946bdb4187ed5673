package handlers

import (
	"log"
	"net/http"

	"github.com/paklite/bankportal/internal/bankclient"
	"github.com/paklite/bankportal/internal/forms"
	"github.com/paklite/bankportal/internal/session"
)

// ShowRegister renders the registration form. Authenticated users go
// straight to the dashboard.
func (h *Handler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if sess, _ := h.sessions.Get(w, r); sess != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, "register", "Register", forms.RegisterForm{}, nil)
}

// Register validates the form and creates the user via the backend. A
// locally rejected form never issues a network call.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseRegisterForm(r)
	if msg := form.Validate(); msg != "" {
		flash := session.Error(msg)
		h.render(w, r, "register", "Register", form, &flash)
		return
	}

	resp, err := h.client.Register(r.Context(), bankclient.RegisterRequest{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		log.Printf("[AUTH] Registration failed for %s: %v", form.Email, err)
		flash := session.Error("Something went wrong. Please try again.")
		h.render(w, r, "register", "Register", form, &flash)
		return
	}

	if err := h.sessions.Create(w, r, resp.Token, resp.User); err != nil {
		log.Printf("[AUTH] Session create failed for %s: %v", form.Email, err)
		flash := session.Error("Something went wrong. Please try again.")
		h.render(w, r, "register", "Register", form, &flash)
		return
	}

	log.Printf("[AUTH] Registration successful for %s", form.Email)
	msg := resp.Message
	if msg == "" {
		msg = "Registration successful"
	}
	redirectFlash(w, r, "/dashboard", session.Success(msg))
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if sess, _ := h.sessions.Get(w, r); sess != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, "login", "Login", forms.LoginForm{}, nil)
}

// Login authenticates against the backend and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseLoginForm(r)
	if msg := form.Validate(); msg != "" {
		flash := session.Error(msg)
		h.render(w, r, "login", "Login", form, &flash)
		return
	}

	resp, err := h.client.Login(r.Context(), bankclient.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		log.Printf("[AUTH] Login failed for %s: %v", form.Email, err)
		flash := session.Error("Something went wrong. Please try again.")
		h.render(w, r, "login", "Login", form, &flash)
		return
	}

	if err := h.sessions.Create(w, r, resp.Token, resp.User); err != nil {
		log.Printf("[AUTH] Session create failed for %s: %v", form.Email, err)
		flash := session.Error("Something went wrong. Please try again.")
		h.render(w, r, "login", "Login", form, &flash)
		return
	}

	log.Printf("[AUTH] Login successful for %s", form.Email)
	msg := resp.Message
	if msg == "" {
		msg = "Login successful"
	}
	redirectFlash(w, r, "/dashboard", session.Success(msg))
}

// Logout clears persisted credentials and returns to the landing page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
