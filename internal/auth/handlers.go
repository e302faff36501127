// internal/auth/handlers.go
package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/DadosMB/crm-infra/internal/httpx"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// LoginHandler authenticates a username/password pair against the user
// registry and sets the session cookie.
// POST /auth/login { "username": "...", "password": "..." }
func LoginHandler(st *store.Store, ttl time.Duration) http.HandlerFunc {
	type bodyT struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, req *http.Request) {
		var b bodyT
		if err := json.NewDecoder(req.Body).Decode(&b); err != nil || b.Username == "" || b.Password == "" {
			httpx.Error(w, http.StatusBadRequest, "username and password are required")
			return
		}

		var user models.User
		found := false
		st.View(func(d store.Data) {
			user, found = d.UserByUsername(b.Username)
		})
		if !found || !CheckPassword(user.PasswordHash, b.Password) {
			// Same answer for unknown user and bad password.
			httpx.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		SetSessionCookie(w, Session{UserID: user.ID, Expiry: time.Now().Add(ttl)})
		slog.Info("login", "user_id", user.ID, "admin", user.IsAdmin, "guest", user.IsGuest)
		httpx.JSON(w, http.StatusOK, user)
	}
}

// LogoutHandler expires the session cookie. Notifications and all other
// shared collections are untouched; logout is a client-session event only.
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ClearSessionCookie(w)
		httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// MeHandler returns the authenticated actor.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		u, ok := UserFromContext(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		httpx.JSON(w, http.StatusOK, u)
	}
}
