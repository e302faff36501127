package middleware

import (
	"net/http"

	"github.com/DadosMB/crm-infra/internal/auth"
	"github.com/DadosMB/crm-infra/internal/httpx"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// RequireAuth authenticates using the session cookie (auth.ReadSession),
// then loads the user by Session.UserID from the store and injects both
// session and user into the context. A 401 here is the signal for clients
// to reset their local session and redirect to login.
func RequireAuth(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s := auth.ReadSession(req)
			if s == nil {
				httpx.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			var user models.User
			found := false
			st.View(func(d store.Data) {
				user, found = d.UserByID(s.UserID)
			})
			if !found {
				httpx.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := auth.WithSession(req.Context(), s)
			ctx = auth.WithUser(ctx, &user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route group to admin actors. Must run after
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		u, ok := auth.UserFromContext(req.Context())
		if !ok || !u.IsAdmin {
			httpx.Error(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next.ServeHTTP(w, req)
	})
}
