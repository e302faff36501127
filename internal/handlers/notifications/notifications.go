// internal/handlers/notifications/notifications.go
package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DadosMB/crm-infra/internal/access"
	"github.com/DadosMB/crm-infra/internal/auth"
	"github.com/DadosMB/crm-infra/internal/httpx"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/service"
	"github.com/DadosMB/crm-infra/internal/store"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GET /notifications returns the feed most-recent-first; finance entries
// are hidden from non-admins.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var out []models.Notification
	h.svc.Store().View(func(d store.Data) {
		out = access.VisibleNotifications(d.Notifications, actor)
	})
	httpx.JSON(w, http.StatusOK, out)
}

// PUT /notifications/read marks everything visible to the actor as read.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.MarkNotificationsRead(actor, ""); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PUT /notifications/{notificationID}/read marks one entry; unknown ids
// are a no-op.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.MarkNotificationsRead(actor, chi.URLParam(r, "notificationID")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
