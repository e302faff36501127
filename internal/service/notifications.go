// internal/service/notifications.go
package service

import (
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// MarkNotificationsRead flips one notification's read flag, or every
// visible notification's when id is empty. Guests are read-only. Finance
// entries are invisible to non-admins, so for them a finance id is treated
// like an unknown id (no-op) and mark-all leaves finance entries untouched.
func (s *Service) MarkNotificationsRead(actor *models.User, id string) error {
	if err := canWrite(actor); err != nil {
		return err
	}

	if actor.IsAdmin {
		s.emitter.MarkRead(id)
		return nil
	}

	s.st.Update(func(d *store.Data) {
		next := make([]models.Notification, len(d.Notifications))
		for i, n := range d.Notifications {
			if n.Type != models.NotifFinance && (id == "" || n.ID == id) {
				n.Read = true
			}
			next[i] = n
		}
		d.Notifications = next
	})
	return nil
}
