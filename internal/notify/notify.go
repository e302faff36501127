// internal/notify/notify.go
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// Emitter appends notifications to the store's feed. The feed invariant is
// most-recent-first: every emit prepends and never touches prior entries.
type Emitter struct {
	st  *store.Store
	now func() time.Time
}

func New(st *store.Store) *Emitter {
	return &Emitter{st: st, now: time.Now}
}

// NewWithClock is for tests that need deterministic timestamps.
func NewWithClock(st *store.Store, now func() time.Time) *Emitter {
	return &Emitter{st: st, now: now}
}

// Emit builds a notification and prepends it to the feed.
func (e *Emitter) Emit(kind models.NotificationKind, title, message, linkID, actorInitials string) models.Notification {
	n := models.Notification{
		ID:           "notif-" + uuid.NewString(),
		Type:         kind,
		Title:        title,
		Message:      message,
		LinkID:       linkID,
		UserInitials: actorInitials,
		Date:         e.now(),
		Read:         false,
	}
	e.st.Update(func(d *store.Data) {
		next := make([]models.Notification, 0, len(d.Notifications)+1)
		next = append(next, n)
		next = append(next, d.Notifications...)
		d.Notifications = next
	})
	return n
}

// MarkRead flips one notification's read flag, or every notification's when
// id is empty. An unknown id is a no-op, not an error.
func (e *Emitter) MarkRead(id string) {
	e.st.Update(func(d *store.Data) {
		next := make([]models.Notification, len(d.Notifications))
		for i, n := range d.Notifications {
			if id == "" || n.ID == id {
				n.Read = true
			}
			next[i] = n
		}
		d.Notifications = next
	})
}
