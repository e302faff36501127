package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

// seedNotifications emits one finance and one regular entry and returns
// them (finance first, feed order).
func seedNotifications(t *testing.T, s *Service) (finance, regular models.Notification) {
	t.Helper()
	regular = s.Notifier().Emit(models.NotifNewOS, "Nova Ordem de Serviço", "x", "OS-25001", "JO")
	finance = s.Notifier().Emit(models.NotifFinance, "Novo Gasto Registrado", "y", "FIN-001", "AD")
	return finance, regular
}

func TestMarkNotificationsReadGuestRejected(t *testing.T) {
	s := newTestService(t)
	_, regular := seedNotifications(t, s)

	err := s.MarkNotificationsRead(guest, "")
	assert.ErrorIs(t, err, models.ErrPermission)

	err = s.MarkNotificationsRead(nil, regular.ID)
	assert.ErrorIs(t, err, models.ErrPermission)

	// nothing was flipped
	s.Store().View(func(d store.Data) {
		for _, n := range d.Notifications {
			assert.False(t, n.Read)
		}
	})
}

func TestMarkNotificationsReadNonAdminSkipsFinance(t *testing.T) {
	s := newTestService(t)
	finance, regular := seedNotifications(t, s)

	require.NoError(t, s.MarkNotificationsRead(joao, ""))

	s.Store().View(func(d store.Data) {
		for _, n := range d.Notifications {
			switch n.ID {
			case finance.ID:
				assert.False(t, n.Read)
			case regular.ID:
				assert.True(t, n.Read)
			}
		}
	})

	// addressing the finance entry directly is a no-op too
	require.NoError(t, s.MarkNotificationsRead(joao, finance.ID))
	s.Store().View(func(d store.Data) {
		n, _ := findNotification(d, finance.ID)
		assert.False(t, n.Read)
	})
}

func TestMarkNotificationsReadAdmin(t *testing.T) {
	s := newTestService(t)
	finance, regular := seedNotifications(t, s)

	require.NoError(t, s.MarkNotificationsRead(admin, regular.ID))
	s.Store().View(func(d store.Data) {
		n, _ := findNotification(d, regular.ID)
		assert.True(t, n.Read)
		n, _ = findNotification(d, finance.ID)
		assert.False(t, n.Read)
	})

	require.NoError(t, s.MarkNotificationsRead(admin, ""))
	s.Store().View(func(d store.Data) {
		for _, n := range d.Notifications {
			assert.True(t, n.Read)
		}
	})
}

func TestMarkNotificationsReadUnknownIDIsNoop(t *testing.T) {
	s := newTestService(t)
	seedNotifications(t, s)

	require.NoError(t, s.MarkNotificationsRead(admin, "notif-missing"))
	s.Store().View(func(d store.Data) {
		for _, n := range d.Notifications {
			assert.False(t, n.Read)
		}
	})
}

func findNotification(d store.Data, id string) (models.Notification, bool) {
	for _, n := range d.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return models.Notification{}, false
}
