package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/notify"
	"github.com/DadosMB/crm-infra/internal/store"
)

var testClock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

var (
	admin = &models.User{ID: "usr-admin", Name: "Ana Admin", Initials: "AN", IsAdmin: true}
	joao  = &models.User{ID: "usr-joao", Name: "João Silva", Initials: "JO"}
	maria = &models.User{ID: "usr-maria", Name: "Maria Souza", Initials: "MA"}
	guest = &models.User{ID: "usr-guest", Name: "Visitante", IsGuest: true}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.New()
	st.Load(store.Data{Users: []models.User{*admin, *joao, *maria, *guest}})
	em := notify.NewWithClock(st, func() time.Time { return testClock })
	return NewWithClock(st, em, func() time.Time { return testClock })
}

func notifications(t *testing.T, s *Service) []models.Notification {
	t.Helper()
	var out []models.Notification
	s.Store().View(func(d store.Data) { out = d.Notifications })
	return out
}

func TestCreateOrder(t *testing.T) {
	s := newTestService(t)

	got, err := s.CreateOrder(joao, CreateOrderInput{
		Title: "Trocar lâmpada da recepção",
		Unit:  models.UnitAldeota,
	})
	require.NoError(t, err)

	assert.Equal(t, "OS-25001", got.ID)
	assert.Equal(t, models.OSAberta, got.Status)
	assert.Equal(t, models.PriorityMedia, got.Priority)
	assert.Equal(t, models.TypeOutros, got.Type)
	assert.Equal(t, joao.ID, got.OwnerID)
	assert.Equal(t, testClock, got.DateOpened)

	feed := notifications(t, s)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotifNewOS, feed[0].Type)
	assert.Equal(t, got.ID, feed[0].LinkID)
	assert.Equal(t, "JO", feed[0].UserInitials)
}

func TestCreateOrderForcesOwnership(t *testing.T) {
	s := newTestService(t)

	// a regular user cannot open an order on someone else's behalf
	got, err := s.CreateOrder(joao, CreateOrderInput{
		Title:   "AC pingando",
		Unit:    models.UnitCambeba,
		OwnerID: maria.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, joao.ID, got.OwnerID)

	// an admin can
	got, err = s.CreateOrder(admin, CreateOrderInput{
		Title:   "Pintura da fachada",
		Unit:    models.UnitAldeota,
		OwnerID: maria.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, maria.ID, got.OwnerID)
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateOrder(joao, CreateOrderInput{Unit: models.UnitAldeota})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.CreateOrder(joao, CreateOrderInput{Title: "Sem unidade"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.CreateOrder(guest, CreateOrderInput{Title: "x", Unit: models.UnitAldeota})
	assert.ErrorIs(t, err, models.ErrPermission)

	_, err = s.CreateOrder(nil, CreateOrderInput{Title: "x", Unit: models.UnitAldeota})
	assert.ErrorIs(t, err, models.ErrPermission)
}

func TestCreateOrderPrepends(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateOrder(joao, CreateOrderInput{Title: "Primeira", Unit: models.UnitAldeota})
	require.NoError(t, err)
	second, err := s.CreateOrder(joao, CreateOrderInput{Title: "Segunda", Unit: models.UnitAldeota})
	require.NoError(t, err)

	s.Store().View(func(d store.Data) {
		require.Len(t, d.Orders, 2)
		assert.Equal(t, second.ID, d.Orders[0].ID)
	})
}

func TestUpdateOrderStatusChange(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateOrder(joao, CreateOrderInput{Title: "Vazamento", Unit: models.UnitEusebio})
	require.NoError(t, err)

	st := models.OSEmAndamento
	got, err := s.UpdateOrder(joao, created.ID, UpdateOrderInput{Status: &st})
	require.NoError(t, err)

	assert.Equal(t, models.OSEmAndamento, got.Status)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Status alterado para: Em Andamento (João Silva)", got.History[0].Message)
	assert.Nil(t, got.DateClosed)
}

func TestUpdateOrderCompletion(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateOrder(joao, CreateOrderInput{Title: "Pintura", Unit: models.UnitAldeota})
	require.NoError(t, err)

	st := models.OSConcluida
	got, err := s.UpdateOrder(joao, created.ID, UpdateOrderInput{Status: &st})
	require.NoError(t, err)

	require.NotNil(t, got.DateClosed)
	assert.Equal(t, testClock, *got.DateClosed)

	feed := notifications(t, s)
	require.Len(t, feed, 2)
	assert.Equal(t, models.NotifCompletedOS, feed[0].Type)
	assert.Equal(t, created.ID, feed[0].LinkID)
}

func TestUpdateOrderSameStatusNoHistory(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateOrder(joao, CreateOrderInput{Title: "Troca de filtro", Unit: models.UnitFabrica})
	require.NoError(t, err)

	st := models.OSAberta
	got, err := s.UpdateOrder(joao, created.ID, UpdateOrderInput{Status: &st})
	require.NoError(t, err)
	assert.Empty(t, got.History)
}

func TestUpdateOrderPermissions(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateOrder(joao, CreateOrderInput{Title: "Portão", Unit: models.UnitAldeota})
	require.NoError(t, err)

	title := "Portão da garagem"
	_, err = s.UpdateOrder(maria, created.ID, UpdateOrderInput{Title: &title})
	assert.ErrorIs(t, err, models.ErrPermission)

	// delegation is admin-only
	owner := maria.ID
	_, err = s.UpdateOrder(joao, created.ID, UpdateOrderInput{OwnerID: &owner})
	assert.ErrorIs(t, err, models.ErrPermission)

	got, err := s.UpdateOrder(admin, created.ID, UpdateOrderInput{OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, maria.ID, got.OwnerID)

	_, err = s.UpdateOrder(joao, "OS-99999", UpdateOrderInput{Title: &title})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddOrderLog(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateOrder(joao, CreateOrderInput{Title: "Infiltração", Unit: models.UnitCambeba})
	require.NoError(t, err)

	got, err := s.AddOrderLog(joao, created.ID, "Técnico agendado para sexta")
	require.NoError(t, err)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Técnico agendado para sexta", got.History[0].Message)

	// newest entry goes first
	got, err = s.AddOrderLog(joao, created.ID, "Técnico remarcado")
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.Equal(t, "Técnico remarcado", got.History[0].Message)

	_, err = s.AddOrderLog(joao, created.ID, "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestArchiveOrderIsOneWay(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateOrder(joao, CreateOrderInput{Title: "Obra concluída", Unit: models.UnitAldeota})
	require.NoError(t, err)

	got, err := s.ArchiveOrder(joao, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)
	require.NotEmpty(t, got.History)
	assert.Equal(t, "OS Documentada e Arquivada por João Silva", got.History[0].Message)

	// every further mutation is rejected
	title := "novo título"
	_, err = s.UpdateOrder(joao, created.ID, UpdateOrderInput{Title: &title})
	assert.ErrorIs(t, err, models.ErrArchived)

	_, err = s.AddOrderLog(admin, created.ID, "tentativa")
	assert.ErrorIs(t, err, models.ErrArchived)

	_, err = s.ArchiveOrder(admin, created.ID)
	assert.ErrorIs(t, err, models.ErrArchived)
}
