// internal/service/orders.go
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/store"
)

type CreateOrderInput struct {
	Title        string            `json:"title"`
	Unit         models.Unit       `json:"unit"`
	Description  string            `json:"description"`
	Type         models.OSType     `json:"type"`
	Priority     models.OSPriority `json:"priority"`
	OwnerID      string            `json:"ownerId"`
	DateForecast *time.Time        `json:"dateForecast,omitempty"`
}

// CreateOrder opens a new service order. Non-admin actors always own what
// they create: a foreign OwnerID in the input is overridden, not rejected.
func (s *Service) CreateOrder(actor *models.User, in CreateOrderInput) (models.ServiceOrder, error) {
	if err := canWrite(actor); err != nil {
		return models.ServiceOrder{}, err
	}
	if in.Title == "" {
		return models.ServiceOrder{}, validationErr("title is required")
	}
	if in.Unit == "" {
		return models.ServiceOrder{}, validationErr("unit is required")
	}

	ownerID := in.OwnerID
	if !actor.IsAdmin || ownerID == "" {
		ownerID = actor.ID
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedia
	}
	if in.Type == "" {
		in.Type = models.TypeOutros
	}

	now := s.now()
	var order models.ServiceOrder
	s.st.Update(func(d *store.Data) {
		order = models.ServiceOrder{
			ID:           d.NextOrderID(now),
			Title:        in.Title,
			Unit:         in.Unit,
			Description:  in.Description,
			Status:       models.OSAberta,
			Type:         in.Type,
			Priority:     in.Priority,
			OwnerID:      ownerID,
			DateOpened:   now,
			DateForecast: in.DateForecast,
			History:      []models.HistoryLog{},
		}
		next := make([]models.ServiceOrder, 0, len(d.Orders)+1)
		next = append(next, order)
		next = append(next, d.Orders...)
		d.Orders = next
	})

	s.emitter.Emit(models.NotifNewOS, "Nova Ordem de Serviço",
		fmt.Sprintf("%s criou a %s em %s.", actor.Name, order.ID, order.Unit),
		order.ID, actor.Initials)
	slog.Info("order created", "id", order.ID, "owner", order.OwnerID, "unit", order.Unit)
	return order, nil
}

type UpdateOrderInput struct {
	Title        *string            `json:"title,omitempty"`
	Unit         *models.Unit       `json:"unit,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Status       *models.OSStatus   `json:"status,omitempty"`
	Type         *models.OSType     `json:"type,omitempty"`
	Priority     *models.OSPriority `json:"priority,omitempty"`
	OwnerID      *string            `json:"ownerId,omitempty"`
	DateForecast *time.Time         `json:"dateForecast,omitempty"`
}

// UpdateOrder mutates an order in place in the collection (by replacement).
// Archived orders are read-only. A status change appends a history entry
// and, on reaching Concluída, closes the order and emits a notification.
// Delegation (changing the owner) is admin-only.
func (s *Service) UpdateOrder(actor *models.User, id string, in UpdateOrderInput) (models.ServiceOrder, error) {
	if err := canWrite(actor); err != nil {
		return models.ServiceOrder{}, err
	}

	var (
		updated   models.ServiceOrder
		opErr     error
		completed bool
	)
	now := s.now()
	s.st.Update(func(d *store.Data) {
		cur, ok := d.OrderByID(id)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if cur.Archived {
			opErr = models.ErrArchived
			return
		}
		if !actor.IsAdmin && cur.OwnerID != actor.ID {
			opErr = models.ErrPermission
			return
		}
		if in.OwnerID != nil && *in.OwnerID != cur.OwnerID && !actor.IsAdmin {
			opErr = fmt.Errorf("%w: only admins can delegate orders", models.ErrPermission)
			return
		}

		next := cur
		if in.Title != nil {
			next.Title = *in.Title
		}
		if in.Unit != nil {
			next.Unit = *in.Unit
		}
		if in.Description != nil {
			next.Description = *in.Description
		}
		if in.Type != nil {
			next.Type = *in.Type
		}
		if in.Priority != nil {
			next.Priority = *in.Priority
		}
		if in.OwnerID != nil {
			next.OwnerID = *in.OwnerID
		}
		if in.DateForecast != nil {
			next.DateForecast = in.DateForecast
		}
		if in.Status != nil && *in.Status != cur.Status {
			next.Status = *in.Status
			next.History = prependLog(next.History, now,
				fmt.Sprintf("Status alterado para: %s (%s)", next.Status, actor.Name))
			if next.Status == models.OSConcluida {
				t := now
				next.DateClosed = &t
				completed = true
			}
		}

		d.Orders = replaceOrder(d.Orders, next)
		updated = next
	})
	if opErr != nil {
		return models.ServiceOrder{}, opErr
	}

	if completed {
		s.emitter.Emit(models.NotifCompletedOS, "OS Concluída",
			fmt.Sprintf("%s concluiu a %s.", actor.Name, updated.ID),
			updated.ID, actor.Initials)
	}
	return updated, nil
}

// AddOrderLog appends a free-text history entry to an order.
func (s *Service) AddOrderLog(actor *models.User, id, message string) (models.ServiceOrder, error) {
	if err := canWrite(actor); err != nil {
		return models.ServiceOrder{}, err
	}
	if message == "" {
		return models.ServiceOrder{}, validationErr("message is required")
	}

	var (
		updated models.ServiceOrder
		opErr   error
	)
	now := s.now()
	s.st.Update(func(d *store.Data) {
		cur, ok := d.OrderByID(id)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if cur.Archived {
			opErr = models.ErrArchived
			return
		}
		if !actor.IsAdmin && cur.OwnerID != actor.ID {
			opErr = models.ErrPermission
			return
		}
		cur.History = prependLog(cur.History, now, message)
		d.Orders = replaceOrder(d.Orders, cur)
		updated = cur
	})
	if opErr != nil {
		return models.ServiceOrder{}, opErr
	}
	return updated, nil
}

// ArchiveOrder flags an order as documented and archived. One-way: an
// archived order rejects every further mutation including re-archival.
func (s *Service) ArchiveOrder(actor *models.User, id string) (models.ServiceOrder, error) {
	if err := canWrite(actor); err != nil {
		return models.ServiceOrder{}, err
	}

	var (
		updated models.ServiceOrder
		opErr   error
	)
	now := s.now()
	s.st.Update(func(d *store.Data) {
		cur, ok := d.OrderByID(id)
		if !ok {
			opErr = models.ErrNotFound
			return
		}
		if cur.Archived {
			opErr = models.ErrArchived
			return
		}
		if !actor.IsAdmin && cur.OwnerID != actor.ID {
			opErr = models.ErrPermission
			return
		}
		cur.Archived = true
		cur.History = prependLog(cur.History, now,
			fmt.Sprintf("OS Documentada e Arquivada por %s", actor.Name))
		d.Orders = replaceOrder(d.Orders, cur)
		updated = cur
	})
	if opErr != nil {
		return models.ServiceOrder{}, opErr
	}
	slog.Info("order archived", "id", id, "by", actor.ID)
	return updated, nil
}

func prependLog(history []models.HistoryLog, now time.Time, message string) []models.HistoryLog {
	entry := models.HistoryLog{ID: uuid.NewString(), Date: now, Message: message}
	next := make([]models.HistoryLog, 0, len(history)+1)
	next = append(next, entry)
	next = append(next, history...)
	return next
}

func replaceOrder(orders []models.ServiceOrder, o models.ServiceOrder) []models.ServiceOrder {
	next := make([]models.ServiceOrder, len(orders))
	for i, cur := range orders {
		if cur.ID == o.ID {
			next[i] = o
		} else {
			next[i] = cur
		}
	}
	return next
}
