// internal/handlers/orders/orders.go
package orders

import (
	"encoding/json"
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

// GET /orders?unit=&status=&archived=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var orders []models.ServiceOrder
	h.svc.Store().View(func(d store.Data) {
		orders = access.VisibleOrders(d.Orders, actor)
	})

	q := r.URL.Query()
	unit := q.Get("unit")
	status := q.Get("status")
	archived := q.Get("archived")

	out := make([]models.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if unit != "" && string(o.Unit) != unit {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		if archived == "true" && !o.Archived {
			continue
		}
		if archived == "false" && o.Archived {
			continue
		}
		out = append(out, o)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// GET /orders/{orderID}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "orderID")

	var (
		order models.ServiceOrder
		found bool
	)
	h.svc.Store().View(func(d store.Data) {
		for _, o := range access.VisibleOrders(d.Orders, actor) {
			if o.ID == id {
				order, found = o, true
				return
			}
		}
	})
	if !found {
		httpx.Error(w, http.StatusNotFound, "order not found")
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// POST /orders
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in service.CreateOrderInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	order, err := h.svc.CreateOrder(actor, in)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// PUT /orders/{orderID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in service.UpdateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.UpdateOrder(actor, chi.URLParam(r, "orderID"), in)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// POST /orders/{orderID}/log
func (h *Handler) AddLog(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.AddOrderLog(actor, chi.URLParam(r, "orderID"), body.Message)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// PUT /orders/{orderID}/archive
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.svc.ArchiveOrder(actor, chi.URLParam(r, "orderID"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
