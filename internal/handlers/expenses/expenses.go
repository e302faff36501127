// internal/handlers/expenses/expenses.go
package expenses

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// GET /expenses?unit=&month=&year=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var visible []models.Expense
	h.svc.Store().View(func(d store.Data) {
		visible = access.VisibleExpenses(d.Expenses, access.VisibleOrders(d.Orders, actor), actor)
	})

	q := r.URL.Query()
	unit := q.Get("unit")
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	out := make([]models.Expense, 0, len(visible))
	for _, e := range visible {
		if unit != "" && string(e.Unit) != unit {
			continue
		}
		if month != 0 && int(e.Date.Month()) != month {
			continue
		}
		if year != 0 && e.Date.Year() != year {
			continue
		}
		out = append(out, e)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// POST /expenses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var e models.Expense
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&e); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.AddExpense(actor, e)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// PUT /expenses/{expenseID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var e models.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.ID = chi.URLParam(r, "expenseID")

	updated, err := h.svc.UpdateExpense(actor, e)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// PUT /expenses (batch payment-schedule edits)
func (h *Handler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var updates []models.Expense
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.BatchUpdateExpenses(actor, updates); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"updated": len(updates)})
}

// DELETE /expenses/{expenseID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteExpense(actor, chi.URLParam(r, "expenseID")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
