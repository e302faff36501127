// internal/handlers/suppliers/suppliers.go
package suppliers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

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

// GET /suppliers lists suppliers; readable by every authenticated actor.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var out []models.Supplier
	h.svc.Store().View(func(d store.Data) {
		out = d.Suppliers
	})
	httpx.JSON(w, http.StatusOK, out)
}

// POST /suppliers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var s models.Supplier
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.AddSupplier(actor, s)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// PUT /suppliers/{supplierID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var s models.Supplier
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.ID = chi.URLParam(r, "supplierID")

	updated, err := h.svc.UpdateSupplier(actor, s)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// DELETE /suppliers/{supplierID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteSupplier(actor, chi.URLParam(r, "supplierID")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
