// internal/handlers/assets/assets.go
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DadosMB/crm-infra/internal/assets"
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

// GET /assets?unit=&category=&status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := assets.ExportFilter{}
	if v := q.Get("unit"); v != "" {
		f.Units = []string{v}
	}
	if v := q.Get("status"); v != "" {
		f.Statuses = []string{v}
	}
	if v := q.Get("category"); v != "" {
		f.Categories = []string{v}
	}

	var out []models.Asset
	h.svc.Store().View(func(d store.Data) {
		out = assets.Filter(d.Assets, f)
	})
	httpx.JSON(w, http.StatusOK, out)
}

// POST /assets
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var a models.Asset
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&a); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.CreateAsset(actor, a)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// PUT /assets/{assetID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var a models.Asset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = chi.URLParam(r, "assetID")

	updated, err := h.svc.UpdateAsset(actor, a)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// DELETE /assets/{assetID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeleteAsset(actor, chi.URLParam(r, "assetID")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// POST /assets/import accepts a raw CSV body and appends one batch.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	count, err := h.svc.ImportAssets(actor, string(body))
	if errors.Is(err, assets.ErrNoValidRows) {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"imported": count})
}

// GET /assets/export.csv?start=&end=&units=&statuses=&categories=
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)

	var out string
	h.svc.Store().View(func(d store.Data) {
		out = assets.ToCSV(assets.Filter(d.Assets, f))
	})

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", assets.ExportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// GET /assets/report.html renders the printable report for a browser
// print dialog.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)

	var (
		html string
		err  error
	)
	h.svc.Store().View(func(d store.Data) {
		html, err = assets.ToPrintableReport(assets.Filter(d.Assets, f), f, time.Now())
	})
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// POST /assets/maintenance
func (h *Handler) SendToMaintenance(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in service.MaintenanceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.SendToMaintenance(actor, in)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

// GET /assets/maintenance
func (h *Handler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	var out []models.MaintenanceRecord
	h.svc.Store().View(func(d store.Data) {
		out = d.Maintenance
	})
	httpx.JSON(w, http.StatusOK, out)
}

// PUT /assets/maintenance/{recordID}/return
func (h *Handler) ReturnFromMaintenance(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		DateReturned *time.Time `json:"dateReturned,omitempty"`
	}
	// Body is optional; absent means "returned now".
	_ = json.NewDecoder(r.Body).Decode(&body)

	rec, err := h.svc.ReturnFromMaintenance(actor, chi.URLParam(r, "recordID"), body.DateReturned)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// GET /assets/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	var out []string
	h.svc.Store().View(func(d store.Data) {
		out = d.Categories
	})
	httpx.JSON(w, http.StatusOK, out)
}

// POST /assets/categories
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddCategory(actor, body.Name); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"name": body.Name})
}

// DELETE /assets/categories/{name}
func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.RemoveCategory(actor, chi.URLParam(r, "name")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func filterFromQuery(r *http.Request) assets.ExportFilter {
	q := r.URL.Query()
	f := assets.ExportFilter{
		Units:      q["units"],
		Statuses:   q["statuses"],
		Categories: q["categories"],
	}
	if v := q.Get("start"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.StartDate = &t
		}
	}
	if v := q.Get("end"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.EndDate = &t
		}
	}
	return f
}
