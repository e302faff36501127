// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"

	assetsh "github.com/DadosMB/crm-infra/internal/handlers/assets"
	"github.com/DadosMB/crm-infra/internal/handlers/expenses"
	"github.com/DadosMB/crm-infra/internal/handlers/notifications"
	"github.com/DadosMB/crm-infra/internal/handlers/orders"
	"github.com/DadosMB/crm-infra/internal/handlers/suppliers"
	"github.com/DadosMB/crm-infra/internal/handlers/tasks"
	"github.com/DadosMB/crm-infra/internal/handlers/users"
	"github.com/DadosMB/crm-infra/internal/middleware"
	"github.com/DadosMB/crm-infra/internal/service"
)

// RegisterRoutes wires every resource under authenticated route groups.
func RegisterRoutes(mux *chi.Mux, svc *service.Service) {
	oh := orders.New(svc)
	eh := expenses.New(svc)
	ah := assetsh.New(svc)
	th := tasks.New(svc)
	sh := suppliers.New(svc)
	uh := users.New(svc)
	nh := notifications.New(svc)

	requireAuth := middleware.RequireAuth(svc.Store())

	mux.Route("/orders", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", oh.List)
		sr.Post("/", oh.Create)
		sr.Get("/{orderID}", oh.GetByID)
		sr.Put("/{orderID}", oh.Update)
		sr.Post("/{orderID}/log", oh.AddLog)
		sr.Put("/{orderID}/archive", oh.Archive)
	})

	mux.Route("/expenses", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", eh.List)
		sr.Post("/", eh.Create)
		sr.Put("/", eh.BatchUpdate)
		sr.Put("/{expenseID}", eh.Update)
		sr.Delete("/{expenseID}", eh.Delete)
	})

	mux.Route("/assets", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", ah.List)
		sr.Post("/", ah.Create)
		sr.Post("/import", ah.Import)
		sr.Get("/export.csv", ah.ExportCSV)
		sr.Get("/report.html", ah.Report)

		sr.Get("/maintenance", ah.ListMaintenance)
		sr.Post("/maintenance", ah.SendToMaintenance)
		sr.Put("/maintenance/{recordID}/return", ah.ReturnFromMaintenance)

		sr.Get("/categories", ah.ListCategories)
		sr.Post("/categories", ah.AddCategory)
		sr.Delete("/categories/{name}", ah.RemoveCategory)

		sr.Put("/{assetID}", ah.Update)
		sr.Delete("/{assetID}", ah.Delete)
	})

	mux.Route("/tasks", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", th.List)
		sr.Post("/", th.Create)
		sr.Put("/{taskID}", th.Update)
		sr.Patch("/{taskID}/toggle", th.Toggle)
		sr.Delete("/{taskID}", th.Delete)
	})

	mux.Route("/suppliers", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", sh.List)
		sr.Post("/", sh.Create)
		sr.Put("/{supplierID}", sh.Update)
		sr.Delete("/{supplierID}", sh.Delete)
	})

	mux.Route("/users", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.With(middleware.RequireAdmin).Get("/", uh.List)
		sr.With(middleware.RequireAdmin).Post("/", uh.Create)
		sr.Put("/{userID}", uh.Update)
		sr.With(middleware.RequireAdmin).Delete("/{userID}", uh.Delete)
	})

	mux.Route("/notifications", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", nh.List)
		sr.Put("/read", nh.MarkAllRead)
		sr.Put("/{notificationID}/read", nh.MarkRead)
	})
}
