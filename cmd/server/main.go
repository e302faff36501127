// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	mux_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DadosMB/crm-infra/internal/auth"
	"github.com/DadosMB/crm-infra/internal/config"
	"github.com/DadosMB/crm-infra/internal/handlers"
	"github.com/DadosMB/crm-infra/internal/middleware"
	"github.com/DadosMB/crm-infra/internal/models"
	"github.com/DadosMB/crm-infra/internal/notify"
	"github.com/DadosMB/crm-infra/internal/service"
	"github.com/DadosMB/crm-infra/internal/storage"
	"github.com/DadosMB/crm-infra/internal/store"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(log)

	st := store.New()

	// --- Optional Postgres snapshot persistence ---
	ctx := context.Background()
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("db connect error", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Error("db ping error", "error", err)
			os.Exit(1)
		}

		snaps := storage.NewSnapshots(pool)
		if err := snaps.Init(ctx); err != nil {
			log.Error("snapshot table init error", "error", err)
			os.Exit(1)
		}
		if d, ok, err := snaps.Load(ctx); err != nil {
			log.Error("snapshot load error", "error", err)
			os.Exit(1)
		} else if ok {
			st.Load(d)
			log.Info("snapshot restored")
		}
		snaps.Attach(st, log)
	}

	if cfg.SeedFile != "" {
		if err := seedFromFile(st, cfg.SeedFile); err != nil {
			log.Error("seed load error", "file", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
		log.Info("seed loaded", "file", cfg.SeedFile)
	}
	ensureAdmin(st, log)

	emitter := notify.New(st)
	svc := service.New(st, emitter)

	// --- Router ---
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(mux_middleware.Logger)

	// --- CORS middleware ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Local auth routes
	mux.Post("/auth/login", auth.LoginHandler(st, cfg.Session.TTL))
	mux.Post("/auth/logout", auth.LogoutHandler())
	mux.With(middleware.RequireAuth(st)).Get("/auth/me", auth.MeHandler())

	// Resource routes
	handlers.RegisterRoutes(mux, svc)

	// Health root
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	// --- Start server ---
	addr := cfg.ListenAddr
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	log.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// seedFromFile merges a JSON dataset into the store. Existing collections
// are only replaced when the seed provides them, so a snapshot restored
// from Postgres is not clobbered by an unchanged seed file.
func seedFromFile(st *store.Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var d store.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return err
	}
	st.Update(func(cur *store.Data) {
		if len(cur.Users) == 0 {
			cur.Users = d.Users
		}
		if len(cur.Orders) == 0 {
			cur.Orders = d.Orders
		}
		if len(cur.Expenses) == 0 {
			cur.Expenses = d.Expenses
		}
		if len(cur.Assets) == 0 {
			cur.Assets = d.Assets
		}
		if len(cur.Maintenance) == 0 {
			cur.Maintenance = d.Maintenance
		}
		if len(cur.Tasks) == 0 {
			cur.Tasks = d.Tasks
		}
		if len(cur.Suppliers) == 0 {
			cur.Suppliers = d.Suppliers
		}
		if len(d.Categories) > 0 {
			cur.Categories = d.Categories
		}
		if d.OrderSeq > cur.OrderSeq {
			cur.OrderSeq = d.OrderSeq
		}
		if d.ExpenseSeq > cur.ExpenseSeq {
			cur.ExpenseSeq = d.ExpenseSeq
		}
	})
	return nil
}

// ensureAdmin creates a bootstrap administrator when the store has no
// users at all, so a fresh deployment can be logged into.
func ensureAdmin(st *store.Store, log *slog.Logger) {
	var empty bool
	st.View(func(d store.Data) { empty = len(d.Users) == 0 })
	if !empty {
		return
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("bootstrap admin hash error", "error", err)
		os.Exit(1)
	}
	st.Update(func(d *store.Data) {
		d.Users = append(d.Users, models.User{
			ID:           "usr-" + uuid.NewString(),
			Name:         "Administrador",
			Username:     "admin",
			Role:         "Administrador",
			Initials:     "AD",
			IsAdmin:      true,
			PasswordHash: hash,
		})
	})
	log.Warn("bootstrap admin created", "username", "admin")
}
