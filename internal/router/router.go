package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mirabelle514/LovingPaws/internal/adapters/storage/sqlite"
	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/health"
	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
	"github.com/mirabelle514/LovingPaws/internal/domain/users"
	"github.com/mirabelle514/LovingPaws/internal/middleware"
	"github.com/mirabelle514/LovingPaws/internal/platform/logger"
	"github.com/mirabelle514/LovingPaws/internal/sync"
)

type Deps struct {
	Log     logger.Logger
	Store   *sqlite.Store
	Pets    *pets.Service
	Entries *entries.Service
	Users   *users.Service
	Scores  *health.Refresher
	Queue   syncqueue.Repository
	// Engine nil = modo solo local
	Engine *sync.Engine
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recover(d.Log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Route("/pets", func(r chi.Router) {
		r.Post("/", pets.CreateHandler(d.Pets))
		r.Get("/", pets.ListHandler(d.Pets))
		r.Route("/{petID}", func(r chi.Router) {
			r.Get("/", pets.GetHandler(d.Pets))
			r.Patch("/", pets.UpdateHandler(d.Pets))
			r.Delete("/", pets.DeleteHandler(d.Pets))
			r.Get("/score", health.ScoreHandler(d.Scores))
		})
	})

	r.Route("/entries", func(r chi.Router) {
		r.Post("/", entries.CreateHandler(d.Entries, d.Scores))
		r.Get("/", entries.ListHandler(d.Entries))
		r.Route("/{entryID}", func(r chi.Router) {
			r.Get("/", entries.GetHandler(d.Entries))
			r.Put("/", entries.UpdateHandler(d.Entries, d.Scores))
			r.Delete("/", entries.DeleteHandler(d.Entries, d.Scores))
		})
	})

	r.Route("/profile", func(r chi.Router) {
		r.Post("/", users.CreateHandler(d.Users))
		r.Get("/", users.GetHandler(d.Users))
		r.Patch("/", users.UpdateHandler(d.Users))
	})

	r.Route("/sync", func(r chi.Router) {
		r.Get("/pending", sync.PendingHandler(d.Queue))
		r.Post("/run", sync.RunHandler(d.Engine))
	})

	r.Post("/admin/reset", func(w http.ResponseWriter, req *http.Request) {
		if err := d.Store.Reset(req.Context()); err != nil {
			http.Error(w, `{"error":"reset failed"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
	})

	return r
}
