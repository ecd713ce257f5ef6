package sync

import (
	"encoding/json"
	"net/http"

	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
)

// PendingHandler expone la cola pendiente, más viejo primero.
func PendingHandler(queue syncqueue.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := queue.GetUnsynced(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		if items == nil {
			items = []syncqueue.Item{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// RunHandler dispara una pasada completa de push+pull. Con el espejo sin
// configurar (modo solo local) responde 503.
func RunHandler(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "cloud mirror not configured"})
			return
		}

		res, err := engine.RunOnce(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		if err := engine.Pull(r.Context()); err != nil {
			engine.log.Warn("pull after run failed", map[string]any{"error": err.Error()})
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
