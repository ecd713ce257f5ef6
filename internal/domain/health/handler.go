package health

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
)

// ScoreHandler recalcula el puntaje al momento de la consulta y lo deja
// persistido en la mascota.
func ScoreHandler(ref *Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		score, err := ref.Refresh(r.Context(), petID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"petId":       petID,
			"healthScore": score,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
