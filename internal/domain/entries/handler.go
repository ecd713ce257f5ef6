package entries

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ScoreRefresher recalcula el puntaje de la mascota después de una
// mutación de su historial. La implementación vive en el módulo health.
type ScoreRefresher interface {
	Refresh(ctx context.Context, petID string) (int, error)
}

type entryRequest struct {
	PetID       string `json:"petId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Period      string `json:"period"`
	Severity    string `json:"severity"`
	Notes       string `json:"notes"`

	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Route          string `json:"route"`
	PrescribedBy   string `json:"prescribedBy"`

	Symptom  string `json:"symptom"`
	Duration string `json:"duration"`

	AppointmentType string `json:"appointmentType"`
	ClinicName      string `json:"clinicName"`
	Veterinarian    string `json:"veterinarian"`
	Reason          string `json:"reason"`
	Reminder        bool   `json:"reminder"`
}

func (req entryRequest) toInput() CreateInput {
	return CreateInput{
		PetID: req.PetID, Type: EntryType(req.Type),
		Title: req.Title, Description: req.Description,
		Date: req.Date, Time: req.Time,
		Period: Period(req.Period), Severity: Severity(req.Severity),
		Notes:          req.Notes,
		MedicationName: req.MedicationName, Dosage: req.Dosage,
		Frequency: req.Frequency, Route: req.Route, PrescribedBy: req.PrescribedBy,
		Symptom: req.Symptom, Duration: req.Duration,
		AppointmentType: req.AppointmentType, ClinicName: req.ClinicName,
		Veterinarian: req.Veterinarian, Reason: req.Reason, Reminder: req.Reminder,
	}
}

func CreateHandler(svc *Service, scores ScoreRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		e, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		refreshScore(r.Context(), scores, e.PetID)
		writeJSON(w, http.StatusCreated, e)
	}
}

func ListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), r.URL.Query().Get("pet_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if list == nil {
			list = []HealthEntry{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "entryID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func UpdateHandler(svc *Service, scores ScoreRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "entryID"), req.toInput())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		refreshScore(r.Context(), scores, e.PetID)
		writeJSON(w, http.StatusOK, e)
	}
}

func DeleteHandler(svc *Service, scores ScoreRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "entryID")

		// la entry se necesita antes de borrar para saber de qué mascota era
		e, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		refreshScore(r.Context(), scores, e.PetID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// refreshScore es best-effort: el historial ya mutó, un puntaje viejo se
// corrige en la próxima mutación.
func refreshScore(ctx context.Context, scores ScoreRefresher, petID string) {
	if scores == nil {
		return
	}
	_, _ = scores.Refresh(ctx, petID)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
