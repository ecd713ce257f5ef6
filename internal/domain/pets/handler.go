package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed"`
	Age         string `json:"age"`
	AgeUnit     string `json:"ageUnit"`
	Weight      string `json:"weight"`
	WeightUnit  string `json:"weightUnit"`
	Gender      string `json:"gender"`
	Color       string `json:"color"`
	MicrochipID string `json:"microchipId"`
	DateOfBirth string `json:"dateOfBirth"`
	OwnerNotes  string `json:"ownerNotes"`
	Image       string `json:"image"`
}

func CreateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name: req.Name, Type: req.Type, Breed: req.Breed,
			Age: req.Age, AgeUnit: req.AgeUnit,
			Weight: req.Weight, WeightUnit: req.WeightUnit,
			Gender: req.Gender, Color: req.Color,
			MicrochipID: req.MicrochipID, DateOfBirth: req.DateOfBirth,
			OwnerNotes: req.OwnerNotes, Image: req.Image,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func ListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if list == nil {
			list = []Pet{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// UpdateHandler acepta un patch parcial. "image": null explícito limpia la
// imagen; la clave ausente no la toca.
func UpdateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		var patch Patch
		if err := json.Unmarshal(body, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		_, patch.ImageSet = raw["image"]

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), patch)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func DeleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
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
