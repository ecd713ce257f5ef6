package entries

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("entry not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID       string
	Type        EntryType
	Title       string
	Description string
	Date        string
	Time        string
	Period      Period
	Severity    Severity
	Notes       string

	MedicationName string
	Dosage         string
	Frequency      string
	Route          string
	PrescribedBy   string

	Symptom  string
	Duration string

	AppointmentType string
	ClinicName      string
	Veterinarian    string
	Reason          string
	Reminder        bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (HealthEntry, error) {
	e, err := s.build(in)
	if err != nil {
		return HealthEntry{}, err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()

	if err := s.repo.Create(ctx, e); err != nil {
		return HealthEntry{}, err
	}
	return e, nil
}

// Update es un reemplazo total del registro. El type es inmutable: si el
// input trae otro type que el almacenado, es input inválido.
func (s *Service) Update(ctx context.Context, id string, in CreateInput) (HealthEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthEntry{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return HealthEntry{}, err
	}
	if in.Type != current.Type {
		return HealthEntry{}, ErrInvalidInput
	}

	e, err := s.build(in)
	if err != nil {
		return HealthEntry{}, err
	}
	e.ID = id
	e.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, e); err != nil {
		return HealthEntry{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (HealthEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthEntry{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, petID string) ([]HealthEntry, error) {
	return s.repo.List(ctx, strings.TrimSpace(petID))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// build valida el envelope y la variante según type.
func (s *Service) build(in CreateInput) (HealthEntry, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return HealthEntry{}, ErrInvalidInput
	}
	if !in.Type.Valid() {
		return HealthEntry{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return HealthEntry{}, ErrInvalidInput
	}
	if in.Severity != "" && !in.Severity.Valid() {
		return HealthEntry{}, ErrInvalidInput
	}
	if in.Period != "" && in.Period != PeriodAM && in.Period != PeriodPM {
		return HealthEntry{}, ErrInvalidInput
	}

	date, err := NormalizeDate(in.Date)
	if err != nil {
		return HealthEntry{}, ErrInvalidInput
	}

	// validación de variante: un flat record no puede quedar a medias
	switch in.Type {
	case TypeMedication:
		if strings.TrimSpace(in.MedicationName) == "" || strings.TrimSpace(in.Dosage) == "" {
			return HealthEntry{}, ErrInvalidInput
		}
	case TypeSymptom:
		if strings.TrimSpace(in.Symptom) == "" {
			return HealthEntry{}, ErrInvalidInput
		}
	case TypeAppointment:
		if strings.TrimSpace(in.AppointmentType) == "" || strings.TrimSpace(in.ClinicName) == "" {
			return HealthEntry{}, ErrInvalidInput
		}
	}

	return HealthEntry{
		PetID:           strings.TrimSpace(in.PetID),
		Type:            in.Type,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Date:            date,
		Time:            strings.TrimSpace(in.Time),
		Period:          in.Period,
		Severity:        in.Severity,
		Notes:           strings.TrimSpace(in.Notes),
		MedicationName:  strings.TrimSpace(in.MedicationName),
		Dosage:          strings.TrimSpace(in.Dosage),
		Frequency:       strings.TrimSpace(in.Frequency),
		Route:           strings.TrimSpace(in.Route),
		PrescribedBy:    strings.TrimSpace(in.PrescribedBy),
		Symptom:         strings.TrimSpace(in.Symptom),
		Duration:        strings.TrimSpace(in.Duration),
		AppointmentType: strings.TrimSpace(in.AppointmentType),
		ClinicName:      strings.TrimSpace(in.ClinicName),
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		Reason:          strings.TrimSpace(in.Reason),
		Reminder:        in.Reminder,
	}, nil
}
