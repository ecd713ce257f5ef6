package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

const (
	initialHealthScore = 100
	initialLastCheckup = "Never"
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
	Name        string
	Type        string
	Breed       string
	Age         string
	AgeUnit     string
	Weight      string
	WeightUnit  string
	Gender      string
	Color       string
	MicrochipID string
	DateOfBirth string
	OwnerNotes  string
	Image       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Type) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.TrimSpace(in.Type),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         strings.TrimSpace(in.Age),
		AgeUnit:     strings.TrimSpace(in.AgeUnit),
		Weight:      strings.TrimSpace(in.Weight),
		WeightUnit:  strings.TrimSpace(in.WeightUnit),
		Gender:      strings.TrimSpace(in.Gender),
		Color:       strings.TrimSpace(in.Color),
		MicrochipID: strings.TrimSpace(in.MicrochipID),
		DateOfBirth: strings.TrimSpace(in.DateOfBirth),
		OwnerNotes:  strings.TrimSpace(in.OwnerNotes),
		Image:       strings.TrimSpace(in.Image),
		HealthScore: initialHealthScore,
		LastCheckup: initialLastCheckup,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// Update aplica un patch parcial y devuelve la mascota resultante.
// Un id inexistente devuelve ErrNotFound (decisión documentada: el
// comportamiento original era un no-op silencioso).
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	if patch.Empty() {
		return Pet{}, ErrInvalidInput
	}
	if patch.HealthScore != nil && (*patch.HealthScore < 0 || *patch.HealthScore > 100) {
		return Pet{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
