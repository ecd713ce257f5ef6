package health

import (
	"context"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
)

// Refresher recalcula y persiste el puntaje de una mascota a partir de su
// historial. Cada mutación de entries pasa por acá.
type Refresher struct {
	pets    *pets.Service
	entries *entries.Service
	now     func() time.Time
}

func NewRefresher(p *pets.Service, e *entries.Service) *Refresher {
	return &Refresher{
		pets:    p,
		entries: e,
		now:     time.Now,
	}
}

func (r *Refresher) Refresh(ctx context.Context, petID string) (int, error) {
	list, err := r.entries.List(ctx, petID)
	if err != nil {
		return 0, err
	}

	score := Score(list, r.now())
	if _, err := r.pets.Update(ctx, petID, pets.Patch{HealthScore: &score}); err != nil {
		return 0, err
	}
	return score, nil
}
