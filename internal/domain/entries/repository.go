package entries

import "context"

type Repository interface {
	Create(ctx context.Context, e HealthEntry) error
	// Update reemplaza el registro completo salvo type y created_at.
	Update(ctx context.Context, e HealthEntry) error
	GetByID(ctx context.Context, id string) (HealthEntry, error)
	// List devuelve entries ordenadas por date DESC, created_at DESC.
	// petID vacío = todas las mascotas.
	List(ctx context.Context, petID string) ([]HealthEntry, error)
	Delete(ctx context.Context, id string) error
}
