package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	// Update aplica un patch parcial: solo los campos presentes se escriben,
	// siempre refrescando updated_at y marcando el registro como dirty.
	Update(ctx context.Context, id string, patch Patch) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// List devuelve todas las mascotas, más recientes primero.
	List(ctx context.Context) ([]Pet, error)
	// Delete borra la mascota; las health entries caen por cascade FK.
	Delete(ctx context.Context, id string) error
}
