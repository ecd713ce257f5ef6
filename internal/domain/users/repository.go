package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, id string, patch Patch) error
	// Get devuelve el perfil único (LIMIT 1). ErrNotFound si no existe aún.
	Get(ctx context.Context) (User, error)
}
