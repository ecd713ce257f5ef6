// Package cloud define el puerto hacia el espejo remoto. El engine de sync
// habla contra esta interfaz, no contra un driver concreto.
package cloud

import (
	"context"
	"encoding/json"
	"time"
)

// Record es un registro tal como vive en el espejo: snapshot JSON más la
// marca de tiempo del lado servidor que decide last-write-wins.
type Record struct {
	ID        string
	Data      json.RawMessage
	UpdatedAt time.Time
}

type Store interface {
	// Insert sube un snapshot completo. Idempotente: si el id ya existe,
	// lo reemplaza.
	Insert(ctx context.Context, table, id string, data json.RawMessage) error
	// Update mergea un snapshot parcial sobre lo que haya. Si el id no
	// existe todavía, lo crea con el parcial.
	Update(ctx context.Context, table, id string, data json.RawMessage) error
	// Delete es idempotente: borrar lo ya borrado no es error.
	Delete(ctx context.Context, table, id string) error
	// Fetch baja todos los registros de una tabla del espejo.
	Fetch(ctx context.Context, table string) ([]Record, error)
}
