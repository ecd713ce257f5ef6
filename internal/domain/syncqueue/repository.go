package syncqueue

import "context"

type Repository interface {
	// Enqueue agrega un item con id compuesto nuevo y synced = false.
	// data se serializa como snapshot JSON (nil para DELETE).
	Enqueue(ctx context.Context, table, recordID string, op Operation, data any) error
	// GetUnsynced devuelve los pendientes en orden FIFO (más viejo primero).
	GetUnsynced(ctx context.Context) ([]Item, error)
	// MarkSynced marca un item de la cola como replicado. Irreversible.
	MarkSynced(ctx context.Context, itemID string) error
	// MarkRecordSynced marca el registro de origen (no el item de cola)
	// como confirmado en la nube.
	MarkRecordSynced(ctx context.Context, table, recordID string) error
}
