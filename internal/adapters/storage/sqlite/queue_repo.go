package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
)

// Tablas que pueden aparecer en la cola. El nombre se interpola en SQL en
// MarkRecordSynced, así que la lista cerrada no es opcional.
var queueTables = map[string]bool{
	"pets":           true,
	"health_entries": true,
	"users":          true,
}

type QueueRepo struct {
	store *Store
}

func NewQueueRepo(store *Store) *QueueRepo {
	return &QueueRepo{store: store}
}

const insertQueueSQL = `
	INSERT INTO sync_queue (id, table_name, record_id, operation, data, created_at, synced)
	VALUES (?, ?, ?, ?, ?, ?, 0)`

// Enqueue agrega un item suelto, fuera de cualquier transacción de origen.
// Las mutaciones CRUD no pasan por acá: usan enqueueTx.
func (r *QueueRepo) Enqueue(ctx context.Context, table, recordID string, op syncqueue.Operation, data any) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}
	if !queueTables[table] || recordID == "" || !op.Valid() {
		return syncqueue.ErrInvalidItem
	}

	payload, err := marshalSnapshot(data)
	if err != nil {
		return err
	}
	now := r.store.now()
	_, err = db.ExecContext(ctx, insertQueueSQL,
		queueItemID(table, recordID, now), table, recordID, string(op), payload, r.store.fmtTime(now))
	return err
}

// enqueueTx corre dentro de la transacción de la mutación de origen:
// registro y item de cola se confirman o se descartan juntos.
func (s *Store) enqueueTx(ctx context.Context, tx *sql.Tx, table, recordID string, op syncqueue.Operation, data any) error {
	payload, err := marshalSnapshot(data)
	if err != nil {
		return err
	}
	now := s.now()
	_, err = tx.ExecContext(ctx, insertQueueSQL,
		queueItemID(table, recordID, now), table, recordID, string(op), payload, s.fmtTime(now))
	return err
}

// GetUnsynced devuelve los pendientes en orden FIFO. rowid desempata
// timestamps iguales.
func (r *QueueRepo) GetUnsynced(ctx context.Context) ([]syncqueue.Item, error) {
	db, err := r.store.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, table_name, record_id, operation, data, created_at
		FROM sync_queue
		WHERE synced = 0
		ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []syncqueue.Item
	for rows.Next() {
		var (
			it        syncqueue.Item
			op        string
			data      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&it.ID, &it.TableName, &it.RecordID, &op, &data, &createdAt); err != nil {
			return nil, err
		}
		it.Operation = syncqueue.Operation(op)
		if data.Valid {
			it.Data = json.RawMessage(data.String)
		}
		if it.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *QueueRepo) MarkSynced(ctx context.Context, itemID string) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE sync_queue SET synced = 1 WHERE id = ?`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return syncqueue.ErrItemNotFound
	}
	return nil
}

// MarkRecordSynced prende synced_to_cloud en el registro de origen. Si el
// registro ya no existe (op DELETE) no hay nada que marcar y no es error.
func (r *QueueRepo) MarkRecordSynced(ctx context.Context, table, recordID string) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}
	if !queueTables[table] {
		return syncqueue.ErrInvalidItem
	}
	_, err = db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET synced_to_cloud = 1 WHERE id = ?`, table), recordID)
	return err
}

func queueItemID(table, recordID string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", table, recordID, now.UnixNano())
}

func marshalSnapshot(data any) (any, error) {
	if data == nil {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
