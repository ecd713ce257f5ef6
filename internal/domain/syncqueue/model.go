package syncqueue

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrInvalidItem  = errors.New("invalid queue item")
	ErrItemNotFound = errors.New("queue item not found")
)

// Operation es el tipo de mutación pendiente de replicar.
type Operation string

const (
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

func (o Operation) Valid() bool {
	switch o {
	case OpInsert, OpUpdate, OpDelete:
		return true
	}
	return false
}

// Item es una mutación local encolada para el espejo en la nube.
// La cola es append-only: synced pasa de false a true una sola vez.
type Item struct {
	ID        string          `json:"id"`
	TableName string          `json:"tableName"`
	RecordID  string          `json:"recordId"`
	Operation Operation       `json:"operation"`
	Data      json.RawMessage `json:"data,omitempty"` // snapshot del registro; null para DELETE
	CreatedAt time.Time       `json:"createdAt"`
	Synced    bool            `json:"synced"`
}
