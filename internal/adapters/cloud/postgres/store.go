// Package postgres implementa el espejo remoto sobre Postgres (Supabase por
// debajo es Postgres). Cada tabla espejo guarda el snapshot como JSONB; el
// updated_at del lado servidor arbitra last-write-wins.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirabelle514/LovingPaws/internal/ports/cloud"
)

// Conn es el subconjunto de pgxpool.Pool que usa el store. pgxmock
// implementa la misma superficie, así los tests no necesitan un Postgres.
type Conn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tablas espejo válidas. El nombre se interpola en SQL, la lista cerrada
// no es opcional.
var mirrorTables = map[string]bool{
	"pets":           true,
	"health_entries": true,
	"users":          true,
}

var ErrUnknownTable = fmt.Errorf("unknown mirror table")

type Store struct {
	conn Conn
}

// New abre un pool contra dsn y verifica conectividad.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cloud mirror: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cloud mirror: %w", err)
	}
	return &Store{conn: pool}, nil
}

// NewWithConn inyecta la conexión (tests con pgxmock).
func NewWithConn(conn Conn) *Store {
	return &Store{conn: conn}
}

// EnsureSchema crea las tablas espejo si no existen.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for table := range mirrorTables {
		_, err := s.conn.Exec(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				data JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, table))
		if err != nil {
			return fmt.Errorf("ensure schema %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, table, id string, data json.RawMessage) error {
	if !mirrorTables[table] {
		return ErrUnknownTable
	}
	_, err := s.conn.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, table),
		id, data)
	return err
}

// Update mergea el parcial sobre el snapshot existente. Si el registro no
// llegó nunca a la nube, el parcial queda como base.
func (s *Store) Update(ctx context.Context, table, id string, data json.RawMessage) error {
	if !mirrorTables[table] {
		return ErrUnknownTable
	}
	_, err := s.conn.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = %s.data || EXCLUDED.data, updated_at = now()`,
		table, table),
		id, data)
	return err
}

func (s *Store) Delete(ctx context.Context, table, id string) error {
	if !mirrorTables[table] {
		return ErrUnknownTable
	}
	_, err := s.conn.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	return err
}

func (s *Store) Fetch(ctx context.Context, table string) ([]cloud.Record, error) {
	if !mirrorTables[table] {
		return nil, ErrUnknownTable
	}
	rows, err := s.conn.Query(ctx, fmt.Sprintf(`SELECT id, data, updated_at FROM %s`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cloud.Record
	for rows.Next() {
		var rec cloud.Record
		if err := rows.Scan(&rec.ID, &rec.Data, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
