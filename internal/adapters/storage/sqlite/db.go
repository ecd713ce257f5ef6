package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // driver SQLite puro Go

	"github.com/mirabelle514/LovingPaws/internal/platform/logger"
)

var (
	// ErrStorageUnavailable: no se pudo abrir/contactar la base embebida.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotInitialized: operación CRUD antes de que Init complete.
	ErrNotInitialized = errors.New("store not initialized")
)

// timeLayout es RFC3339 UTC con fracción fija de 9 dígitos: el orden
// lexicográfico del TEXT almacenado coincide con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store es el único dueño del handle a la base embebida. Todo acceso a
// datos persistidos pasa por los repos construidos sobre él.
type Store struct {
	db  *sql.DB
	log logger.Logger
	now func() time.Time

	mu    sync.Mutex
	ready bool
}

// Open prepara el handle. No toca disco hasta Init.
// path ":memory:" abre una base en memoria (tests).
func Open(path string, log logger.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrStorageUnavailable)
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// Un solo conn: el modelo es single-writer, y con :memory: cada
	// conexión del pool sería una base distinta.
	db.SetMaxOpenConns(1)

	return &Store{
		db:  db,
		log: log,
		now: time.Now,
	}, nil
}

// Init es idempotente y coalescente: llamadas concurrentes serializan en
// el mutex y comparten el resultado; si falló, la próxima llamada reintenta.
// Tablas son críticas; índices y migraciones son best-effort.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := s.createTables(ctx); err != nil {
		return err
	}
	s.createIndexes(ctx)
	s.migrate(ctx)

	s.ready = true
	s.log.Info("store initialized", nil)
	return nil
}

// Reset dropea y recrea todas las tablas. Solo para debug/tests.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return ErrNotInitialized
	}

	for _, stmt := range dropTables {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if err := s.createTables(ctx); err != nil {
		return err
	}
	s.createIndexes(ctx)

	s.log.Warn("store reset", nil)
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
	return s.db.Close()
}

// handle devuelve el *sql.DB solo si Init ya completó.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func (s *Store) fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// toNull convierte "" en NULL para columnas opcionales.
func toNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
