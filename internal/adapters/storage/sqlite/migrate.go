package sqlite

import "context"

// Migraciones aditivas sobre bases creadas por versiones previas del
// esquema. Cada paso inspecciona pragma_table_info antes de alterar, así
// correr Init N veces es inocuo.
var petMigrations = []struct {
	column string
	ddl    string
}{
	{"weight_unit", `ALTER TABLE pets ADD COLUMN weight_unit TEXT`},
	{"gender", `ALTER TABLE pets ADD COLUMN gender TEXT`},
	{"age_unit", `ALTER TABLE pets ADD COLUMN age_unit TEXT`},
}

// migrate es best-effort: un paso fallido se loguea y no frena el arranque
// ni los pasos siguientes.
func (s *Store) migrate(ctx context.Context) {
	for _, m := range petMigrations {
		exists, err := s.columnExists(ctx, "pets", m.column)
		if err != nil {
			s.log.Warn("migration check failed", map[string]any{"column": m.column, "error": err.Error()})
			continue
		}
		if exists {
			continue
		}
		if _, err := s.db.ExecContext(ctx, m.ddl); err != nil {
			s.log.Warn("migration failed", map[string]any{"column": m.column, "error": err.Error()})
			continue
		}
		s.log.Info("column added", map[string]any{"table": "pets", "column": m.column})
	}
}

func (s *Store) columnExists(ctx context.Context, table, column string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&n)
	return n > 0, err
}
