package sqlite

import "context"

// Esquema snake_case. Los campos de variante de health_entries viven como
// columnas planas nullable: una sola tabla, sin joins.
var createTables = []struct {
	name string
	ddl  string
}{
	{"pets", `CREATE TABLE IF NOT EXISTS pets (
		id TEXT PRIMARY KEY NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		breed TEXT NOT NULL DEFAULT '',
		age TEXT NOT NULL DEFAULT '',
		age_unit TEXT,
		weight TEXT NOT NULL DEFAULT '',
		weight_unit TEXT,
		gender TEXT,
		color TEXT NOT NULL DEFAULT '',
		microchip_id TEXT,
		date_of_birth TEXT,
		owner_notes TEXT NOT NULL DEFAULT '',
		image TEXT,
		health_score INTEGER NOT NULL DEFAULT 100,
		last_checkup TEXT NOT NULL DEFAULT 'Never',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced_to_cloud INTEGER NOT NULL DEFAULT 0
	)`},
	{"health_entries", `CREATE TABLE IF NOT EXISTS health_entries (
		id TEXT PRIMARY KEY NOT NULL,
		pet_id TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT,
		period TEXT,
		severity TEXT,
		notes TEXT,
		medication_name TEXT,
		dosage TEXT,
		frequency TEXT,
		route TEXT,
		prescribed_by TEXT,
		symptom TEXT,
		duration TEXT,
		appointment_type TEXT,
		clinic_name TEXT,
		veterinarian TEXT,
		reason TEXT,
		reminder INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		synced_to_cloud INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (pet_id) REFERENCES pets(id) ON DELETE CASCADE
	)`},
	{"users", `CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY NOT NULL,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL,
		profile_image TEXT,
		avatar_initials TEXT NOT NULL DEFAULT '',
		member_since TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		synced_to_cloud INTEGER NOT NULL DEFAULT 0
	)`},
	{"sync_queue", `CREATE TABLE IF NOT EXISTS sync_queue (
		id TEXT PRIMARY KEY NOT NULL,
		table_name TEXT NOT NULL,
		record_id TEXT NOT NULL,
		operation TEXT NOT NULL,
		data TEXT,
		created_at TEXT NOT NULL,
		synced INTEGER NOT NULL DEFAULT 0
	)`},
}

var createIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_health_entries_pet_id ON health_entries(pet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_health_entries_date ON health_entries(date)`,
	`CREATE INDEX IF NOT EXISTS idx_health_entries_type ON health_entries(type)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_created_at ON pets(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sync_queue_synced ON sync_queue(synced)`,
	`CREATE INDEX IF NOT EXISTS idx_sync_queue_table_record ON sync_queue(table_name, record_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_synced ON pets(synced_to_cloud)`,
}

// Orden inverso a las FK para que el drop no choque con referencias.
var dropTables = []string{
	`DROP TABLE IF EXISTS sync_queue`,
	`DROP TABLE IF EXISTS health_entries`,
	`DROP TABLE IF EXISTS users`,
	`DROP TABLE IF EXISTS pets`,
}

func (s *Store) createTables(ctx context.Context) error {
	for _, t := range createTables {
		if _, err := s.db.ExecContext(ctx, t.ddl); err != nil {
			s.log.Error("create table failed", map[string]any{"table": t.name, "error": err.Error()})
			return err
		}
	}
	return nil
}

// createIndexes no aborta el arranque: un índice perdido solo cuesta
// performance.
func (s *Store) createIndexes(ctx context.Context) {
	for _, ddl := range createIndexes {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			s.log.Warn("create index failed", map[string]any{"error": err.Error()})
		}
	}
}
