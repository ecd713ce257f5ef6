package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
)

type EntriesRepo struct {
	store *Store
}

func NewEntriesRepo(store *Store) *EntriesRepo {
	return &EntriesRepo{store: store}
}

const entrySelect = `
	SELECT id, pet_id, type, title, description, date, COALESCE(time, ''),
	       COALESCE(period, ''), COALESCE(severity, ''), COALESCE(notes, ''),
	       COALESCE(medication_name, ''), COALESCE(dosage, ''),
	       COALESCE(frequency, ''), COALESCE(route, ''), COALESCE(prescribed_by, ''),
	       COALESCE(symptom, ''), COALESCE(duration, ''),
	       COALESCE(appointment_type, ''), COALESCE(clinic_name, ''),
	       COALESCE(veterinarian, ''), COALESCE(reason, ''), reminder,
	       created_at, synced_to_cloud
	FROM health_entries`

const entryInsertSQL = `
	INSERT INTO health_entries (id, pet_id, type, title, description, date, time,
		period, severity, notes, medication_name, dosage, frequency, route,
		prescribed_by, symptom, duration, appointment_type, clinic_name,
		veterinarian, reason, reminder, created_at, synced_to_cloud)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func entryInsertArgs(s *Store, e entries.HealthEntry, synced int) []any {
	return []any{
		e.ID, e.PetID, string(e.Type), e.Title, e.Description, e.Date,
		toNull(e.Time), toNull(string(e.Period)), toNull(string(e.Severity)),
		toNull(e.Notes), toNull(e.MedicationName), toNull(e.Dosage),
		toNull(e.Frequency), toNull(e.Route), toNull(e.PrescribedBy),
		toNull(e.Symptom), toNull(e.Duration), toNull(e.AppointmentType),
		toNull(e.ClinicName), toNull(e.Veterinarian), toNull(e.Reason),
		e.Reminder, s.fmtTime(e.CreatedAt), synced,
	}
}

// Create inserta la entry y encola el snapshot INSERT en la misma
// transacción. La FK a pets valida que la mascota exista.
func (r *EntriesRepo) Create(ctx context.Context, e entries.HealthEntry) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, entryInsertSQL, entryInsertArgs(r.store, e, 0)...); err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("%w: unknown pet %s", entries.ErrInvalidInput, e.PetID)
		}
		return err
	}
	if err := r.store.enqueueTx(ctx, tx, "health_entries", e.ID, syncqueue.OpInsert, e); err != nil {
		return err
	}
	return tx.Commit()
}

// Update reemplaza el registro completo salvo type y created_at, y encola
// el snapshot resultante como UPDATE.
func (r *EntriesRepo) Update(ctx context.Context, e entries.HealthEntry) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE health_entries SET
			pet_id = ?, title = ?, description = ?, date = ?, time = ?,
			period = ?, severity = ?, notes = ?, medication_name = ?, dosage = ?,
			frequency = ?, route = ?, prescribed_by = ?, symptom = ?, duration = ?,
			appointment_type = ?, clinic_name = ?, veterinarian = ?, reason = ?,
			reminder = ?, synced_to_cloud = 0
		WHERE id = ?`,
		e.PetID, e.Title, e.Description, e.Date, toNull(e.Time),
		toNull(string(e.Period)), toNull(string(e.Severity)), toNull(e.Notes),
		toNull(e.MedicationName), toNull(e.Dosage), toNull(e.Frequency),
		toNull(e.Route), toNull(e.PrescribedBy), toNull(e.Symptom),
		toNull(e.Duration), toNull(e.AppointmentType), toNull(e.ClinicName),
		toNull(e.Veterinarian), toNull(e.Reason), e.Reminder, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entries.ErrNotFound
	}

	if err := r.store.enqueueTx(ctx, tx, "health_entries", e.ID, syncqueue.OpUpdate, e); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *EntriesRepo) GetByID(ctx context.Context, id string) (entries.HealthEntry, error) {
	db, err := r.store.handle()
	if err != nil {
		return entries.HealthEntry{}, err
	}
	row := db.QueryRowContext(ctx, entrySelect+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entries.HealthEntry{}, entries.ErrNotFound
	}
	return e, err
}

func (r *EntriesRepo) List(ctx context.Context, petID string) ([]entries.HealthEntry, error) {
	db, err := r.store.handle()
	if err != nil {
		return nil, err
	}

	query := entrySelect
	var args []any
	if petID != "" {
		query += ` WHERE pet_id = ?`
		args = append(args, petID)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entries.HealthEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EntriesRepo) Delete(ctx context.Context, id string) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM health_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entries.ErrNotFound
	}

	if err := r.store.enqueueTx(ctx, tx, "health_entries", id, syncqueue.OpDelete, map[string]any{"id": id}); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertIfMissing aplica una entry bajada de la nube. Las entries son
// inmutables entre dispositivos: si el id ya existe localmente, se ignora.
func (r *EntriesRepo) InsertIfMissing(ctx context.Context, e entries.HealthEntry) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}
	query := strings.Replace(entryInsertSQL, "INSERT INTO", "INSERT OR IGNORE INTO", 1)
	_, err = db.ExecContext(ctx, query, entryInsertArgs(r.store, e, 1)...)
	return err
}

func scanEntry(row rowScanner) (entries.HealthEntry, error) {
	var (
		e                     entries.HealthEntry
		typ, period, severity string
		createdAt             string
	)
	err := row.Scan(&e.ID, &e.PetID, &typ, &e.Title, &e.Description, &e.Date,
		&e.Time, &period, &severity, &e.Notes, &e.MedicationName, &e.Dosage,
		&e.Frequency, &e.Route, &e.PrescribedBy, &e.Symptom, &e.Duration,
		&e.AppointmentType, &e.ClinicName, &e.Veterinarian, &e.Reason,
		&e.Reminder, &createdAt, &e.SyncedToCloud)
	if err != nil {
		return entries.HealthEntry{}, err
	}
	e.Type = entries.EntryType(typ)
	e.Period = entries.Period(period)
	e.Severity = entries.Severity(severity)
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return entries.HealthEntry{}, err
	}
	return e, nil
}
