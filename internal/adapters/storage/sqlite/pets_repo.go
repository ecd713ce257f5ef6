package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
)

type PetsRepo struct {
	store *Store
}

func NewPetsRepo(store *Store) *PetsRepo {
	return &PetsRepo{store: store}
}

// COALESCE en las columnas nullable para escanear directo a string.
const petSelect = `
	SELECT id, name, type, breed, age, COALESCE(age_unit, ''), weight,
	       COALESCE(weight_unit, ''), COALESCE(gender, ''), color,
	       COALESCE(microchip_id, ''), COALESCE(date_of_birth, ''), owner_notes,
	       COALESCE(image, ''), health_score, last_checkup, created_at,
	       updated_at, synced_to_cloud
	FROM pets`

// Create inserta la mascota y encola el snapshot INSERT en la misma
// transacción.
func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pets (id, name, type, breed, age, age_unit, weight, weight_unit,
			gender, color, microchip_id, date_of_birth, owner_notes, image,
			health_score, last_checkup, created_at, updated_at, synced_to_cloud)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		p.ID, p.Name, p.Type, p.Breed, p.Age, toNull(p.AgeUnit), p.Weight,
		toNull(p.WeightUnit), toNull(p.Gender), p.Color, toNull(p.MicrochipID),
		toNull(p.DateOfBirth), p.OwnerNotes, toNull(p.Image),
		p.HealthScore, p.LastCheckup, r.store.fmtTime(p.CreatedAt), r.store.fmtTime(p.UpdatedAt))
	if err != nil {
		return err
	}

	if err := r.store.enqueueTx(ctx, tx, "pets", p.ID, syncqueue.OpInsert, p); err != nil {
		return err
	}
	return tx.Commit()
}

// Update arma el SET dinámico con los campos presentes del patch y encola
// el mismo conjunto de cambios como snapshot parcial.
func (r *PetsRepo) Update(ctx context.Context, id string, patch pets.Patch) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	var (
		sets []string
		args []any
		snap = map[string]any{"id": id}
	)
	set := func(col, key string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
		snap[key] = v
	}

	if patch.Name != nil {
		set("name", "name", *patch.Name)
	}
	if patch.Type != nil {
		set("type", "type", *patch.Type)
	}
	if patch.Breed != nil {
		set("breed", "breed", *patch.Breed)
	}
	if patch.Age != nil {
		set("age", "age", *patch.Age)
	}
	if patch.AgeUnit != nil {
		set("age_unit", "ageUnit", *patch.AgeUnit)
	}
	if patch.Weight != nil {
		set("weight", "weight", *patch.Weight)
	}
	if patch.WeightUnit != nil {
		set("weight_unit", "weightUnit", *patch.WeightUnit)
	}
	if patch.Gender != nil {
		set("gender", "gender", *patch.Gender)
	}
	if patch.Color != nil {
		set("color", "color", *patch.Color)
	}
	if patch.MicrochipID != nil {
		set("microchip_id", "microchipId", *patch.MicrochipID)
	}
	if patch.DateOfBirth != nil {
		set("date_of_birth", "dateOfBirth", *patch.DateOfBirth)
	}
	if patch.OwnerNotes != nil {
		set("owner_notes", "ownerNotes", *patch.OwnerNotes)
	}
	if patch.HealthScore != nil {
		set("health_score", "healthScore", *patch.HealthScore)
	}
	if patch.LastCheckup != nil {
		set("last_checkup", "lastCheckup", *patch.LastCheckup)
	}
	if patch.ImageSet {
		if patch.Image == nil {
			// null explícito: limpiar la imagen
			sets = append(sets, "image = NULL")
			snap["image"] = nil
		} else {
			set("image", "image", *patch.Image)
		}
	}
	if len(sets) == 0 {
		return pets.ErrInvalidInput
	}

	now := r.store.now()
	sets = append(sets, "updated_at = ?", "synced_to_cloud = 0")
	args = append(args, r.store.fmtTime(now), id)
	snap["updatedAt"] = now.UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE pets SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pets.ErrNotFound
	}

	if err := r.store.enqueueTx(ctx, tx, "pets", id, syncqueue.OpUpdate, snap); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	db, err := r.store.handle()
	if err != nil {
		return pets.Pet{}, err
	}
	row := db.QueryRowContext(ctx, petSelect+` WHERE id = ?`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	db, err := r.store.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, petSelect+` ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pets.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra la mascota (sus entries caen por cascade) y encola el DELETE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pets.ErrNotFound
	}

	if err := r.store.enqueueTx(ctx, tx, "pets", id, syncqueue.OpDelete, map[string]any{"id": id}); err != nil {
		return err
	}
	return tx.Commit()
}

// UpsertIfNewer aplica un registro bajado de la nube con last-write-wins.
// No encola: el cambio ya vive en la nube, y queda marcado como synced.
func (r *PetsRepo) UpsertIfNewer(ctx context.Context, p pets.Pet) error {
	db, err := r.store.handle()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO pets (id, name, type, breed, age, age_unit, weight, weight_unit,
			gender, color, microchip_id, date_of_birth, owner_notes, image,
			health_score, last_checkup, created_at, updated_at, synced_to_cloud)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, type = excluded.type, breed = excluded.breed,
			age = excluded.age, age_unit = excluded.age_unit,
			weight = excluded.weight, weight_unit = excluded.weight_unit,
			gender = excluded.gender, color = excluded.color,
			microchip_id = excluded.microchip_id, date_of_birth = excluded.date_of_birth,
			owner_notes = excluded.owner_notes, image = excluded.image,
			health_score = excluded.health_score, last_checkup = excluded.last_checkup,
			updated_at = excluded.updated_at, synced_to_cloud = 1
		WHERE excluded.updated_at > pets.updated_at`,
		p.ID, p.Name, p.Type, p.Breed, p.Age, toNull(p.AgeUnit), p.Weight,
		toNull(p.WeightUnit), toNull(p.Gender), p.Color, toNull(p.MicrochipID),
		toNull(p.DateOfBirth), p.OwnerNotes, toNull(p.Image),
		p.HealthScore, p.LastCheckup, r.store.fmtTime(p.CreatedAt), r.store.fmtTime(p.UpdatedAt))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p                    pets.Pet
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age, &p.AgeUnit,
		&p.Weight, &p.WeightUnit, &p.Gender, &p.Color, &p.MicrochipID,
		&p.DateOfBirth, &p.OwnerNotes, &p.Image, &p.HealthScore, &p.LastCheckup,
		&createdAt, &updatedAt, &p.SyncedToCloud)
	if err != nil {
		return pets.Pet{}, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return pets.Pet{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}
