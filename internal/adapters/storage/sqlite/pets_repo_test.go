package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
)

func seedPet(t *testing.T, repo *PetsRepo, id string) pets.Pet {
	t.Helper()
	p := pets.Pet{
		ID: id, Name: "Firulais", Type: "Dog", Breed: "Mestizo",
		Age: "3", AgeUnit: "years", Weight: "12", WeightUnit: "kg",
		HealthScore: 100, LastCheckup: "Never",
		CreatedAt: t0, UpdatedAt: t0,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed pet %s: %v", id, err)
	}
	return p
}

func TestPetsCreate_DuplicateIDFails(t *testing.T) {
	st := newTestStore(t)
	repo := NewPetsRepo(st)

	seedPet(t, repo, "p1")
	err := repo.Create(context.Background(), pets.Pet{ID: "p1", Name: "Otro", Type: "Cat", CreatedAt: t0, UpdatedAt: t0})
	if err == nil {
		t.Fatal("expected unique constraint violation")
	}

	// el insert fallido no deja item fantasma en la cola
	items, _ := NewQueueRepo(st).GetUnsynced(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected only the first INSERT queued, got %d", len(items))
	}
}

func TestPetsUpdate_PartialPreservesOtherFields(t *testing.T) {
	st := newTestStore(t)
	repo := NewPetsRepo(st)
	ctx := context.Background()
	seedPet(t, repo, "p1")

	name := "Firu"
	if err := repo.Update(ctx, "p1", pets.Patch{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	p, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Firu" {
		t.Fatalf("expected new name, got %q", p.Name)
	}
	if p.Breed != "Mestizo" || p.Weight != "12" || p.HealthScore != 100 {
		t.Fatalf("untouched fields changed: %+v", p)
	}
	if !p.UpdatedAt.After(p.CreatedAt) {
		t.Fatal("updated_at should move forward")
	}
	if p.SyncedToCloud {
		t.Fatal("update should mark record dirty")
	}
}

func TestPetsUpdate_SnapshotCarriesOnlyChangedFields(t *testing.T) {
	st := newTestStore(t)
	repo := NewPetsRepo(st)
	ctx := context.Background()
	seedPet(t, repo, "p1")

	name := "Firu"
	if err := repo.Update(ctx, "p1", pets.Patch{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, err := NewQueueRepo(st).GetUnsynced(ctx)
	if err != nil {
		t.Fatalf("get unsynced: %v", err)
	}
	last := items[len(items)-1]
	if last.Operation != syncqueue.OpUpdate {
		t.Fatalf("expected UPDATE item, got %s", last.Operation)
	}

	var snap map[string]any
	if err := json.Unmarshal(last.Data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap["name"] != "Firu" {
		t.Fatalf("snapshot missing changed field: %v", snap)
	}
	if _, ok := snap["breed"]; ok {
		t.Fatalf("snapshot should not carry untouched fields: %v", snap)
	}
	if _, ok := snap["updatedAt"]; !ok {
		t.Fatal("snapshot should carry updatedAt")
	}
}

func TestPetsUpdate_ClearImageWithExplicitNull(t *testing.T) {
	st := newTestStore(t)
	repo := NewPetsRepo(st)
	ctx := context.Background()

	p := seedPet(t, repo, "p1")
	img := "file:///photo.jpg"
	if err := repo.Update(ctx, p.ID, pets.Patch{ImageSet: true, Image: &img}); err != nil {
		t.Fatalf("set image: %v", err)
	}
	if err := repo.Update(ctx, p.ID, pets.Patch{ImageSet: true, Image: nil}); err != nil {
		t.Fatalf("clear image: %v", err)
	}

	got, _ := repo.GetByID(ctx, p.ID)
	if got.Image != "" {
		t.Fatalf("expected image cleared, got %q", got.Image)
	}
}

func TestPetsUpdate_MissingIDReturnsNotFound(t *testing.T) {
	st := newTestStore(t)
	repo := NewPetsRepo(st)

	name := "x"
	err := repo.Update(context.Background(), "nope", pets.Patch{Name: &name})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// nada encolado para el update fallido
	items, _ := NewQueueRepo(st).GetUnsynced(context.Background())
	if len(items) != 0 {
		t.Fatalf("expected empty queue, got %d", len(items))
	}
}

func TestPetsDelete_CascadesEntries(t *testing.T) {
	st := newTestStore(t)
	petsRepo := NewPetsRepo(st)
	entriesRepo := NewEntriesRepo(st)
	ctx := context.Background()

	seedPet(t, petsRepo, "p1")
	e := entries.HealthEntry{
		ID: "e1", PetID: "p1", Type: entries.TypeSymptom,
		Title: "Tos", Date: "2025-06-01", Severity: entries.SeverityMild,
		CreatedAt: t0,
	}
	if err := entriesRepo.Create(ctx, e); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if err := petsRepo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete pet: %v", err)
	}

	if _, err := entriesRepo.GetByID(ctx, "e1"); !errors.Is(err, entries.ErrNotFound) {
		t.Fatalf("expected cascade delete of entries, got %v", err)
	}
}

func TestPetsList_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	repo := NewPetsRepo(st)
	ctx := context.Background()

	older := seedPet(t, repo, "p1")
	newer := older
	newer.ID = "p2"
	newer.CreatedAt = t0.Add(time.Hour)
	newer.UpdatedAt = newer.CreatedAt
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p2" || list[1].ID != "p1" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}
