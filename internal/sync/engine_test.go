package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/adapters/storage/sqlite"
	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
	"github.com/mirabelle514/LovingPaws/internal/platform/logger"
	"github.com/mirabelle514/LovingPaws/internal/ports/cloud"
)

// fakeCloud registra las operaciones en orden y sirve de origen para Pull.
type fakeCloud struct {
	ops        []string
	tables     map[string][]cloud.Record
	failInsert bool
}

func (f *fakeCloud) Insert(_ context.Context, table, id string, _ json.RawMessage) error {
	if f.failInsert {
		return errors.New("cloud down")
	}
	f.ops = append(f.ops, fmt.Sprintf("INSERT %s %s", table, id))
	return nil
}

func (f *fakeCloud) Update(_ context.Context, table, id string, _ json.RawMessage) error {
	f.ops = append(f.ops, fmt.Sprintf("UPDATE %s %s", table, id))
	return nil
}

func (f *fakeCloud) Delete(_ context.Context, table, id string) error {
	f.ops = append(f.ops, fmt.Sprintf("DELETE %s %s", table, id))
	return nil
}

func (f *fakeCloud) Fetch(_ context.Context, table string) ([]cloud.Record, error) {
	return f.tables[table], nil
}

type engineFixture struct {
	engine  *Engine
	cloud   *fakeCloud
	queue   *sqlite.QueueRepo
	pets    *sqlite.PetsRepo
	entries *sqlite.EntriesRepo
	users   *sqlite.UsersRepo
}

func newFixture(t *testing.T) engineFixture {
	t.Helper()
	store, err := sqlite.Open(":memory:", logger.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	fc := &fakeCloud{tables: map[string][]cloud.Record{}}
	p := sqlite.NewPetsRepo(store)
	e := sqlite.NewEntriesRepo(store)
	u := sqlite.NewUsersRepo(store)
	q := sqlite.NewQueueRepo(store)
	return engineFixture{
		engine:  NewEngine(q, fc, p, e, u, logger.Nop()),
		cloud:   fc,
		queue:   q,
		pets:    p,
		entries: e,
		users:   u,
	}
}

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func testPet(id string, ts time.Time) pets.Pet {
	return pets.Pet{
		ID: id, Name: "Firulais", Type: "Dog",
		HealthScore: 100, LastCheckup: "Never",
		CreatedAt: ts, UpdatedAt: ts,
	}
}

func TestRunOnce_ReplaysInsertThenDeleteInOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if err := fx.pets.Create(ctx, testPet("p1", baseTime)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := fx.pets.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err := fx.engine.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if res.Pushed != 2 || res.Failed != 0 {
		t.Fatalf("expected 2 pushed, got %+v", res)
	}

	want := []string{"INSERT pets p1", "DELETE pets p1"}
	if len(fx.cloud.ops) != len(want) {
		t.Fatalf("expected %d ops, got %v", len(want), fx.cloud.ops)
	}
	for i, op := range want {
		if fx.cloud.ops[i] != op {
			t.Fatalf("op %d: expected %q, got %q", i, op, fx.cloud.ops[i])
		}
	}

	pending, err := fx.queue.GetUnsynced(ctx)
	if err != nil {
		t.Fatalf("get unsynced: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty queue, got %d items", len(pending))
	}
}

func TestRunOnce_FailedItemStaysPending(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.cloud.failInsert = true

	if err := fx.pets.Create(ctx, testPet("p1", baseTime)); err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := fx.engine.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if res.Pushed != 0 || res.Failed != 1 {
		t.Fatalf("expected 1 failed, got %+v", res)
	}

	pending, _ := fx.queue.GetUnsynced(ctx)
	if len(pending) != 1 {
		t.Fatalf("expected item still pending, got %d", len(pending))
	}

	// la nube vuelve: la próxima pasada lo drena
	fx.cloud.failInsert = false
	res, err = fx.engine.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run once retry: %v", err)
	}
	if res.Pushed != 1 {
		t.Fatalf("expected retry push, got %+v", res)
	}
}

func TestRunOnce_MarksRecordSynced(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if err := fx.pets.Create(ctx, testPet("p1", baseTime)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.engine.RunOnce(ctx); err != nil {
		t.Fatalf("run once: %v", err)
	}

	p, err := fx.pets.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.SyncedToCloud {
		t.Fatal("expected pet marked synced after push")
	}
}

func TestPull_NewerCloudPetWins(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if err := fx.pets.Create(ctx, testPet("p1", baseTime)); err != nil {
		t.Fatalf("create: %v", err)
	}

	remote := testPet("p1", baseTime)
	remote.Name = "Firu Cloud"
	data, _ := json.Marshal(remote)
	fx.cloud.tables["pets"] = []cloud.Record{
		{ID: "p1", Data: data, UpdatedAt: baseTime.Add(time.Hour)},
	}

	if err := fx.engine.Pull(ctx); err != nil {
		t.Fatalf("pull: %v", err)
	}

	p, err := fx.pets.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Firu Cloud" {
		t.Fatalf("expected cloud copy applied, got name %q", p.Name)
	}
	if !p.SyncedToCloud {
		t.Fatal("pulled record should be marked synced")
	}
}

func TestPull_OlderCloudPetIsIgnored(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if err := fx.pets.Create(ctx, testPet("p1", baseTime)); err != nil {
		t.Fatalf("create: %v", err)
	}

	remote := testPet("p1", baseTime)
	remote.Name = "Stale"
	data, _ := json.Marshal(remote)
	fx.cloud.tables["pets"] = []cloud.Record{
		{ID: "p1", Data: data, UpdatedAt: baseTime.Add(-time.Hour)},
	}

	if err := fx.engine.Pull(ctx); err != nil {
		t.Fatalf("pull: %v", err)
	}

	p, _ := fx.pets.GetByID(ctx, "p1")
	if p.Name != "Firulais" {
		t.Fatalf("local copy should win, got name %q", p.Name)
	}
}

func TestPull_UnknownPetIsCreated(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	remote := testPet("p9", baseTime)
	data, _ := json.Marshal(remote)
	fx.cloud.tables["pets"] = []cloud.Record{
		{ID: "p9", Data: data, UpdatedAt: baseTime},
	}

	if err := fx.engine.Pull(ctx); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if _, err := fx.pets.GetByID(ctx, "p9"); err != nil {
		t.Fatalf("expected pulled pet to exist: %v", err)
	}
}

func TestPull_ExistingEntryIsNeverOverwritten(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if err := fx.pets.Create(ctx, testPet("p1", baseTime)); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	local := entries.HealthEntry{
		ID: "e1", PetID: "p1", Type: entries.TypeSymptom,
		Title: "Local title", Date: "2025-06-01",
		Severity: entries.SeverityMild, CreatedAt: baseTime,
	}
	if err := fx.entries.Create(ctx, local); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	remote := local
	remote.Title = "Cloud title"
	data, _ := json.Marshal(remote)
	fx.cloud.tables["health_entries"] = []cloud.Record{
		{ID: "e1", Data: data, UpdatedAt: baseTime.Add(time.Hour)},
	}

	if err := fx.engine.Pull(ctx); err != nil {
		t.Fatalf("pull: %v", err)
	}

	got, err := fx.entries.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.Title != "Local title" {
		t.Fatalf("entries are immutable across devices, got title %q", got.Title)
	}
}
