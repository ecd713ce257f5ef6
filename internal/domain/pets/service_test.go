package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// repo en memoria con la misma semántica que el adapter real.
type testRepo struct {
	pets map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{pets: map[string]Pet{}}
}

func (r *testRepo) Create(_ context.Context, p Pet) error {
	if _, ok := r.pets[p.ID]; ok {
		return errors.New("duplicate id")
	}
	r.pets[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, id string, patch Patch) error {
	p, ok := r.pets[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Breed != nil {
		p.Breed = *patch.Breed
	}
	if patch.HealthScore != nil {
		p.HealthScore = *patch.HealthScore
	}
	if patch.LastCheckup != nil {
		p.LastCheckup = *patch.LastCheckup
	}
	if patch.ImageSet {
		if patch.Image == nil {
			p.Image = ""
		} else {
			p.Image = *patch.Image
		}
	}
	p.SyncedToCloud = false
	r.pets[id] = p
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(_ context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pets[id]; !ok {
		return ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), CreateInput{Name: "  Firulais  ", Type: "Dog"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Name != "Firulais" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.HealthScore != 100 || p.LastCheckup != "Never" {
		t.Fatalf("expected fresh defaults, got score=%d checkup=%q", p.HealthScore, p.LastCheckup)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatal("created_at and updated_at should match on create")
	}
}

func TestCreate_RequiresNameAndType(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Type: "Dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "Firu"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without type, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "   ", Type: "Dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestUpdate_EmptyPatchIsInvalid(t *testing.T) {
	svc, _ := newTestService()

	p, _ := svc.Create(context.Background(), CreateInput{Name: "Firu", Type: "Dog"})
	if _, err := svc.Update(context.Background(), p.ID, Patch{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdate_ScoreBounds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p, _ := svc.Create(ctx, CreateInput{Name: "Firu", Type: "Dog"})

	for _, bad := range []int{-1, 101} {
		score := bad
		if _, err := svc.Update(ctx, p.ID, Patch{HealthScore: &score}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("score %d: expected ErrInvalidInput, got %v", bad, err)
		}
	}

	ok := 42
	got, err := svc.Update(ctx, p.ID, Patch{HealthScore: &ok})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.HealthScore != 42 {
		t.Fatalf("expected score applied, got %d", got.HealthScore)
	}
}

func TestUpdate_MissingIDReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	name := "x"
	if _, err := svc.Update(context.Background(), "nope", Patch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_BlankID(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.Delete(context.Background(), "   "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank id, got %v", err)
	}
}
