package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
)

func TestQueue_FIFOWithEqualTimestamps(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)
	ctx := context.Background()

	// mismo timestamp para los tres: el desempate es por rowid
	st.now = func() time.Time { return t0 }

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Enqueue(ctx, "pets", id, syncqueue.OpInsert, map[string]any{"id": id}); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	items, err := repo.GetUnsynced(ctx)
	if err != nil {
		t.Fatalf("get unsynced: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].RecordID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, items[i].RecordID)
		}
	}
}

func TestQueue_MarkSynced(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)
	ctx := context.Background()

	if err := repo.Enqueue(ctx, "pets", "p1", syncqueue.OpInsert, map[string]any{"id": "p1"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	items, _ := repo.GetUnsynced(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(items))
	}

	if err := repo.MarkSynced(ctx, items[0].ID); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	items, _ = repo.GetUnsynced(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty queue, got %d", len(items))
	}
}

func TestQueue_MarkSyncedUnknownID(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)

	err := repo.MarkSynced(context.Background(), "nope")
	if !errors.Is(err, syncqueue.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestQueue_EnqueueRejectsInvalid(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)
	ctx := context.Background()

	cases := []struct {
		name     string
		table    string
		recordID string
		op       syncqueue.Operation
	}{
		{"unknown table", "accounts", "x", syncqueue.OpInsert},
		{"empty record id", "pets", "", syncqueue.OpInsert},
		{"bad operation", "pets", "x", syncqueue.Operation("UPSERT")},
	}
	for _, tc := range cases {
		if err := repo.Enqueue(ctx, tc.table, tc.recordID, tc.op, nil); !errors.Is(err, syncqueue.ErrInvalidItem) {
			t.Fatalf("%s: expected ErrInvalidItem, got %v", tc.name, err)
		}
	}
}

func TestQueue_DeleteItemCarriesNoSnapshot(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)
	ctx := context.Background()

	if err := repo.Enqueue(ctx, "pets", "p1", syncqueue.OpDelete, nil); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	items, _ := repo.GetUnsynced(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Data != nil {
		t.Fatalf("expected null snapshot for DELETE, got %s", items[0].Data)
	}
}

func TestQueue_CompositeItemID(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)
	ctx := context.Background()

	st.now = func() time.Time { return t0 }
	if err := repo.Enqueue(ctx, "users", "u1", syncqueue.OpInsert, map[string]any{"id": "u1"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	items, _ := repo.GetUnsynced(ctx)
	if !strings.HasPrefix(items[0].ID, "users_u1_") {
		t.Fatalf("unexpected item id %q", items[0].ID)
	}
}

func TestQueue_MarkRecordSyncedValidatesTable(t *testing.T) {
	st := newTestStore(t)
	repo := NewQueueRepo(st)

	err := repo.MarkRecordSynced(context.Background(), "accounts", "x")
	if !errors.Is(err, syncqueue.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}

	// registro inexistente (op DELETE ya aplicada) no es error
	if err := repo.MarkRecordSynced(context.Background(), "pets", "gone"); err != nil {
		t.Fatalf("expected nil for missing record, got %v", err)
	}
}
