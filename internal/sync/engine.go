// Package sync drena la cola offline hacia el espejo remoto y baja los
// cambios de otros dispositivos. Todo el flujo es best-effort: un item que
// falla queda pendiente para la próxima pasada.
package sync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
	"github.com/mirabelle514/LovingPaws/internal/domain/syncqueue"
	"github.com/mirabelle514/LovingPaws/internal/domain/users"
	"github.com/mirabelle514/LovingPaws/internal/platform/logger"
	"github.com/mirabelle514/LovingPaws/internal/ports/cloud"
)

// Interfaces del lado local que necesita el pull. Las implementan los
// repos sqlite; acá solo se declara lo que el engine consume.
type PetsLocal interface {
	UpsertIfNewer(ctx context.Context, p pets.Pet) error
}

type EntriesLocal interface {
	InsertIfMissing(ctx context.Context, e entries.HealthEntry) error
}

type UsersLocal interface {
	UpsertIfNewer(ctx context.Context, u users.User) error
}

// Result resume una pasada de push.
type Result struct {
	Pushed int `json:"pushed"`
	Failed int `json:"failed"`
}

type Engine struct {
	queue   syncqueue.Repository
	cloud   cloud.Store
	pets    PetsLocal
	entries EntriesLocal
	users   UsersLocal
	log     logger.Logger
}

func NewEngine(queue syncqueue.Repository, cloudStore cloud.Store, p PetsLocal, e EntriesLocal, u UsersLocal, log logger.Logger) *Engine {
	return &Engine{
		queue:   queue,
		cloud:   cloudStore,
		pets:    p,
		entries: e,
		users:   u,
		log:     log,
	}
}

// RunOnce drena la cola en orden FIFO. El orden importa: un INSERT seguido
// de un DELETE del mismo registro debe reproducirse en ese orden.
func (e *Engine) RunOnce(ctx context.Context) (Result, error) {
	items, err := e.queue.GetUnsynced(ctx)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, it := range items {
		if err := e.push(ctx, it); err != nil {
			res.Failed++
			e.log.Warn("push failed", map[string]any{
				"item": it.ID, "op": string(it.Operation), "error": err.Error(),
			})
			continue
		}
		if err := e.queue.MarkSynced(ctx, it.ID); err != nil {
			res.Failed++
			e.log.Warn("mark synced failed", map[string]any{"item": it.ID, "error": err.Error()})
			continue
		}
		if it.Operation != syncqueue.OpDelete {
			if err := e.queue.MarkRecordSynced(ctx, it.TableName, it.RecordID); err != nil {
				e.log.Warn("mark record synced failed", map[string]any{"item": it.ID, "error": err.Error()})
			}
		}
		res.Pushed++
	}

	if res.Pushed > 0 || res.Failed > 0 {
		e.log.Info("push pass done", map[string]any{"pushed": res.Pushed, "failed": res.Failed})
	}
	return res, nil
}

func (e *Engine) push(ctx context.Context, it syncqueue.Item) error {
	switch it.Operation {
	case syncqueue.OpInsert:
		return e.cloud.Insert(ctx, it.TableName, it.RecordID, it.Data)
	case syncqueue.OpUpdate:
		return e.cloud.Update(ctx, it.TableName, it.RecordID, it.Data)
	case syncqueue.OpDelete:
		return e.cloud.Delete(ctx, it.TableName, it.RecordID)
	default:
		return syncqueue.ErrInvalidItem
	}
}

// Pull baja el espejo completo y lo aplica localmente. Pets y users con
// last-write-wins; entries solo se insertan si faltan, nunca se pisan.
func (e *Engine) Pull(ctx context.Context) error {
	if err := e.pullPets(ctx); err != nil {
		return err
	}
	if err := e.pullEntries(ctx); err != nil {
		return err
	}
	return e.pullUsers(ctx)
}

func (e *Engine) pullPets(ctx context.Context) error {
	recs, err := e.cloud.Fetch(ctx, "pets")
	if err != nil {
		return err
	}
	for _, rec := range recs {
		var p pets.Pet
		if err := json.Unmarshal(rec.Data, &p); err != nil {
			e.log.Warn("skipping malformed pet record", map[string]any{"id": rec.ID})
			continue
		}
		if p.ID == "" {
			p.ID = rec.ID
		}
		// el reloj del servidor arbitra el conflicto
		p.UpdatedAt = rec.UpdatedAt
		if err := e.pets.UpsertIfNewer(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) pullEntries(ctx context.Context) error {
	recs, err := e.cloud.Fetch(ctx, "health_entries")
	if err != nil {
		return err
	}
	for _, rec := range recs {
		var he entries.HealthEntry
		if err := json.Unmarshal(rec.Data, &he); err != nil {
			e.log.Warn("skipping malformed entry record", map[string]any{"id": rec.ID})
			continue
		}
		if he.ID == "" {
			he.ID = rec.ID
		}
		if err := e.entries.InsertIfMissing(ctx, he); err != nil {
			// la FK puede fallar si la mascota no llegó todavía
			e.log.Warn("entry pull skipped", map[string]any{"id": he.ID, "error": err.Error()})
		}
	}
	return nil
}

func (e *Engine) pullUsers(ctx context.Context) error {
	recs, err := e.cloud.Fetch(ctx, "users")
	if err != nil {
		return err
	}
	for _, rec := range recs {
		var u users.User
		if err := json.Unmarshal(rec.Data, &u); err != nil {
			e.log.Warn("skipping malformed user record", map[string]any{"id": rec.ID})
			continue
		}
		if u.ID == "" {
			u.ID = rec.ID
		}
		u.UpdatedAt = rec.UpdatedAt
		if err := e.users.UpsertIfNewer(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

// Run ejecuta push+pull cada interval hasta que el contexto muera.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.RunOnce(ctx); err != nil {
				e.log.Error("push pass failed", map[string]any{"error": err.Error()})
			}
			if err := e.Pull(ctx); err != nil {
				e.log.Error("pull pass failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
