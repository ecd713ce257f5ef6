package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mirabelle514/LovingPaws/internal/adapters/cloud/postgres"
	"github.com/mirabelle514/LovingPaws/internal/adapters/storage/sqlite"
	"github.com/mirabelle514/LovingPaws/internal/config"
	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
	"github.com/mirabelle514/LovingPaws/internal/domain/health"
	"github.com/mirabelle514/LovingPaws/internal/domain/pets"
	"github.com/mirabelle514/LovingPaws/internal/domain/users"
	"github.com/mirabelle514/LovingPaws/internal/platform/logger"
	"github.com/mirabelle514/LovingPaws/internal/router"
	"github.com/mirabelle514/LovingPaws/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("bad config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(cfg.DBPath, log)
	if err != nil {
		log.Error("open store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		log.Error("init store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	petsRepo := sqlite.NewPetsRepo(store)
	entriesRepo := sqlite.NewEntriesRepo(store)
	usersRepo := sqlite.NewUsersRepo(store)
	queueRepo := sqlite.NewQueueRepo(store)

	petsSvc := pets.NewService(petsRepo)
	entriesSvc := entries.NewService(entriesRepo)
	usersSvc := users.NewService(usersRepo)
	scores := health.NewRefresher(petsSvc, entriesSvc)

	var engine *sync.Engine
	if cfg.CloudDSN != "" {
		mirror, err := postgres.New(ctx, cfg.CloudDSN)
		if err != nil {
			log.Error("cloud mirror unreachable", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		if err := mirror.EnsureSchema(ctx); err != nil {
			log.Error("cloud mirror schema", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		engine = sync.NewEngine(queueRepo, mirror, petsRepo, entriesRepo, usersRepo, log)
		go engine.Run(ctx, cfg.SyncInterval())
		log.Info("sync engine started", map[string]any{"interval": cfg.SyncInterval().String()})
	} else {
		log.Info("running local-only, no cloud mirror configured", nil)
	}

	handler := router.New(router.Deps{
		Log:     log,
		Store:   store,
		Pets:    petsSvc,
		Entries: entriesSvc,
		Users:   usersSvc,
		Scores:  scores,
		Queue:   queueRepo,
		Engine:  engine,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", map[string]any{"addr": cfg.Addr()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", map[string]any{"error": err.Error()})
	}
}
