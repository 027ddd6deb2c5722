package cli

import (
	"context"
	"log/slog"

	"github.com/rdmitr/agentchat/internal/client"
	"github.com/rdmitr/agentchat/internal/config"
	"github.com/rdmitr/agentchat/internal/pipeline"
	"github.com/rdmitr/agentchat/internal/registry"
	"github.com/rdmitr/agentchat/internal/repository"
	"github.com/rdmitr/agentchat/internal/session"
	"github.com/rdmitr/agentchat/internal/upload"
	"github.com/rdmitr/agentchat/storage"
)

// app wires the store, repository, manager, pipeline, tracker and registry
// together for one command invocation.
type app struct {
	cfg      *config.Config
	store    *storage.Store
	repo     *repository.Repository
	manager  *session.Manager
	pipeline *pipeline.Pipeline
	tracker  *upload.Tracker
	registry *registry.Registry
}

// openApp loads config and the stored sessions. A persistence failure is
// non-fatal: the app runs with an empty in-memory history.
func openApp(ctx context.Context) *app {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("session store unavailable, history will not be saved", "error", err)
		store = nil
	}

	var repo *repository.Repository
	if store != nil {
		repo = repository.New(store)
	} else {
		repo = repository.New(nil)
	}
	repo.Load(ctx)

	inference := client.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)

	a := &app{
		cfg:      cfg,
		store:    store,
		repo:     repo,
		manager:  session.NewManager(repo),
		pipeline: pipeline.New(repo, inference, cfg.ChatLogging),
		tracker:  upload.NewTracker(cfg.UploadBaseURL, cfg.RequestTimeout, repo),
		registry: registry.New(),
	}
	return a
}

// close flushes pending saves and releases the store.
func (a *app) close() {
	a.repo.Flush()
	a.repo.Close()
	if a.store != nil {
		_ = a.store.Close()
	}
}
