package main

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/TWRT/ops-dashboard/internal/api"
	"github.com/TWRT/ops-dashboard/internal/client/strapi"
	"github.com/TWRT/ops-dashboard/internal/config"
	"github.com/TWRT/ops-dashboard/internal/logging"
	"github.com/TWRT/ops-dashboard/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config", "err", err)
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.Log.Level
	logger := logging.New(os.Stderr, opts)

	db, err := repository.InitDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Error initializing DB", "path", cfg.Database.Path, "err", err)
	}
	defer db.Close()

	backend := strapi.NewClient(cfg.Backend.URL, cfg.Backend.PageSize, cfg.Backend.Timeout, logger)

	router, err := api.SetupRouter(db, backend, cfg.RolePolicy(), logger)
	if err != nil {
		logger.Fatal("Error setting up router", "err", err)
	}

	logger.Info("Server running", "addr", cfg.Server.Addr, "backend", cfg.Backend.URL)
	logger.Info("Endpoints: /auth/login /session /dashboard /todos /kanban /projects /timeline /export/*")

	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		logger.Fatal("Error starting server", "err", err)
	}
}
