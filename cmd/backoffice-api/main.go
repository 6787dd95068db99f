package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dkrasnov/backoffice/internal/config"
	"github.com/dkrasnov/backoffice/internal/logger"
	"github.com/dkrasnov/backoffice/internal/router"
	"github.com/dkrasnov/backoffice/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	if err := deps.Storage.Bootstrap(cfg); err != nil {
		logger.Log.Error("first-boot seeding failed", "error", err)
		os.Exit(1)
	}

	// Phase one: load the trusted-origin set to completion. Serving before
	// this finishes would evaluate CORS against an empty trust set, so a
	// failed load aborts startup instead of degrading silently.
	if err := deps.OriginCache.Update(); err != nil {
		logger.Log.Error("refusing to start: trusted origin load failed", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("trusted origins loaded", "entries", deps.OriginCache.Size())

	// Phase two: bind the listener.
	r := router.New(deps)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Public.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Log.Info("server started", "port", cfg.Public.Port, "env", cfg.Public.Env)
	if err := srv.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
