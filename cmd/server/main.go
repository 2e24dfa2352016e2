package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"reportengine.dev/internal/app"
	"reportengine.dev/internal/logging"
	"reportengine.dev/internal/runstore"
	"reportengine.dev/internal/webui"
)

func main() {
	cfg := app.DefaultConfig()
	var configPath string

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development|staging|production)")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for per-run artifacts")
	flag.DurationVar(&cfg.Retention, "retention", cfg.Retention, "How long finished runs are kept")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file (overrides flags)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if configPath != "" {
		loaded, err := app.LoadConfigFile(configPath, cfg)
		if err != nil {
			logger.Error("failed to load config file", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	store, err := runstore.New(cfg.DataDir, cfg.Retention)
	if err != nil {
		logger.Error("failed to initialize run store", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	application := &app.Application{
		Config: cfg,
		Logger: logger,
		Runs:   store,
	}

	ui, err := webui.NewWebUI(application)
	if err != nil {
		logger.Error("failed to initialize web ui", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      ui.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server",
		"addr", srv.Addr,
		"env", cfg.Env,
		"data_dir", cfg.DataDir,
		"retention", cfg.Retention.String())
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}
