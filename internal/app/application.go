// Package app wires together the dependencies shared by the HTTP handlers.
package app

import (
	"log/slog"

	"reportengine.dev/internal/runstore"
)

// Application holds the dependencies for our HTTP handlers, helpers, and
// middleware: the resolved configuration, the structured logger, and the run
// store backing upload/download lifecycles.
type Application struct {
	Config Config
	Logger *slog.Logger
	Runs   *runstore.Store
}

// IsProduction reports whether debug surfaces should be hidden.
func (a *Application) IsProduction() bool {
	return a.Config.Env == "production"
}
