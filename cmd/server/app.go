package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/config"
	"github.com/phrazzld/bgtasks/internal/sampledata"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	clock  clock.Clock

	postStore sampledata.PostStore

	// closeClock releases the clock's scheduler; nil for injected clocks.
	closeClock func()
}

// newApplication creates an application backed by the real clock and the
// seeded in-memory post store.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	rc := clock.NewReal()
	app := newApplicationWithClock(cfg, logger, rc)
	app.closeClock = rc.Close
	return app
}

func newApplicationWithClock(cfg *config.Config, logger *slog.Logger, clk clock.Clock) *application {
	return &application{
		config:    cfg,
		logger:    logger,
		clock:     clk,
		postStore: sampledata.NewMemoryPostStore(sampledata.SeedPosts()),
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.closeClock != nil {
		app.closeClock()
	}
	app.logger.Info("Application shutdown completed")
}
