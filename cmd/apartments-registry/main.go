// main is the entry point of the apartments registry.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Open the configured storage backend
//  4. Build the registry and seed the example records
//  5. Run the text menu on stdin/stdout in a separate goroutine
//  6. Stop when the operator exits, input ends, or an OS signal arrives
//
// RUNNING:
//
//	go run ./cmd/apartments-registry --config=config/local.yaml
//
// or with no config file at all (JSON storage in ./data.json):
//
//	go run ./cmd/apartments-registry
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/apartments-registry/internal/config"
	"github.com/aanand-mishra/apartments-registry/internal/menu"
	"github.com/aanand-mishra/apartments-registry/internal/registry"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/storage/csvfile"
	"github.com/aanand-mishra/apartments-registry/internal/storage/jsonfile"
	"github.com/aanand-mishra/apartments-registry/internal/storage/sqlite"
	"github.com/aanand-mishra/apartments-registry/internal/types"
)

func main() {
	cfg := config.MustLoad()

	// Logs go to stderr so they never interleave with the menu on stdout.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting apartments-registry",
		slog.String("env", cfg.Env),
		slog.String("storage_backend", cfg.Storage.Backend),
	)

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	log.Info("storage initialised", slog.String("location", store.Location()))

	reg := registry.New()
	if !cfg.SkipSeed {
		seedExample(reg)
	}

	console := menu.NewConsole(os.Stdin, os.Stdout)
	finished := make(chan error, 1)
	go func() {
		finished <- menu.Main(reg, store).Run(console)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-finished:
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("menu stopped", slog.String("error", err.Error()))
			return
		}
		log.Info("session ended")
	case sig := <-sigs:
		log.Info("stopped by signal", slog.String("signal", sig.String()))
	}
}

// openStorage returns the backend named in cfg and a function releasing it.
func openStorage(cfg *config.Config) (storage.Storage, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return jsonfile.New(cfg), noop, nil
	case config.BackendCSV:
		return csvfile.New(cfg), noop, nil
	case config.BackendSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return nil, noop, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close storage", slog.String("error", err.Error()))
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// seedExample registers the example resident and apartment every session
// starts with.
func seedExample(reg *registry.Registry) {
	if err := reg.Residents.Add(&types.Resident{FullName: "Ivan Ivanov", Age: 30, Phone: "123-45-67"}); err != nil {
		slog.Warn("seed resident skipped", slog.String("error", err.Error()))
	}
	if err := reg.Apartments.Add(&types.Apartment{ApartmentNumber: "101", Floor: 1, Area: 50.0, NumRooms: 2}); err != nil {
		slog.Warn("seed apartment skipped", slog.String("error", err.Error()))
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
