// TripFlow - local-first trip planning storage.
//
// This binary is the operational companion to the TripFlow data layer:
// it opens the on-device SQLite store, drives schema migrations, and
// offers a handful of maintenance commands. The mobile application
// links the internal packages directly; this entry point exists for
// development and support work against a store file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/YaelBusser/TripFlow-sub000/migrations"

	"github.com/YaelBusser/TripFlow-sub000/internal/auth"
	"github.com/YaelBusser/TripFlow-sub000/internal/checklist"
	"github.com/YaelBusser/TripFlow-sub000/internal/gallery"
	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/config"
	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/logging"
	"github.com/YaelBusser/TripFlow-sub000/internal/step"
	"github.com/YaelBusser/TripFlow-sub000/internal/trip"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("no command given")
	}
	command := args[0]

	log := logging.Default()

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("starting TripFlow",
		"version", version,
		"commit", commit,
		"build_date", date,
		"command", command,
	)

	provider := database.NewProvider(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	defer func() {
		if err := provider.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	switch command {
	case "migrate":
		return runMigrate(ctx, provider, log)
	case "rollback":
		return runRollback(ctx, provider, log)
	case "status":
		return runStatus(ctx, provider)
	case "health":
		return runHealth(ctx, provider, log)
	case "seed":
		return runSeed(ctx, provider, log)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// runMigrate brings the store up to the latest schema version. The
// provider already migrates on first open, so this mostly confirms.
func runMigrate(ctx context.Context, provider *database.Provider, log *logging.Logger) error {
	db, err := provider.Get(ctx)
	if err != nil {
		return err
	}

	applied, _, err := db.GetMigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}
	log.Info("store is up to date", "path", db.Path(), "applied", len(applied))
	return nil
}

// runRollback reverts the most recently applied migration.
func runRollback(ctx context.Context, provider *database.Provider, log *logging.Logger) error {
	db, err := provider.Get(ctx)
	if err != nil {
		return err
	}

	if err := db.MigrateDown(ctx); err != nil {
		return fmt.Errorf("rolling back: %w", err)
	}
	log.Info("rolled back latest migration", "path", db.Path())
	return nil
}

// runStatus prints the migration ledger.
func runStatus(ctx context.Context, provider *database.Provider) error {
	db, err := provider.Get(ctx)
	if err != nil {
		return err
	}

	applied, pending, err := db.GetMigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}

	fmt.Printf("store: %s\n", db.Path())
	fmt.Println("applied:")
	for _, m := range applied {
		fmt.Printf("  %s  applied %s\n", m.Version, m.AppliedAt.Format(time.RFC3339))
	}
	if len(pending) > 0 {
		fmt.Println("pending:")
		for _, m := range pending {
			fmt.Printf("  %s  %s\n", m.Version, m.Name)
		}
	}
	return nil
}

// runHealth pings the store.
func runHealth(ctx context.Context, provider *database.Provider, log *logging.Logger) error {
	db, err := provider.Get(ctx)
	if err != nil {
		return err
	}

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	log.Info("store is healthy", "path", db.Path())
	return nil
}

// runSeed populates an empty store with a demo account and trip so
// the application has something to show during development.
func runSeed(ctx context.Context, provider *database.Provider, log *logging.Logger) error {
	db, err := provider.Get(ctx)
	if err != nil {
		return err
	}

	users := auth.NewUserRepository(db)
	if n, err := users.Count(ctx); err != nil {
		return fmt.Errorf("counting users: %w", err)
	} else if n > 0 {
		return fmt.Errorf("store already has %d user(s), refusing to seed", n)
	}

	svc := auth.NewService(users, auth.NewSessionRepository(db), log.Logger)
	account, err := svc.SignUp(ctx, "demo@tripflow.local", "demo-password")
	if err != nil {
		return fmt.Errorf("seeding account: %w", err)
	}

	trips := trip.NewSQLiteRepository(db)
	tr := &trip.Trip{
		UserID:      account.ID,
		Title:       "Italy Tour",
		Destination: "Italy",
		Description: "Rome, Florence and Venice in ten days",
	}
	if err := trips.Create(ctx, tr); err != nil {
		return fmt.Errorf("seeding trip: %w", err)
	}

	participants := trip.NewSQLiteParticipantRepository(db)
	err = participants.Create(ctx, &trip.Participant{
		TripID: tr.ID, Name: "Marco", Email: "marco@example.com",
	})
	if err != nil {
		return fmt.Errorf("seeding participant: %w", err)
	}

	steps := step.NewSQLiteRepository(db)
	journal := step.NewSQLiteJournalRepository(db)
	var lastStep *step.Step
	for _, name := range []string{"Rome", "Florence", "Venice"} {
		s := &step.Step{TripID: tr.ID, Name: name, Latitude: 41.9, Longitude: 12.5}
		if err := steps.Create(ctx, s); err != nil {
			return fmt.Errorf("seeding step %s: %w", name, err)
		}
		lastStep = s
	}
	err = journal.Create(ctx, &step.JournalEntry{
		StepID: lastStep.ID, Content: "Gondola booked for Tuesday",
	})
	if err != nil {
		return fmt.Errorf("seeding journal entry: %w", err)
	}

	tripItems := checklist.NewTripItems(db)
	for _, text := range []string{"Passport", "Travel insurance", "Charger"} {
		if err := tripItems.Add(ctx, &checklist.Item{OwnerID: tr.ID, Text: text}); err != nil {
			return fmt.Errorf("seeding checklist item: %w", err)
		}
	}
	stepItems := checklist.NewStepItems(db)
	err = stepItems.Add(ctx, &checklist.Item{OwnerID: lastStep.ID, Text: "Vaporetto tickets"})
	if err != nil {
		return fmt.Errorf("seeding step checklist item: %w", err)
	}

	tripImages := gallery.NewTripImages(db)
	err = tripImages.Add(ctx, &gallery.Image{OwnerID: tr.ID, URI: "seed-cover.jpg"})
	if err != nil {
		return fmt.Errorf("seeding cover image: %w", err)
	}

	log.Info("seeded demo data", "account", account.Email, "trip", tr.Title)
	return nil
}

// getConfigPath returns the configuration file path.
// Checks TRIPFLOW_CONFIG environment variable first, then uses default.
func getConfigPath() string {
	if path := os.Getenv("TRIPFLOW_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `TripFlow storage tool

Usage: tripflow <command>

Commands:
  migrate   apply pending schema migrations
  rollback  revert the most recent migration
  status    show applied and pending migrations
  health    check the store can be reached
  seed      populate an empty store with demo data

Configuration is read from %s or $TRIPFLOW_CONFIG.
`, defaultConfigPath)
}
