package step

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/YaelBusser/TripFlow-sub000/internal/auth"
	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
	"github.com/YaelBusser/TripFlow-sub000/internal/trip"
	_ "github.com/YaelBusser/TripFlow-sub000/migrations"
)

// testDB opens a migrated temp-file database.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(t.Context()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTrip creates a user and a trip to hang steps off.
func seedTrip(t *testing.T, db *database.DB) *trip.Trip {
	t.Helper()

	ctx := context.Background()
	users := auth.NewUserRepository(db)
	salt, err := auth.NewSalt()
	if err != nil {
		t.Fatalf("failed to generate salt: %v", err)
	}
	u := &auth.User{
		Email:        "alice@example.com",
		Salt:         salt,
		PasswordHash: auth.HashPassword(salt, "hunter22"),
	}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	trips := trip.NewSQLiteRepository(db)
	tr := &trip.Trip{UserID: u.ID, Title: "Italy Tour", Destination: "Italy"}
	if err := trips.Create(ctx, tr); err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}
	return tr
}

// seedStep creates a step in the given trip.
func seedStep(t *testing.T, repo *SQLiteRepository, tripID int64, name string) *Step {
	t.Helper()

	s := &Step{TripID: tripID, Name: name, Latitude: 41.9, Longitude: 12.5}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("failed to seed step %q: %v", name, err)
	}
	return s
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
