package trip

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/YaelBusser/TripFlow-sub000/internal/auth"
	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
	_ "github.com/YaelBusser/TripFlow-sub000/migrations"
)

// testDB opens a temp-file database and runs the real migrations so
// tests exercise the production schema, including its cascades.
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

// seedUser creates a user row so trips have a valid owner.
func seedUser(t *testing.T, db *database.DB, email string) int64 {
	t.Helper()

	users := auth.NewUserRepository(db)
	salt, err := auth.NewSalt()
	if err != nil {
		t.Fatalf("failed to generate salt: %v", err)
	}
	u := &auth.User{
		Email:        email,
		Salt:         salt,
		PasswordHash: auth.HashPassword(salt, "hunter22"),
	}
	if err := users.Create(t.Context(), u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u.ID
}

// seedTrip creates a minimal trip owned by userID.
func seedTrip(t *testing.T, db *database.DB, userID int64, title string) *Trip {
	t.Helper()

	repo := NewSQLiteRepository(db)
	tr := &Trip{UserID: userID, Title: title, Destination: "Somewhere"}
	if err := repo.Create(context.Background(), tr); err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}
	return tr
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
