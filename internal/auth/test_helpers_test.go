package auth

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the auth schema applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use a temp file so WAL mode works (in-memory doesn't support it)
	f, err := os.CreateTemp("", "auth-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schemaSQL := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			salt TEXT NOT NULL,
			created_at INTEGER NOT NULL
		) STRICT;

		CREATE TABLE session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_user_id INTEGER REFERENCES users(id) ON DELETE SET NULL
		) STRICT;
	`
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("applying auth schema: %v", err)
	}

	return db
}

// testService builds a Service over a fresh test database.
func testService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()

	db := testDB(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewService(NewUserRepository(db), NewSessionRepository(db), logger)
	return svc, db
}

// seedTestUser inserts a user with the given email and password.
func seedTestUser(t *testing.T, db *sql.DB, email, password string) *User {
	t.Helper()

	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("generating salt: %v", err)
	}

	user := &User{
		Email:        NormalizeEmail(email),
		PasswordHash: HashPassword(salt, password),
		Salt:         salt,
	}
	if err := NewUserRepository(db).Create(t.Context(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}
