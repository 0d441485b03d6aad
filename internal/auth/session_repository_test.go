package auth

import (
	"testing"
)

func TestSessionRepository_Singleton(t *testing.T) {
	db := testDB(t)
	repo := NewSessionRepository(db)
	ctx := t.Context()

	user := seedTestUser(t, db, "session@example.com", "pw")
	other := seedTestUser(t, db, "other@example.com", "pw")

	// Empty database: no session row yet
	id, err := repo.CurrentUserID(ctx)
	if err != nil {
		t.Fatalf("CurrentUserID() error = %v", err)
	}
	if id != nil {
		t.Errorf("CurrentUserID() = %v, want nil", *id)
	}

	// Set, then overwrite, then clear: the row count must stay at one.
	if err := repo.SetCurrentUser(ctx, &user.ID); err != nil {
		t.Fatalf("SetCurrentUser() error = %v", err)
	}
	if err := repo.SetCurrentUser(ctx, &other.ID); err != nil {
		t.Fatalf("second SetCurrentUser() error = %v", err)
	}

	id, err = repo.CurrentUserID(ctx)
	if err != nil {
		t.Fatalf("CurrentUserID() error = %v", err)
	}
	if id == nil || *id != other.ID {
		t.Errorf("CurrentUserID() = %v, want %d", id, other.ID)
	}

	var rows int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM session").Scan(&rows); err != nil {
		t.Fatalf("counting session rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("session rows = %d, want 1", rows)
	}

	if err := repo.SetCurrentUser(ctx, nil); err != nil {
		t.Fatalf("SetCurrentUser(nil) error = %v", err)
	}
	id, err = repo.CurrentUserID(ctx)
	if err != nil {
		t.Fatalf("CurrentUserID() error = %v", err)
	}
	if id != nil {
		t.Errorf("CurrentUserID() after sign-out = %v, want nil", *id)
	}
}

func TestSessionRepository_UserDeletionClearsSession(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionRepository(db)
	users := NewUserRepository(db)
	ctx := t.Context()

	user := seedTestUser(t, db, "doomed@example.com", "pw")
	if err := sessions.SetCurrentUser(ctx, &user.ID); err != nil {
		t.Fatalf("SetCurrentUser() error = %v", err)
	}

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// ON DELETE SET NULL must clear the reference.
	id, err := sessions.CurrentUserID(ctx)
	if err != nil {
		t.Fatalf("CurrentUserID() error = %v", err)
	}
	if id != nil {
		t.Errorf("CurrentUserID() = %v, want nil after user deletion", *id)
	}
}
