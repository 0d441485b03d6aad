package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// SessionRepository persists the singleton session row recording which
// user, if any, is currently signed in.
type SessionRepository interface {
	// SetCurrentUser records the signed-in user. A nil userID signs out.
	SetCurrentUser(ctx context.Context, userID *int64) error

	// CurrentUserID returns the signed-in user's id, or nil when no one
	// is signed in (including when the session row does not exist yet).
	CurrentUserID(ctx context.Context) (*int64, error)
}

// SQLiteSessionRepository implements SessionRepository using SQLite.
type SQLiteSessionRepository struct {
	db database.Executor
}

// NewSessionRepository creates a new SQLite-backed session repository.
func NewSessionRepository(db database.Executor) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

// SetCurrentUser upserts the single session row. The schema pins the row
// id to 1, so repeated calls can never grow the table.
func (r *SQLiteSessionRepository) SetCurrentUser(ctx context.Context, userID *int64) error {
	var value sql.NullInt64
	if userID != nil {
		value = sql.NullInt64{Int64: *userID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session (id, current_user_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET current_user_id = excluded.current_user_id`,
		value,
	)
	if err != nil {
		return fmt.Errorf("setting current user: %w", err)
	}
	return nil
}

// CurrentUserID returns the signed-in user's id, or nil.
func (r *SQLiteSessionRepository) CurrentUserID(ctx context.Context) (*int64, error) {
	var value sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT current_user_id FROM session WHERE id = 1",
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	if !value.Valid {
		return nil, nil
	}
	id := value.Int64
	return &id, nil
}
