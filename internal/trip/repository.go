package trip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// Repository defines persistence operations for trips.
type Repository interface {
	Create(ctx context.Context, t *Trip) error
	GetByID(ctx context.Context, id int64) (*Trip, error)
	ListByUser(ctx context.Context, userID int64) ([]*Trip, error)
	Update(ctx context.Context, id int64, upd Update) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository against SQLite.
type SQLiteRepository struct {
	db database.Executor
}

// NewSQLiteRepository creates a trip repository using the given executor.
func NewSQLiteRepository(db database.Executor) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a trip and fills in its generated ID and CreatedAt.
func (r *SQLiteRepository) Create(ctx context.Context, t *Trip) error {
	if err := t.Validate(); err != nil {
		return err
	}

	t.CreatedAt = time.Now().UnixMilli()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO trips (user_id, title, destination, description,
			start_date, end_date, cover_uri, adventure_started, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Destination, t.Description,
		nullableInt(t.StartDate), nullableInt(t.EndDate),
		nullableString(t.CoverURI), boolToInt(t.AdventureStarted), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read trip id: %w", err)
	}
	t.ID = id

	return nil
}

// GetByID retrieves a single trip, returning ErrTripNotFound when absent.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Trip, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, destination, description,
			start_date, end_date, cover_uri, adventure_started, created_at
		FROM trips WHERE id = ?`, id)

	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip %d: %w", id, err)
	}
	return t, nil
}

// ListByUser returns all trips owned by a user, newest first.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]*Trip, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, destination, description,
			start_date, end_date, cover_uri, adventure_started, created_at
		FROM trips WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}

// Update applies a partial update. A zero Update is a no-op and issues
// no SQL at all.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, upd Update) error {
	var (
		sets []string
		args []any
	)

	if upd.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *upd.Title)
	}
	if upd.Destination != nil {
		sets, args = append(sets, "destination = ?"), append(args, *upd.Destination)
	}
	if upd.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *upd.Description)
	}
	if upd.StartDate != nil {
		sets, args = append(sets, "start_date = ?"), append(args, *upd.StartDate)
	}
	if upd.EndDate != nil {
		sets, args = append(sets, "end_date = ?"), append(args, *upd.EndDate)
	}
	if upd.CoverURI != nil {
		sets, args = append(sets, "cover_uri = ?"), append(args, *upd.CoverURI)
	}
	if upd.AdventureStarted != nil {
		sets, args = append(sets, "adventure_started = ?"), append(args, boolToInt(*upd.AdventureStarted))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE trips SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trip %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip update: %w", err)
	}
	if n == 0 {
		return ErrTripNotFound
	}

	return nil
}

// Delete removes a trip. The schema's ON DELETE CASCADE takes care of
// steps, images, checklist items and participants.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trip %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip delete: %w", err)
	}
	if n == 0 {
		return ErrTripNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (*Trip, error) {
	var (
		t         Trip
		startDate sql.NullInt64
		endDate   sql.NullInt64
		coverURI  sql.NullString
		started   int
	)

	err := s.Scan(&t.ID, &t.UserID, &t.Title, &t.Destination, &t.Description,
		&startDate, &endDate, &coverURI, &started, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		t.StartDate = &startDate.Int64
	}
	if endDate.Valid {
		t.EndDate = &endDate.Int64
	}
	if coverURI.Valid {
		t.CoverURI = &coverURI.String
	}
	t.AdventureStarted = started != 0

	return &t, nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
