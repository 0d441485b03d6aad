package step

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// Repository defines persistence operations for steps.
type Repository interface {
	Create(ctx context.Context, s *Step) error
	GetByID(ctx context.Context, id int64) (*Step, error)
	ListByTrip(ctx context.Context, tripID int64) ([]*Step, error)
	Update(ctx context.Context, id int64, upd Update) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, tripID int64, orderedIDs []int64) error
}

// SQLiteRepository implements Repository against SQLite. It holds the
// full database handle rather than a bare executor because Reorder
// needs its own transaction.
type SQLiteRepository struct {
	db *database.DB
}

// NewSQLiteRepository creates a step repository on the given database.
func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a step at the end of its trip's ordering and fills in
// the generated ID and OrderIndex.
func (r *SQLiteRepository) Create(ctx context.Context, s *Step) error {
	if err := s.Validate(); err != nil {
		return err
	}

	// Append: one past the current highest index, or 0 for the first step.
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_index) + 1, 0) FROM steps WHERE trip_id = ?",
		s.TripID).Scan(&s.OrderIndex)
	if err != nil {
		return fmt.Errorf("failed to compute step order: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO steps (trip_id, name, latitude, longitude,
			start_date, end_date, description, order_index, arrived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.TripID, s.Name, s.Latitude, s.Longitude,
		nullableInt(s.StartDate), nullableInt(s.EndDate),
		s.Description, s.OrderIndex, nullableInt(s.ArrivedAt))
	if err != nil {
		return fmt.Errorf("failed to create step: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read step id: %w", err)
	}
	s.ID = id

	return nil
}

// GetByID retrieves a single step, returning ErrStepNotFound when absent.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Step, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, trip_id, name, latitude, longitude,
			start_date, end_date, description, order_index, arrived_at
		FROM steps WHERE id = ?`, id)

	s, err := scanStep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStepNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get step %d: %w", id, err)
	}
	return s, nil
}

// ListByTrip returns a trip's steps in itinerary order. Ties on
// order_index fall back to start date, then id, so the result is
// stable across calls.
func (r *SQLiteRepository) ListByTrip(ctx context.Context, tripID int64) ([]*Step, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, trip_id, name, latitude, longitude,
			start_date, end_date, description, order_index, arrived_at
		FROM steps WHERE trip_id = ?
		ORDER BY order_index ASC, start_date ASC, id ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []*Step
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

// Update applies a partial update. A zero Update is a no-op and issues
// no SQL at all.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, upd Update) error {
	var (
		sets []string
		args []any
	)

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return ErrInvalidName
		}
		sets, args = append(sets, "name = ?"), append(args, *upd.Name)
	}
	if upd.Latitude != nil {
		sets, args = append(sets, "latitude = ?"), append(args, *upd.Latitude)
	}
	if upd.Longitude != nil {
		sets, args = append(sets, "longitude = ?"), append(args, *upd.Longitude)
	}
	if upd.StartDate != nil {
		sets, args = append(sets, "start_date = ?"), append(args, *upd.StartDate)
	}
	if upd.EndDate != nil {
		sets, args = append(sets, "end_date = ?"), append(args, *upd.EndDate)
	}
	if upd.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *upd.Description)
	}
	if upd.ArrivedAt != nil {
		sets, args = append(sets, "arrived_at = ?"), append(args, *upd.ArrivedAt)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE steps SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update step %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check step update: %w", err)
	}
	if n == 0 {
		return ErrStepNotFound
	}

	return nil
}

// Delete removes a step. Journal entries, images and checklist items
// go with it through ON DELETE CASCADE, so a single statement covers
// the whole subtree atomically.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM steps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete step %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check step delete: %w", err)
	}
	if n == 0 {
		return ErrStepNotFound
	}

	return nil
}

// Reorder rewrites the order_index of every step in a trip to match
// orderedIDs. The id set must be exactly the trip's steps; otherwise
// ErrReorderMismatch is returned and nothing changes. The whole
// rewrite runs in one transaction so readers never observe a partial
// ordering.
func (r *SQLiteRepository) Reorder(ctx context.Context, tripID int64, orderedIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM steps WHERE trip_id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to load step ids: %w", err)
	}
	existing := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan step id: %w", err)
		}
		existing[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load step ids: %w", err)
	}

	if len(orderedIDs) != len(existing) {
		return ErrReorderMismatch
	}
	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] || seen[id] {
			return ErrReorderMismatch
		}
		seen[id] = true
	}

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			"UPDATE steps SET order_index = ? WHERE id = ?", i, id); err != nil {
			return fmt.Errorf("failed to reorder step %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanStep(sc scanner) (*Step, error) {
	var (
		s         Step
		startDate sql.NullInt64
		endDate   sql.NullInt64
		arrivedAt sql.NullInt64
	)

	err := sc.Scan(&s.ID, &s.TripID, &s.Name, &s.Latitude, &s.Longitude,
		&startDate, &endDate, &s.Description, &s.OrderIndex, &arrivedAt)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		s.StartDate = &startDate.Int64
	}
	if endDate.Valid {
		s.EndDate = &endDate.Int64
	}
	if arrivedAt.Valid {
		s.ArrivedAt = &arrivedAt.Int64
	}

	return &s, nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
