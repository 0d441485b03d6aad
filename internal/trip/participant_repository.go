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

// ParticipantRepository defines persistence operations for trip participants.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id int64) (*Participant, error)
	ListByTrip(ctx context.Context, tripID int64) ([]*Participant, error)
	Update(ctx context.Context, id int64, upd ParticipantUpdate) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteParticipantRepository implements ParticipantRepository against SQLite.
type SQLiteParticipantRepository struct {
	db database.Executor
}

// NewSQLiteParticipantRepository creates a participant repository using
// the given executor.
func NewSQLiteParticipantRepository(db database.Executor) *SQLiteParticipantRepository {
	return &SQLiteParticipantRepository{db: db}
}

// Create inserts a participant and fills in its generated ID and CreatedAt.
func (r *SQLiteParticipantRepository) Create(ctx context.Context, p *Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	p.CreatedAt = time.Now().UnixMilli()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO trip_participants (trip_id, name, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.TripID, p.Name, p.Email, p.Phone, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read participant id: %w", err)
	}
	p.ID = id

	return nil
}

// GetByID retrieves a single participant, returning ErrParticipantNotFound
// when absent.
func (r *SQLiteParticipantRepository) GetByID(ctx context.Context, id int64) (*Participant, error) {
	var p Participant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, trip_id, name, email, phone, created_at
		FROM trip_participants WHERE id = ?`, id).
		Scan(&p.ID, &p.TripID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant %d: %w", id, err)
	}
	return &p, nil
}

// ListByTrip returns a trip's participants in the order they were added.
func (r *SQLiteParticipantRepository) ListByTrip(ctx context.Context, tripID int64) ([]*Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, trip_id, name, email, phone, created_at
		FROM trip_participants WHERE trip_id = ?
		ORDER BY created_at ASC, id ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, &p)
	}

	return participants, rows.Err()
}

// Update applies a partial update. A zero ParticipantUpdate is a no-op.
func (r *SQLiteParticipantRepository) Update(ctx context.Context, id int64, upd ParticipantUpdate) error {
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
	if upd.Email != nil {
		sets, args = append(sets, "email = ?"), append(args, *upd.Email)
	}
	if upd.Phone != nil {
		sets, args = append(sets, "phone = ?"), append(args, *upd.Phone)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE trip_participants SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update participant %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check participant update: %w", err)
	}
	if n == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// Delete removes a participant from its trip.
func (r *SQLiteParticipantRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trip_participants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete participant %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check participant delete: %w", err)
	}
	if n == 0 {
		return ErrParticipantNotFound
	}

	return nil
}
