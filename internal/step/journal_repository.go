package step

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// JournalRepository defines persistence operations for journal entries.
type JournalRepository interface {
	Create(ctx context.Context, e *JournalEntry) error
	GetByID(ctx context.Context, id int64) (*JournalEntry, error)
	ListByStep(ctx context.Context, stepID int64) ([]*JournalEntry, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteJournalRepository implements JournalRepository against SQLite.
type SQLiteJournalRepository struct {
	db database.Executor
}

// NewSQLiteJournalRepository creates a journal repository using the
// given executor.
func NewSQLiteJournalRepository(db database.Executor) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db}
}

// Create inserts a journal entry and fills in its generated ID and
// CreatedAt.
func (r *SQLiteJournalRepository) Create(ctx context.Context, e *JournalEntry) error {
	if strings.TrimSpace(e.Content) == "" {
		return ErrInvalidContent
	}

	e.CreatedAt = time.Now().UnixMilli()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO journal_entries (step_id, content, created_at)
		VALUES (?, ?, ?)`,
		e.StepID, e.Content, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read journal entry id: %w", err)
	}
	e.ID = id

	return nil
}

// GetByID retrieves a single journal entry, returning ErrEntryNotFound
// when absent.
func (r *SQLiteJournalRepository) GetByID(ctx context.Context, id int64) (*JournalEntry, error) {
	var e JournalEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT id, step_id, content, created_at
		FROM journal_entries WHERE id = ?`, id).
		Scan(&e.ID, &e.StepID, &e.Content, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %d: %w", id, err)
	}
	return &e, nil
}

// ListByStep returns a step's journal entries oldest first.
func (r *SQLiteJournalRepository) ListByStep(ctx context.Context, stepID int64) ([]*JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, step_id, content, created_at
		FROM journal_entries WHERE step_id = ?
		ORDER BY created_at ASC, id ASC`, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.StepID, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// UpdateContent replaces an entry's text.
func (r *SQLiteJournalRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrInvalidContent
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE journal_entries SET content = ? WHERE id = ?", content, id)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check journal update: %w", err)
	}
	if n == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete removes a journal entry.
func (r *SQLiteJournalRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM journal_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check journal delete: %w", err)
	}
	if n == 0 {
		return ErrEntryNotFound
	}

	return nil
}
