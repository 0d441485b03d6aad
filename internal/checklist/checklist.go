package checklist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// Item is a single checklist entry belonging to a trip or a step,
// depending on which store produced it.
type Item struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"owner_id"`
	Text      string `json:"text"`
	IsChecked bool   `json:"is_checked"`
	CreatedAt int64  `json:"created_at"`
}

// Sentinel errors for the checklist package.
var (
	ErrItemNotFound = errors.New("checklist: item not found")
	ErrInvalidText  = errors.New("checklist: text is required")
	ErrInvalidOwner = errors.New("checklist: owner is required")
)

// Store defines the operations shared by trip and step checklists.
type Store interface {
	Add(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error)
	Toggle(ctx context.Context, id int64) error
	SetChecked(ctx context.Context, id int64, checked bool) error
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}

// SQLiteStore implements Store for one checklist table. The table and
// owner column are fixed at construction, never caller input.
type SQLiteStore struct {
	db       database.Executor
	table    string
	ownerCol string
}

// NewTripItems returns the store for trip-level checklist items.
func NewTripItems(db database.Executor) *SQLiteStore {
	return &SQLiteStore{db: db, table: "checklist_items", ownerCol: "trip_id"}
}

// NewStepItems returns the store for step-level checklist items.
func NewStepItems(db database.Executor) *SQLiteStore {
	return &SQLiteStore{db: db, table: "step_checklist_items", ownerCol: "step_id"}
}

// Add inserts an item (unchecked unless stated otherwise) and fills in
// its generated ID and CreatedAt.
func (s *SQLiteStore) Add(ctx context.Context, item *Item) error {
	if strings.TrimSpace(item.Text) == "" {
		return ErrInvalidText
	}
	if item.OwnerID <= 0 {
		return ErrInvalidOwner
	}

	item.CreatedAt = time.Now().UnixMilli()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, text, is_checked, created_at) VALUES (?, ?, ?, ?)",
		s.table, s.ownerCol)
	res, err := s.db.ExecContext(ctx, query,
		item.OwnerID, item.Text, boolToInt(item.IsChecked), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add checklist item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read checklist item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetByID retrieves a single item, returning ErrItemNotFound when absent.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := fmt.Sprintf(
		"SELECT id, %s, text, is_checked, created_at FROM %s WHERE id = ?",
		s.ownerCol, s.table)

	var (
		item    Item
		checked int
	)
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.OwnerID, &item.Text, &checked, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item %d: %w", id, err)
	}
	item.IsChecked = checked != 0

	return &item, nil
}

// ListByOwner returns an owner's items in the order they were added.
func (s *SQLiteStore) ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error) {
	query := fmt.Sprintf(
		"SELECT id, %s, text, is_checked, created_at FROM %s WHERE %s = ? ORDER BY created_at ASC, id ASC",
		s.ownerCol, s.table, s.ownerCol)

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var (
			item    Item
			checked int
		)
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Text, &checked, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		item.IsChecked = checked != 0
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Toggle flips an item's checked state in a single statement, so two
// concurrent toggles can never lose an update.
func (s *SQLiteStore) Toggle(ctx context.Context, id int64) error {
	query := fmt.Sprintf(
		"UPDATE %s SET is_checked = 1 - is_checked WHERE id = ?", s.table)
	return s.exec(ctx, query, id)
}

// SetChecked forces an item's checked state.
func (s *SQLiteStore) SetChecked(ctx context.Context, id int64, checked bool) error {
	query := fmt.Sprintf("UPDATE %s SET is_checked = ? WHERE id = ?", s.table)
	return s.exec(ctx, query, boolToInt(checked), id)
}

// UpdateText replaces an item's text.
func (s *SQLiteStore) UpdateText(ctx context.Context, id int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidText
	}
	query := fmt.Sprintf("UPDATE %s SET text = ? WHERE id = ?", s.table)
	return s.exec(ctx, query, text, id)
}

// Delete removes an item.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.table)
	return s.exec(ctx, query, id)
}

// exec runs a single-row statement and maps a zero row count to
// ErrItemNotFound.
func (s *SQLiteStore) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to modify checklist item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check checklist modification: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
