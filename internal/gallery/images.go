package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// Image is a stored reference to an image file owned by a trip or a
// step, depending on which store produced it.
type Image struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	URI        string `json:"uri"`
	OrderIndex int    `json:"order_index"`
	CreatedAt  int64  `json:"created_at"`
}

// Sentinel errors for the gallery package.
var (
	ErrImageNotFound = errors.New("gallery: image not found")
	ErrInvalidURI    = errors.New("gallery: image uri is required")
	ErrInvalidOwner  = errors.New("gallery: owner is required")
)

// ImageStore defines the operations shared by trip and step images.
type ImageStore interface {
	Add(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id int64) (*Image, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Image, error)
	Delete(ctx context.Context, id int64) error
	DeleteByURI(ctx context.Context, ownerID int64, uri string) error
}

// SQLiteImageStore implements ImageStore for one image table. The
// table and owner column are fixed at construction, never caller input.
type SQLiteImageStore struct {
	db       database.Executor
	table    string
	ownerCol string
}

// NewTripImages returns the store for images attached directly to a trip.
func NewTripImages(db database.Executor) *SQLiteImageStore {
	return &SQLiteImageStore{db: db, table: "trip_images", ownerCol: "trip_id"}
}

// NewStepImages returns the store for images attached to a step.
func NewStepImages(db database.Executor) *SQLiteImageStore {
	return &SQLiteImageStore{db: db, table: "step_images", ownerCol: "step_id"}
}

// Add appends an image to its owner's sequence and fills in the
// generated ID, OrderIndex and CreatedAt.
func (s *SQLiteImageStore) Add(ctx context.Context, img *Image) error {
	if strings.TrimSpace(img.URI) == "" {
		return ErrInvalidURI
	}
	if img.OwnerID <= 0 {
		return ErrInvalidOwner
	}

	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(order_index) + 1, 0) FROM %s WHERE %s = ?",
		s.table, s.ownerCol)
	if err := s.db.QueryRowContext(ctx, query, img.OwnerID).Scan(&img.OrderIndex); err != nil {
		return fmt.Errorf("failed to compute image order: %w", err)
	}

	img.CreatedAt = time.Now().UnixMilli()

	query = fmt.Sprintf(
		"INSERT INTO %s (%s, image_uri, order_index, created_at) VALUES (?, ?, ?, ?)",
		s.table, s.ownerCol)
	res, err := s.db.ExecContext(ctx, query,
		img.OwnerID, img.URI, img.OrderIndex, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read image id: %w", err)
	}
	img.ID = id

	return nil
}

// GetByID retrieves a single image, returning ErrImageNotFound when absent.
func (s *SQLiteImageStore) GetByID(ctx context.Context, id int64) (*Image, error) {
	query := fmt.Sprintf(
		"SELECT id, %s, image_uri, order_index, created_at FROM %s WHERE id = ?",
		s.ownerCol, s.table)

	var img Image
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&img.ID, &img.OwnerID, &img.URI, &img.OrderIndex, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image %d: %w", id, err)
	}
	return &img, nil
}

// ListByOwner returns an owner's images in display order.
func (s *SQLiteImageStore) ListByOwner(ctx context.Context, ownerID int64) ([]*Image, error) {
	query := fmt.Sprintf(
		"SELECT id, %s, image_uri, order_index, created_at FROM %s WHERE %s = ? ORDER BY order_index ASC, id ASC",
		s.ownerCol, s.table, s.ownerCol)

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.OwnerID, &img.URI, &img.OrderIndex, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, &img)
	}

	return images, rows.Err()
}

// Delete removes an image row by id.
func (s *SQLiteImageStore) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.table)

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete image %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check image delete: %w", err)
	}
	if n == 0 {
		return ErrImageNotFound
	}

	return nil
}

// DeleteByURI removes every copy of a URI under one owner.
func (s *SQLiteImageStore) DeleteByURI(ctx context.Context, ownerID int64, uri string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND image_uri = ?", s.table, s.ownerCol)

	res, err := s.db.ExecContext(ctx, query, ownerID, uri)
	if err != nil {
		return fmt.Errorf("failed to delete image %q: %w", uri, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check image delete: %w", err)
	}
	if n == 0 {
		return ErrImageNotFound
	}

	return nil
}
