package gallery

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YaelBusser/TripFlow-sub000/internal/infrastructure/database"
)

// Entry is one image in a trip's derived gallery. StepID is nil for
// images attached directly to the trip.
type Entry struct {
	URI       string `json:"uri"`
	StepID    *int64 `json:"step_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Gallery assembles a trip's full gallery on read: the trip's own
// images first in their display order, then each step's images in
// itinerary order. A URI appearing in more than one place shows up
// once, at its first position.
func Gallery(ctx context.Context, db database.Executor, tripID int64) ([]*Entry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT image_uri, step_id, created_at FROM (
			SELECT ti.image_uri AS image_uri, NULL AS step_id,
				ti.created_at AS created_at,
				0 AS bucket, ti.order_index AS major, ti.order_index AS minor, ti.id AS id
			FROM trip_images ti
			WHERE ti.trip_id = ?
			UNION ALL
			SELECT si.image_uri, si.step_id, si.created_at,
				1, s.order_index, si.order_index, si.id
			FROM step_images si
			JOIN steps s ON s.id = si.step_id
			WHERE s.trip_id = ?
		)
		ORDER BY bucket ASC, major ASC, minor ASC, id ASC`, tripID, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to build gallery: %w", err)
	}
	defer rows.Close()

	var (
		entries []*Entry
		seen    = make(map[string]bool)
	)
	for rows.Next() {
		var (
			e      Entry
			stepID sql.NullInt64
		)
		if err := rows.Scan(&e.URI, &stepID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gallery entry: %w", err)
		}
		if seen[e.URI] {
			continue
		}
		seen[e.URI] = true
		if stepID.Valid {
			e.StepID = &stepID.Int64
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
