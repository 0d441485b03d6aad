package step

import (
	"database/sql"
	"errors"
	"strings"
)

// Step is an ordered waypoint within a trip.
type Step struct {
	ID     int64  `json:"id"`
	TripID int64  `json:"trip_id"`
	Name   string `json:"name"`

	// Latitude and Longitude locate the step on the map.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// StartDate and EndDate are epoch ms; nil when undated.
	StartDate *int64 `json:"start_date,omitempty"`
	EndDate   *int64 `json:"end_date,omitempty"`

	Description string `json:"description"`

	// OrderIndex is the step's position within its trip, starting at 0.
	OrderIndex int `json:"order_index"`

	// ArrivedAt is the epoch-ms arrival timestamp, nil until the user
	// marks the step as reached.
	ArrivedAt *int64 `json:"arrived_at,omitempty"`
}

// JournalEntry is a dated note attached to a step.
type JournalEntry struct {
	ID        int64  `json:"id"`
	StepID    int64  `json:"step_id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Update holds a partial set of step fields to change. Nil fields are
// left untouched; sql.Null values distinguish "set NULL" from "skip".
type Update struct {
	Name        *string
	Latitude    *float64
	Longitude   *float64
	StartDate   *sql.NullInt64
	EndDate     *sql.NullInt64
	Description *string
	ArrivedAt   *sql.NullInt64
}

// Sentinel errors for the step package.
var (
	ErrStepNotFound    = errors.New("step: not found")
	ErrEntryNotFound   = errors.New("step: journal entry not found")
	ErrInvalidName     = errors.New("step: name is required")
	ErrInvalidTrip     = errors.New("step: trip is required")
	ErrInvalidContent  = errors.New("step: journal content is required")
	ErrReorderMismatch = errors.New("step: reorder ids do not match trip steps")
)

// Validate checks a step at the caller boundary before Create.
func (s *Step) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidName
	}
	if s.TripID <= 0 {
		return ErrInvalidTrip
	}
	return nil
}
