package trip

import (
	"database/sql"
	"errors"
	"strings"
)

// Trip represents a planned or ongoing journey owned by a single user.
type Trip struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	Description string `json:"description"`

	// StartDate and EndDate are epoch ms; nil when the user hasn't
	// picked dates yet.
	StartDate *int64 `json:"start_date,omitempty"`
	EndDate   *int64 `json:"end_date,omitempty"`

	// CoverURI points at a local image file; nil when no cover is set.
	CoverURI *string `json:"cover_uri,omitempty"`

	// AdventureStarted flags that the user has begun travelling.
	AdventureStarted bool  `json:"adventure_started"`
	CreatedAt        int64 `json:"created_at"`
}

// Participant is a person attached to a trip (not a user account).
type Participant struct {
	ID        int64  `json:"id"`
	TripID    int64  `json:"trip_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Update holds a partial set of trip fields to change. Nil fields are
// left untouched. Nullable columns take sql.Null values so callers can
// distinguish "set to NULL" from "leave alone".
type Update struct {
	Title            *string
	Destination      *string
	Description      *string
	StartDate        *sql.NullInt64
	EndDate          *sql.NullInt64
	CoverURI         *sql.NullString
	AdventureStarted *bool
}

// ParticipantUpdate holds a partial set of participant fields to change.
type ParticipantUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// Sentinel errors for the trip package.
var (
	ErrTripNotFound        = errors.New("trip: not found")
	ErrParticipantNotFound = errors.New("trip: participant not found")
	ErrInvalidTitle        = errors.New("trip: title is required")
	ErrInvalidOwner        = errors.New("trip: owner is required")
	ErrInvalidDateRange    = errors.New("trip: end date before start date")
	ErrInvalidName         = errors.New("trip: participant name is required")
)

// Validate checks a trip at the caller boundary before Create.
func (t *Trip) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrInvalidTitle
	}
	if t.UserID <= 0 {
		return ErrInvalidOwner
	}
	if t.StartDate != nil && t.EndDate != nil && *t.EndDate < *t.StartDate {
		return ErrInvalidDateRange
	}
	return nil
}

// Validate checks a participant at the caller boundary before Create.
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
