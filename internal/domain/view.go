package domain

import (
	"math"
	"time"
)

// ViewSession is the transient per-connection state of one property view.
// It is owned exclusively by its connection handler: created at connection
// accept, mutated only by inbound messages on that connection, and consumed
// exactly once when the connection closes.
type ViewSession struct {
	propertyID string
	userID     string
	startTime  time.Time
}

// NewViewSession creates a session whose start time is fixed for its lifetime.
func NewViewSession(start time.Time) *ViewSession {
	return &ViewSession{startTime: start}
}

// SetProperty overwrites the viewed property identifier. Last write wins.
// Empty identifiers are ignored.
func (s *ViewSession) SetProperty(id string) {
	if id != "" {
		s.propertyID = id
	}
}

// SetUser overwrites the viewing user identifier. Last write wins.
// Empty identifiers are ignored.
func (s *ViewSession) SetUser(id string) {
	if id != "" {
		s.userID = id
	}
}

// PropertyID returns the last property identifier set, or "" if none was.
func (s *ViewSession) PropertyID() string {
	return s.propertyID
}

// UserID returns the last user identifier set, or "" if none was.
func (s *ViewSession) UserID() string {
	return s.userID
}

// StartTime returns the connection-open timestamp.
func (s *ViewSession) StartTime() time.Time {
	return s.startTime
}

// ElapsedSeconds returns the viewing duration rounded to the nearest second.
// A negative difference (wall clock stepped backwards) clamps to 0.
func (s *ViewSession) ElapsedSeconds(now time.Time) int64 {
	secs := int64(math.Round(now.Sub(s.startTime).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

// ViewEvent is the persisted record of one completed property view.
// Rows are append-only: written once on connection close, never updated.
type ViewEvent struct {
	ID              int64     `json:"id" db:"id"`
	PropertyID      string    `json:"property_id" db:"property_id"`
	UserID          *string   `json:"user_id,omitempty" db:"user_id"`
	DurationSeconds int64     `json:"duration_seconds" db:"duration_seconds"`
	StartTime       time.Time `json:"start_time" db:"start_time"`
	EndTime         time.Time `json:"end_time" db:"end_time"`
}

// ClickRank is one entry of the derived most-viewed ranking. It is computed
// on demand from view events and enriched with property summary data at
// read time; it is never stored.
type ClickRank struct {
	PropertyID  string   `json:"property_id"`
	Clicks      int64    `json:"clicks"`
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Description *string  `json:"description"`
}
