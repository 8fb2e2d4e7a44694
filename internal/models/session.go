package models

import (
	"time"
)

// TimestampLayout is the display format used for session and evidence timestamps.
// Timestamps are captured as formatted strings so they stay stable once set.
const TimestampLayout = "Jan 2, 2006 15:04:05"

// FormatTimestamp renders a time in the display format used across the app
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Coordinate is a GPS fix captured at evidence creation time. Immutable once captured.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// Clone returns a value copy, nil-safe
func (c *Coordinate) Clone() *Coordinate {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Session represents one investigation: a named container for field evidence
type Session struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name      string      `gorm:"not null" json:"name"`
	StartTime string      `gorm:"not null" json:"start_time"`
	Location  *Coordinate `gorm:"serializer:json" json:"location,omitempty"`
	LastSaved string      `json:"last_saved,omitempty"`
	Position  int         `json:"-"` // preserves most-recent-first order across archive round-trips

	// Committed evidence, snapshot at last save
	Notes      []Note      `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"notes"`
	Photos     []Photo     `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"photos"`
	Recordings []Recording `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"recordings"`
}

// Clone returns a deep copy of the session, including committed evidence
func (s Session) Clone() Session {
	cp := s
	cp.Location = s.Location.Clone()
	cp.Notes = CloneNotes(s.Notes)
	cp.Photos = ClonePhotos(s.Photos)
	cp.Recordings = CloneRecordings(s.Recordings)
	return cp
}
