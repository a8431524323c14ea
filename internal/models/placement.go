package models

import "time"

// Placement statuses. A cancelled placement keeps its slot but is ignored by
// conflict detection.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusModified  = "modified"
)

// Placement is one scheduled class occurrence on the weekly grid.
type Placement struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	Teacher      string    `json:"teacher"`
	Room         string    `json:"room"`
	Grade        string    `json:"grade"`
	Day          string    `json:"day"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	StudentCount int       `json:"student_count"`
	Color        string    `json:"color,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Slot returns the (day, time) grid coordinate of the placement.
func (p Placement) Slot() (string, string) {
	return p.Day, p.Time
}

// ValidStatus reports whether s is one of the known placement statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusCancelled, StatusModified:
		return true
	}
	return false
}

// PlacementFilter describes read-side filtering of the placement list.
// Filtering never mutates the store; it exists for the presentation layer.
type PlacementFilter struct {
	Day     string
	Grade   string
	Teacher string
	Room    string
	Status  string
	Search  string
}
