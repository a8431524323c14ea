package models

import "time"

// Conflict kinds. Room and teacher overlaps are derived from the placement
// set; absences are reported externally and survive detector runs.
const (
	ConflictRoomOverlap    = "room_overlap"
	ConflictTeacherOverlap = "teacher_overlap"
	ConflictAbsence        = "absence"
)

// Conflict severities, weakest to strongest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Conflict is a derived scheduling finding. Derived conflicts are recomputed
// from scratch on every detection run and are never edited in place.
type Conflict struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Message      string    `json:"message"`
	Severity     string    `json:"severity"`
	Day          string    `json:"day,omitempty"`
	Time         string    `json:"time"`
	PlacementIDs []string  `json:"placement_ids,omitempty"`
	DetectedAt   time.Time `json:"detected_at"`
}

// ValidSeverity reports whether s is one of the known severities.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
