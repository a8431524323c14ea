package models

import "time"

// ScheduleTemplate is a named snapshot of the placement set that can be
// loaded back into the store wholesale.
type ScheduleTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Placements  []Placement `json:"placements"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
