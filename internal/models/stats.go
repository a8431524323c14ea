package models

import "time"

// TeacherLoad aggregates one teacher's weekly commitments.
type TeacherLoad struct {
	Teacher      string `json:"teacher"`
	Classes      int    `json:"classes"`
	Minutes      int    `json:"minutes"`
	StudentTotal int    `json:"student_total"`
}

// RoomUtilization reports how many grid slots a room occupies out of the
// total slots the grid offers.
type RoomUtilization struct {
	Room        string  `json:"room"`
	BookedSlots int     `json:"booked_slots"`
	TotalSlots  int     `json:"total_slots"`
	Percent     float64 `json:"percent"`
}

// ScheduleStats is the aggregated overview snapshot for the dashboard.
type ScheduleStats struct {
	TotalClasses        int               `json:"total_classes"`
	ActiveClasses       int               `json:"active_classes"`
	CancelledClasses    int               `json:"cancelled_classes"`
	ModifiedClasses     int               `json:"modified_classes"`
	TotalStudents       int               `json:"total_students"`
	BusiestDay          string            `json:"busiest_day,omitempty"`
	TeacherLoads        []TeacherLoad     `json:"teacher_loads"`
	RoomUtilization     []RoomUtilization `json:"room_utilization"`
	ConflictsBySeverity map[string]int    `json:"conflicts_by_severity"`
	GeneratedAt         time.Time         `json:"generated_at"`
}
