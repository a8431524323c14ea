// Package fixtures bundles the demo data set the server can seed itself
// with. The store receives it as an explicit constructor argument; nothing
// here is mutable shared state.
package fixtures

import "github.com/smartschedule/timetable-api/internal/models"

// Placements returns the demo weekly schedule.
func Placements() []models.Placement {
	return []models.Placement{
		{
			Subject:      "Mathematics",
			Teacher:      "Ms. Johnson",
			Room:         "Room 101",
			Grade:        "Grade 10",
			Day:          "Monday",
			Time:         "09:00",
			Duration:     60,
			Status:       models.StatusActive,
			StudentCount: 28,
			Notes:        "Advanced algebra concepts",
			Color:        "blue",
		},
		{
			Subject:      "English Literature",
			Teacher:      "Mr. Smith",
			Room:         "Room 102",
			Grade:        "Grade 9",
			Day:          "Monday",
			Time:         "10:00",
			Duration:     60,
			Status:       models.StatusActive,
			StudentCount: 25,
			Color:        "green",
		},
		{
			Subject:      "Chemistry",
			Teacher:      "Dr. Brown",
			Room:         "Lab A",
			Grade:        "Grade 11",
			Day:          "Monday",
			Time:         "11:00",
			Duration:     90,
			Status:       models.StatusActive,
			StudentCount: 22,
			Notes:        "Lab safety required",
			Color:        "purple",
		},
		{
			Subject:      "Physical Education",
			Teacher:      "Ms. Davis",
			Room:         "Gymnasium",
			Grade:        "Grade 12",
			Day:          "Monday",
			Time:         "14:00",
			Duration:     60,
			Status:       models.StatusCancelled,
			StudentCount: 30,
			Notes:        "Equipment maintenance",
			Color:        "orange",
		},
		{
			Subject:      "History",
			Teacher:      "Mr. Wilson",
			Room:         "Room 201",
			Grade:        "Grade 11",
			Day:          "Tuesday",
			Time:         "13:00",
			Duration:     60,
			Status:       models.StatusModified,
			StudentCount: 26,
			Notes:        "Time changed from 12:00",
			Color:        "red",
		},
		{
			Subject:      "Art",
			Teacher:      "Ms. Davis",
			Room:         "Art Room",
			Grade:        "Grade 9",
			Day:          "Wednesday",
			Time:         "15:00",
			Duration:     90,
			Status:       models.StatusActive,
			StudentCount: 18,
			Color:        "pink",
		},
	}
}

// Conflicts returns the externally-sourced conflicts the demo starts with.
func Conflicts() []models.Conflict {
	return []models.Conflict{
		{
			ID:       "fixture-absence-1",
			Kind:     models.ConflictAbsence,
			Message:  "Mr. Smith marked absent - 3 classes need reassignment",
			Severity: models.SeverityCritical,
			Time:     "Today",
		},
	}
}
