package service

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartschedule/timetable-api/internal/models"
)

func placement(id, teacher, room, day, timeOfDay string) models.Placement {
	return models.Placement{
		ID:       id,
		Subject:  "Subject " + id,
		Teacher:  teacher,
		Room:     room,
		Day:      day,
		Time:     timeOfDay,
		Duration: 60,
		Status:   models.StatusActive,
	}
}

func conflictFingerprint(conflicts []models.Conflict) []string {
	out := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, fmt.Sprintf("%s|%s|%s|%s", c.Kind, c.Day, c.Time, c.Severity))
	}
	sort.Strings(out)
	return out
}

func TestDetectNoConflicts(t *testing.T) {
	placements := []models.Placement{
		placement("1", "Ms. Johnson", "Room 101", "Monday", "09:00"),
		placement("2", "Mr. Smith", "Room 102", "Monday", "10:00"),
	}
	assert.Empty(t, Detect(placements))
}

func TestDetectRoomOverlap(t *testing.T) {
	placements := []models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
		placement("2", "Dr. Brown", "Lab A", "Monday", "10:00"),
	}

	conflicts := Detect(placements)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRoomOverlap, conflicts[0].Kind)
	assert.Equal(t, models.SeverityHigh, conflicts[0].Severity)
	assert.Contains(t, conflicts[0].Message, "Lab A")
	assert.Contains(t, conflicts[0].Message, "10:00")
	assert.ElementsMatch(t, []string{"1", "2"}, conflicts[0].PlacementIDs)
}

func TestDetectTeacherOverlapIsCritical(t *testing.T) {
	placements := []models.Placement{
		placement("1", "Ms. Johnson", "Room 101", "Monday", "10:00"),
		placement("2", "Ms. Johnson", "Lab A", "Monday", "10:00"),
	}

	conflicts := Detect(placements)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTeacherOverlap, conflicts[0].Kind)
	assert.Equal(t, models.SeverityCritical, conflicts[0].Severity)
	assert.Contains(t, conflicts[0].Message, "Ms. Johnson")
	assert.Contains(t, conflicts[0].Message, "10:00")
}

func TestDetectGroupYieldsSingleConflict(t *testing.T) {
	placements := []models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
		placement("2", "Dr. Brown", "Lab A", "Monday", "10:00"),
		placement("3", "Mr. Wilson", "Lab A", "Monday", "10:00"),
	}

	conflicts := Detect(placements)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRoomOverlap, conflicts[0].Kind)
	assert.Len(t, conflicts[0].PlacementIDs, 3)
}

func TestDetectBothAxesProduceTwoConflicts(t *testing.T) {
	placements := []models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
		placement("2", "Ms. Johnson", "Lab A", "Monday", "10:00"),
	}

	conflicts := Detect(placements)
	require.Len(t, conflicts, 2)
	kinds := []string{conflicts[0].Kind, conflicts[1].Kind}
	assert.ElementsMatch(t, []string{models.ConflictRoomOverlap, models.ConflictTeacherOverlap}, kinds)
}

func TestDetectSkipsCancelled(t *testing.T) {
	cancelled := placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00")
	cancelled.Status = models.StatusCancelled
	placements := []models.Placement{
		cancelled,
		placement("2", "Ms. Johnson", "Lab A", "Monday", "10:00"),
	}

	assert.Empty(t, Detect(placements))
}

func TestDetectSkipsMalformed(t *testing.T) {
	missingRoom := placement("1", "Ms. Johnson", "", "Monday", "10:00")
	missingDay := placement("2", "Ms. Johnson", "Lab A", "", "10:00")
	placements := []models.Placement{missingRoom, missingDay}

	assert.Empty(t, Detect(placements))
}

func TestDetectIgnoresSubjectIdentity(t *testing.T) {
	a := placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00")
	b := a
	b.ID = "2"

	conflicts := Detect([]models.Placement{a, b})
	assert.Len(t, conflicts, 2) // room and teacher axes both collide
}

func TestDetectIdempotent(t *testing.T) {
	placements := []models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
		placement("2", "Dr. Brown", "Lab A", "Monday", "10:00"),
		placement("3", "Dr. Brown", "Lab B", "Monday", "10:00"),
		placement("4", "Mr. Smith", "Room 102", "Tuesday", "09:00"),
	}

	first := Detect(placements)
	second := Detect(placements)
	assert.Equal(t, conflictFingerprint(first), conflictFingerprint(second))
}

func TestConflictServiceRefreshPreservesExternal(t *testing.T) {
	absence := models.Conflict{
		ID:       "abs-1",
		Kind:     models.ConflictAbsence,
		Message:  "Mr. Smith marked absent",
		Severity: models.SeverityCritical,
		Time:     "Today",
	}
	svc := NewConflictService([]models.Conflict{absence}, nil, nil, nil)

	merged := svc.Refresh([]models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
		placement("2", "Dr. Brown", "Lab A", "Monday", "10:00"),
	})
	require.Len(t, merged, 2)
	assert.Equal(t, "abs-1", merged[0].ID)

	// A second refresh with a clean schedule drops the derived conflict but
	// keeps the absence.
	merged = svc.Refresh([]models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
	})
	require.Len(t, merged, 1)
	assert.Equal(t, models.ConflictAbsence, merged[0].Kind)
}

func TestConflictServiceReportAndResolve(t *testing.T) {
	svc := NewConflictService(nil, nil, nil, nil)

	reported, err := svc.Report(ReportConflictRequest{
		Kind:     models.ConflictAbsence,
		Message:  "Ms. Davis marked absent",
		Severity: models.SeverityHigh,
		Time:     "Today",
	})
	require.NoError(t, err)
	require.NotEmpty(t, reported.ID)
	assert.Len(t, svc.List(), 1)

	require.NoError(t, svc.Resolve(reported.ID))
	assert.Empty(t, svc.List())
}

func TestConflictServiceReportRejectsUnknownSeverity(t *testing.T) {
	svc := NewConflictService(nil, nil, nil, nil)
	_, err := svc.Report(ReportConflictRequest{
		Kind:     models.ConflictAbsence,
		Message:  "bad",
		Severity: "catastrophic",
		Time:     "Today",
	})
	require.Error(t, err)
}

func TestConflictServiceResolveUnknownID(t *testing.T) {
	svc := NewConflictService(nil, nil, nil, nil)
	require.Error(t, svc.Resolve("nope"))
}

func TestConflictServiceResolveDerived(t *testing.T) {
	svc := NewConflictService(nil, nil, nil, nil)
	merged := svc.Refresh([]models.Placement{
		placement("1", "Ms. Johnson", "Lab A", "Monday", "10:00"),
		placement("2", "Dr. Brown", "Lab A", "Monday", "10:00"),
	})
	require.Len(t, merged, 1)

	require.NoError(t, svc.Resolve(merged[0].ID))
	assert.Empty(t, svc.List())
}
