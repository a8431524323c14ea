package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/repository"
)

func newTestTemplates(t *testing.T, seed []models.Placement) (*TemplateService, *ScheduleService, *ConflictService) {
	t.Helper()
	placementRepo := repository.NewPlacementRepository(seed)
	conflicts := NewConflictService(nil, nil, nil, nil)
	schedules := NewScheduleService(placementRepo, conflicts, nil, testGridConfig(), nil, nil)
	templates := NewTemplateService(repository.NewTemplateRepository(), schedules, nil, nil)
	return templates, schedules, conflicts
}

func TestTemplateSaveAndLoad(t *testing.T) {
	seed := []models.Placement{
		{Subject: "Mathematics", Teacher: "Ms. Johnson", Room: "Room 101", Day: "Monday", Time: "09:00", Duration: 60},
		{Subject: "English", Teacher: "Mr. Smith", Room: "Room 102", Day: "Tuesday", Time: "10:00", Duration: 60},
	}
	templates, schedules, _ := newTestTemplates(t, seed)
	ctx := context.Background()

	saved, err := templates.Save(ctx, SaveTemplateRequest{Name: "Fall term", Description: "baseline"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Len(t, saved.Placements, 2)

	// Mutate the live schedule away from the snapshot.
	items, _ := schedules.List(ctx, models.PlacementFilter{})
	require.NoError(t, schedules.Delete(ctx, items[0].ID))
	remaining, _ := schedules.List(ctx, models.PlacementFilter{})
	require.Len(t, remaining, 1)

	restored, err := templates.Load(ctx, saved.ID)
	require.NoError(t, err)
	assert.Len(t, restored, 2)
}

func TestTemplateSaveRequiresName(t *testing.T) {
	templates, _, _ := newTestTemplates(t, nil)
	_, err := templates.Save(context.Background(), SaveTemplateRequest{})
	require.Error(t, err)
}

func TestTemplateLoadRefreshesConflicts(t *testing.T) {
	seed := []models.Placement{
		{Subject: "Mathematics", Teacher: "Ms. Johnson", Room: "Lab A", Day: "Monday", Time: "09:00", Duration: 60},
		{Subject: "Chemistry", Teacher: "Dr. Brown", Room: "Lab A", Day: "Monday", Time: "09:00", Duration: 60},
	}
	templates, schedules, conflicts := newTestTemplates(t, seed)
	ctx := context.Background()

	saved, err := templates.Save(ctx, SaveTemplateRequest{Name: "Clashing"})
	require.NoError(t, err)

	// Clear the schedule; detection now sees an empty set.
	require.NoError(t, schedules.ReplaceAll(ctx, nil))
	assert.Empty(t, conflicts.List())

	_, err = templates.Load(ctx, saved.ID)
	require.NoError(t, err)

	current := conflicts.List()
	require.Len(t, current, 1)
	assert.Equal(t, models.ConflictRoomOverlap, current[0].Kind)
}

func TestTemplateLoadUnknownID(t *testing.T) {
	templates, _, _ := newTestTemplates(t, nil)
	_, err := templates.Load(context.Background(), "missing")
	require.Error(t, err)
}

func TestTemplateListAndDelete(t *testing.T) {
	templates, _, _ := newTestTemplates(t, nil)
	ctx := context.Background()

	saved, err := templates.Save(ctx, SaveTemplateRequest{Name: "Empty week"})
	require.NoError(t, err)

	all, err := templates.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, templates.Delete(ctx, saved.ID))
	all, err = templates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.Error(t, templates.Delete(ctx, saved.ID))
}
