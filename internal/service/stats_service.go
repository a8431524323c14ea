package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/smartschedule/timetable-api/internal/models"
)

type conflictLister interface {
	List() []models.Conflict
}

// StatsService aggregates the overview numbers the dashboard renders:
// class counts, teacher load, room utilization and conflict totals.
type StatsService struct {
	schedules *ScheduleService
	conflicts conflictLister
	slotCount int
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService instantiates StatsService. slotCount is the number of
// cells in the weekly grid (days x time slots), used for utilization.
func NewStatsService(schedules *ScheduleService, conflicts conflictLister, slotCount int, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		schedules: schedules,
		conflicts: conflicts,
		slotCount: slotCount,
		logger:    logger,
		now:       time.Now,
	}
}

// Overview computes the aggregate snapshot over the current placement set.
func (s *StatsService) Overview(ctx context.Context) (*models.ScheduleStats, error) {
	placements, err := s.schedules.List(ctx, models.PlacementFilter{})
	if err != nil {
		return nil, err
	}

	stats := &models.ScheduleStats{
		TotalClasses:        len(placements),
		ConflictsBySeverity: map[string]int{},
		GeneratedAt:         s.now().UTC(),
	}

	teacherLoads := map[string]*models.TeacherLoad{}
	roomSlots := map[string]map[[2]string]struct{}{}
	dayCounts := map[string]int{}

	for _, p := range placements {
		switch p.Status {
		case models.StatusActive:
			stats.ActiveClasses++
		case models.StatusCancelled:
			stats.CancelledClasses++
		case models.StatusModified:
			stats.ModifiedClasses++
		}
		if p.Status == models.StatusCancelled {
			continue
		}

		stats.TotalStudents += p.StudentCount
		dayCounts[p.Day]++

		load, ok := teacherLoads[p.Teacher]
		if !ok {
			load = &models.TeacherLoad{Teacher: p.Teacher}
			teacherLoads[p.Teacher] = load
		}
		load.Classes++
		load.Minutes += p.Duration
		load.StudentTotal += p.StudentCount

		slots, ok := roomSlots[p.Room]
		if !ok {
			slots = map[[2]string]struct{}{}
			roomSlots[p.Room] = slots
		}
		slots[[2]string{p.Day, p.Time}] = struct{}{}
	}

	best := 0
	for day, count := range dayCounts {
		if count > best || (count == best && day < stats.BusiestDay) {
			best = count
			stats.BusiestDay = day
		}
	}

	for _, load := range teacherLoads {
		stats.TeacherLoads = append(stats.TeacherLoads, *load)
	}
	sort.Slice(stats.TeacherLoads, func(i, j int) bool {
		if stats.TeacherLoads[i].Classes != stats.TeacherLoads[j].Classes {
			return stats.TeacherLoads[i].Classes > stats.TeacherLoads[j].Classes
		}
		return stats.TeacherLoads[i].Teacher < stats.TeacherLoads[j].Teacher
	})

	for room, slots := range roomSlots {
		util := models.RoomUtilization{
			Room:        room,
			BookedSlots: len(slots),
			TotalSlots:  s.slotCount,
		}
		if s.slotCount > 0 {
			util.Percent = float64(len(slots)) / float64(s.slotCount) * 100
		}
		stats.RoomUtilization = append(stats.RoomUtilization, util)
	}
	sort.Slice(stats.RoomUtilization, func(i, j int) bool {
		if stats.RoomUtilization[i].BookedSlots != stats.RoomUtilization[j].BookedSlots {
			return stats.RoomUtilization[i].BookedSlots > stats.RoomUtilization[j].BookedSlots
		}
		return stats.RoomUtilization[i].Room < stats.RoomUtilization[j].Room
	})

	for _, c := range s.conflicts.List() {
		stats.ConflictsBySeverity[c.Severity]++
	}

	return stats, nil
}
