package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/repository"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
)

type placementRepository interface {
	List(ctx context.Context) ([]models.Placement, error)
	FindByID(ctx context.Context, id string) (*models.Placement, error)
	Insert(ctx context.Context, placement *models.Placement) error
	Update(ctx context.Context, placement *models.Placement) error
	Delete(ctx context.Context, id string) error
	SetAllStatus(ctx context.Context, status string) (int, error)
	ReplaceAll(ctx context.Context, placements []models.Placement) error
}

type conflictRefresher interface {
	Refresh(placements []models.Placement) []models.Conflict
}

// CreatePlacementRequest describes payload for scheduling a new class.
type CreatePlacementRequest struct {
	Subject      string `json:"subject" validate:"required"`
	Teacher      string `json:"teacher" validate:"required"`
	Room         string `json:"room" validate:"required"`
	Grade        string `json:"grade"`
	Day          string `json:"day" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Duration     int    `json:"duration" validate:"required,gt=0"`
	Notes        string `json:"notes"`
	StudentCount int    `json:"student_count" validate:"gte=0"`
	Color        string `json:"color"`
}

// UpdatePlacementRequest applies a partial edit; nil fields are left as-is.
type UpdatePlacementRequest struct {
	Subject      *string `json:"subject"`
	Teacher      *string `json:"teacher"`
	Room         *string `json:"room"`
	Grade        *string `json:"grade"`
	Day          *string `json:"day"`
	Time         *string `json:"time"`
	Duration     *int    `json:"duration"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	StudentCount *int    `json:"student_count"`
	Color        *string `json:"color"`
}

// MovePlacementRequest relocates a class to a new grid cell.
type MovePlacementRequest struct {
	Day  string `json:"day" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// ScheduleServiceConfig carries the grid shape the service validates against.
type ScheduleServiceConfig struct {
	Days        []string
	TimeSlots   []string
	DefaultSlot string
}

// ScheduleService owns all placement mutations. Every successful mutation
// synchronously re-runs conflict detection over the updated set; there is no
// window where the conflict list lags the store.
type ScheduleService struct {
	repo      placementRepository
	conflicts conflictRefresher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	days        map[string]struct{}
	slots       map[string]struct{}
	defaultSlot string
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo placementRepository, conflicts conflictRefresher, metrics *MetricsService, cfg ScheduleServiceConfig, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	days := make(map[string]struct{}, len(cfg.Days))
	for _, d := range cfg.Days {
		days[d] = struct{}{}
	}
	slots := make(map[string]struct{}, len(cfg.TimeSlots))
	for _, t := range cfg.TimeSlots {
		slots[t] = struct{}{}
	}
	defaultSlot := cfg.DefaultSlot
	if defaultSlot == "" && len(cfg.TimeSlots) > 0 {
		defaultSlot = cfg.TimeSlots[0]
	}
	return &ScheduleService{
		repo:        repo,
		conflicts:   conflicts,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		days:        days,
		slots:       slots,
		defaultSlot: defaultSlot,
	}
}

// DefaultSlot returns the slot a duplicated class is parked in.
func (s *ScheduleService) DefaultSlot() string {
	return s.defaultSlot
}

// List returns placements matching the filter, in store order.
func (s *ScheduleService) List(ctx context.Context, filter models.PlacementFilter) ([]models.Placement, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule")
	}
	if filter == (models.PlacementFilter{}) {
		return items, nil
	}
	out := make([]models.Placement, 0, len(items))
	for _, p := range items {
		if matchesFilter(p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get returns one placement by id.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Placement, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load schedule item")
	}
	return p, nil
}

// Create schedules a new class. Duplicate slots are not rejected here;
// overlaps surface as conflicts, not errors.
func (s *ScheduleService) Create(ctx context.Context, req CreatePlacementRequest) (*models.Placement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if err := s.validateSlot(req.Day, req.Time); err != nil {
		return nil, err
	}

	placement := models.Placement{
		Subject:      req.Subject,
		Teacher:      req.Teacher,
		Room:         req.Room,
		Grade:        req.Grade,
		Day:          req.Day,
		Time:         req.Time,
		Duration:     req.Duration,
		Status:       models.StatusActive,
		Notes:        req.Notes,
		StudentCount: req.StudentCount,
		Color:        req.Color,
	}

	if err := s.repo.Insert(ctx, &placement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule item")
	}
	s.afterMutation(ctx, "create")
	return &placement, nil
}

// Update applies a partial edit to an existing placement.
func (s *ScheduleService) Update(ctx context.Context, id string, req UpdatePlacementRequest) (*models.Placement, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load schedule item")
	}

	updated := *existing
	applyUpdate(&updated, req)

	if updated.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject must not be empty")
	}
	if updated.Duration <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "duration must be positive")
	}
	if !models.ValidStatus(updated.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", updated.Status))
	}
	if err := s.validateSlot(updated.Day, updated.Time); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, s.notFoundOr(err, "failed to update schedule item")
	}
	s.afterMutation(ctx, "update")
	return &updated, nil
}

// Delete removes a placement. Unknown ids fail loudly.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.notFoundOr(err, "failed to delete schedule item")
	}
	s.afterMutation(ctx, "delete")
	return nil
}

// Move relocates a placement to a new (day, time) cell. Identity and every
// other attribute are preserved; the status flips to modified.
func (s *ScheduleService) Move(ctx context.Context, id string, req MovePlacementRequest) (*models.Placement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}
	if err := s.validateSlot(req.Day, req.Time); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load schedule item")
	}

	moved := *existing
	moved.Day = req.Day
	moved.Time = req.Time
	moved.Status = models.StatusModified

	if err := s.repo.Update(ctx, &moved); err != nil {
		return nil, s.notFoundOr(err, "failed to move schedule item")
	}
	s.afterMutation(ctx, "move")
	return &moved, nil
}

// Duplicate clones a placement into the default slot so the copy never
// silently lands on top of the source.
func (s *ScheduleService) Duplicate(ctx context.Context, id string) (*models.Placement, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load schedule item")
	}

	clone := *existing
	clone.ID = ""
	clone.Time = s.defaultSlot
	clone.Status = models.StatusActive

	if err := s.repo.Insert(ctx, &clone); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to duplicate schedule item")
	}
	s.afterMutation(ctx, "duplicate")
	return &clone, nil
}

// SetAllStatus bulk-updates every placement's status.
func (s *ScheduleService) SetAllStatus(ctx context.Context, status string) (int, error) {
	if !models.ValidStatus(status) {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	count, err := s.repo.SetAllStatus(ctx, status)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update statuses")
	}
	s.afterMutation(ctx, "set_all_status")
	return count, nil
}

// ReplaceAll swaps the whole placement set, used by template loading.
func (s *ScheduleService) ReplaceAll(ctx context.Context, placements []models.Placement) error {
	if err := s.repo.ReplaceAll(ctx, placements); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace schedule")
	}
	s.afterMutation(ctx, "replace_all")
	return nil
}

// afterMutation re-derives the conflict list from the post-mutation store.
// Detection always observes the fully applied mutation; the sequence is
// synchronous by contract.
func (s *ScheduleService) afterMutation(ctx context.Context, operation string) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("conflict refresh skipped", zap.String("operation", operation), zap.Error(err))
		return
	}
	s.conflicts.Refresh(items)
	s.metrics.RecordMutation(operation)
}

func (s *ScheduleService) notFoundOr(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "schedule item not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func (s *ScheduleService) validateSlot(day, timeOfDay string) error {
	if _, ok := s.days[day]; !ok && len(s.days) > 0 {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", day))
	}
	if len(s.slots) > 0 {
		if _, ok := s.slots[timeOfDay]; !ok {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown time slot %q", timeOfDay))
		}
		return nil
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unparseable time %q", timeOfDay))
	}
	return nil
}

func applyUpdate(p *models.Placement, req UpdatePlacementRequest) {
	if req.Subject != nil {
		p.Subject = *req.Subject
	}
	if req.Teacher != nil {
		p.Teacher = *req.Teacher
	}
	if req.Room != nil {
		p.Room = *req.Room
	}
	if req.Grade != nil {
		p.Grade = *req.Grade
	}
	if req.Day != nil {
		p.Day = *req.Day
	}
	if req.Time != nil {
		p.Time = *req.Time
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.StudentCount != nil {
		p.StudentCount = *req.StudentCount
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
}

func matchesFilter(p models.Placement, f models.PlacementFilter) bool {
	if f.Day != "" && p.Day != f.Day {
		return false
	}
	if f.Grade != "" && p.Grade != f.Grade {
		return false
	}
	if f.Teacher != "" && p.Teacher != f.Teacher {
		return false
	}
	if f.Room != "" && p.Room != f.Room {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Subject), needle) &&
			!strings.Contains(strings.ToLower(p.Teacher), needle) &&
			!strings.Contains(strings.ToLower(p.Room), needle) {
			return false
		}
	}
	return true
}
