package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartschedule/timetable-api/internal/models"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
)

// Detect computes scheduling conflicts over the full placement set. It is
// pure and total: cancelled or malformed placements are skipped, never an
// error. A group of N colliding placements yields exactly one conflict for
// the group, and a placement colliding on both the room and teacher axes
// yields one conflict of each kind. Room and teacher keys are compared with
// strict string equality.
func Detect(placements []models.Placement) []models.Conflict {
	detectedAt := time.Now().UTC()
	conflicts := overlaps(placements, models.ConflictRoomOverlap, detectedAt)
	conflicts = append(conflicts, overlaps(placements, models.ConflictTeacherOverlap, detectedAt)...)
	return conflicts
}

type slotKey struct {
	name string
	day  string
	time string
}

func overlaps(placements []models.Placement, kind string, detectedAt time.Time) []models.Conflict {
	groups := make(map[slotKey][]string)
	keys := make([]slotKey, 0)
	for _, p := range placements {
		if p.Status == models.StatusCancelled {
			continue
		}
		name := p.Room
		if kind == models.ConflictTeacherOverlap {
			name = p.Teacher
		}
		if name == "" || p.Day == "" || p.Time == "" {
			continue
		}
		k := slotKey{name: name, day: p.Day, time: p.Time}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], p.ID)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		if keys[i].time != keys[j].time {
			return keys[i].time < keys[j].time
		}
		return keys[i].name < keys[j].name
	})

	var out []models.Conflict
	for _, k := range keys {
		ids := groups[k]
		if len(ids) < 2 {
			continue
		}
		conflict := models.Conflict{
			ID:           uuid.NewString(),
			Kind:         kind,
			Day:          k.day,
			Time:         k.time,
			PlacementIDs: ids,
			DetectedAt:   detectedAt,
		}
		switch kind {
		case models.ConflictTeacherOverlap:
			conflict.Severity = models.SeverityCritical
			conflict.Message = fmt.Sprintf("teacher %s scheduled for %d classes on %s at %s", k.name, len(ids), k.day, k.time)
		default:
			conflict.Severity = models.SeverityHigh
			conflict.Message = fmt.Sprintf("room %s double-booked on %s at %s (%d classes)", k.name, k.day, k.time, len(ids))
		}
		out = append(out, conflict)
	}
	return out
}

// ReportConflictRequest describes an externally-sourced conflict, such as a
// teacher absence, that detection runs must not discard.
type ReportConflictRequest struct {
	Kind     string `json:"kind" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Severity string `json:"severity" validate:"required"`
	Time     string `json:"time" validate:"required"`
}

// ConflictService owns the current conflict list: the derived half is
// replaced wholesale on every Refresh, the external half persists until a
// conflict is explicitly resolved.
type ConflictService struct {
	mu        sync.RWMutex
	derived   []models.Conflict
	external  []models.Conflict
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewConflictService builds a ConflictService seeded with any pre-existing
// external conflicts.
func NewConflictService(external []models.Conflict, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ConflictService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{
		external:  append([]models.Conflict(nil), external...),
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Refresh recomputes the derived conflicts from the given placement set and
// returns the merged list. External conflicts are untouched.
func (s *ConflictService) Refresh(placements []models.Placement) []models.Conflict {
	start := time.Now()
	derived := Detect(placements)

	s.mu.Lock()
	s.derived = derived
	merged := s.mergedLocked()
	s.mu.Unlock()

	s.metrics.ObserveDetection(time.Since(start), merged)
	s.logger.Debug("conflicts refreshed",
		zap.Int("placements", len(placements)),
		zap.Int("derived", len(derived)),
	)
	return merged
}

// List returns the current merged conflict list, external findings first.
func (s *ConflictService) List() []models.Conflict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mergedLocked()
}

func (s *ConflictService) mergedLocked() []models.Conflict {
	merged := make([]models.Conflict, 0, len(s.external)+len(s.derived))
	merged = append(merged, s.external...)
	merged = append(merged, s.derived...)
	return merged
}

// Report records an externally-sourced conflict.
func (s *ConflictService) Report(req ReportConflictRequest) (*models.Conflict, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict payload")
	}
	if !models.ValidSeverity(req.Severity) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown severity %q", req.Severity))
	}

	conflict := models.Conflict{
		ID:         uuid.NewString(),
		Kind:       req.Kind,
		Message:    req.Message,
		Severity:   req.Severity,
		Time:       req.Time,
		DetectedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.external = append(s.external, conflict)
	s.mu.Unlock()

	s.logger.Info("conflict reported", zap.String("kind", conflict.Kind), zap.String("severity", conflict.Severity))
	return &conflict, nil
}

// Resolve dismisses a conflict by id, whether derived or external.
func (s *ConflictService) Resolve(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.external {
		if c.ID == id {
			s.external = append(s.external[:i], s.external[i+1:]...)
			return nil
		}
	}
	for i, c := range s.derived {
		if c.ID == id {
			s.derived = append(s.derived[:i], s.derived[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "conflict not found")
}
