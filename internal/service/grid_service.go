package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smartschedule/timetable-api/internal/models"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
)

// GridService tracks the drag-and-drop session for the weekly grid: at most
// one held item at a time, picked up, then either dropped onto a cell (which
// delegates to Move) or cancelled with no side effect. Hovering is a pure
// display hint and never mutates anything.
type GridService struct {
	mu        sync.Mutex
	heldID    string
	schedules *ScheduleService
	logger    *zap.Logger
}

// NewGridService instantiates GridService.
func NewGridService(schedules *ScheduleService, logger *zap.Logger) *GridService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GridService{schedules: schedules, logger: logger}
}

// Held returns the id of the currently held placement, or "".
func (s *GridService) Held() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heldID
}

// Pickup starts a drag for the given placement. A pick-up while another item
// is held implicitly cancels the prior hold. The store is not touched.
func (s *GridService) Pickup(ctx context.Context, id string) error {
	if _, err := s.schedules.Get(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.heldID != "" && s.heldID != id {
		s.logger.Debug("drag replaced", zap.String("previous", s.heldID), zap.String("held", id))
	}
	s.heldID = id
	s.mu.Unlock()
	return nil
}

// Hover reports whether (day, time) is a valid drop target for the held
// item. Display hint only; no state changes.
func (s *GridService) Hover(day, timeOfDay string) bool {
	s.mu.Lock()
	held := s.heldID
	s.mu.Unlock()
	if held == "" {
		return false
	}
	return s.schedules.validateSlot(day, timeOfDay) == nil
}

// Drop completes the drag by moving the held item to the target cell. The
// hold is cleared whether or not the move succeeds; a failed move leaves the
// store, and therefore the conflict list, exactly as before.
func (s *GridService) Drop(ctx context.Context, day, timeOfDay string) (*models.Placement, error) {
	s.mu.Lock()
	held := s.heldID
	s.heldID = ""
	s.mu.Unlock()

	if held == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no schedule item is being dragged")
	}

	moved, err := s.schedules.Move(ctx, held, MovePlacementRequest{Day: day, Time: timeOfDay})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// Cancel abandons the drag with no store mutation. Cancelling with nothing
// held is a no-op.
func (s *GridService) Cancel() {
	s.mu.Lock()
	s.heldID = ""
	s.mu.Unlock()
}
