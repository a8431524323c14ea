package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartschedule/timetable-api/internal/models"
	"github.com/smartschedule/timetable-api/internal/repository"
	appErrors "github.com/smartschedule/timetable-api/pkg/errors"
)

type templateRepository interface {
	List(ctx context.Context) ([]models.ScheduleTemplate, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleTemplate, error)
	Insert(ctx context.Context, template *models.ScheduleTemplate) error
	Delete(ctx context.Context, id string) error
}

// SaveTemplateRequest names a snapshot of the current schedule.
type SaveTemplateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// TemplateService manages named schedule snapshots.
type TemplateService struct {
	repo      templateRepository
	schedules *ScheduleService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTemplateService instantiates TemplateService.
func NewTemplateService(repo templateRepository, schedules *ScheduleService, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{repo: repo, schedules: schedules, validator: validate, logger: logger}
}

// List returns all saved templates.
func (s *TemplateService) List(ctx context.Context) ([]models.ScheduleTemplate, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	return templates, nil
}

// Save snapshots the current placement set under the given name.
func (s *TemplateService) Save(ctx context.Context, req SaveTemplateRequest) (*models.ScheduleTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}

	placements, err := s.schedules.List(ctx, models.PlacementFilter{})
	if err != nil {
		return nil, err
	}

	template := models.ScheduleTemplate{
		Name:        req.Name,
		Description: req.Description,
		Placements:  placements,
	}
	if err := s.repo.Insert(ctx, &template); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save template")
	}

	s.logger.Info("template saved", zap.String("template_id", template.ID), zap.Int("placements", len(template.Placements)))
	return &template, nil
}

// Load replaces the schedule with the template's placements and re-derives
// conflicts for the new set.
func (s *TemplateService) Load(ctx context.Context, id string) ([]models.Placement, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}

	if err := s.schedules.ReplaceAll(ctx, template.Placements); err != nil {
		return nil, err
	}

	s.logger.Info("template loaded", zap.String("template_id", id), zap.Int("placements", len(template.Placements)))
	return s.schedules.List(ctx, models.PlacementFilter{})
}

// Delete removes a saved template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	return nil
}
