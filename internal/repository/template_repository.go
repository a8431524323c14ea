package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartschedule/timetable-api/internal/models"
)

// TemplateRepository keeps named schedule snapshots in memory.
type TemplateRepository struct {
	mu    sync.RWMutex
	items map[string]models.ScheduleTemplate
	order []string
	now   func() time.Time
}

// NewTemplateRepository builds an empty template store.
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{
		items: make(map[string]models.ScheduleTemplate),
		now:   time.Now,
	}
}

// List returns all templates in creation order.
func (r *TemplateRepository) List(ctx context.Context) ([]models.ScheduleTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ScheduleTemplate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

// FindByID returns a copy of the template with the given id.
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*models.ScheduleTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := t
	cp.Placements = append([]models.Placement(nil), t.Placements...)
	return &cp, nil
}

// Insert stores a new template with a fresh id and timestamps.
func (r *TemplateRepository) Insert(ctx context.Context, template *models.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	now := r.now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now
	stored := *template
	stored.Placements = append([]models.Placement(nil), template.Placements...)
	r.items[template.ID] = stored
	r.order = append(r.order, template.ID)
	return nil
}

// Delete removes the template with the given id.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
