package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartschedule/timetable-api/internal/models"
)

// ErrNotFound is returned when a record id is absent from the store.
var ErrNotFound = errors.New("record not found")

// PlacementRepository is the authoritative in-memory placement set. It keeps
// insertion order so listings stay stable across mutations. Callers always
// receive copies; the canonical records never escape the lock.
type PlacementRepository struct {
	mu    sync.RWMutex
	items map[string]models.Placement
	order []string
	now   func() time.Time
}

// NewPlacementRepository builds a store seeded with the given placements.
// Seed entries without an id are assigned one; the seed slice is copied.
func NewPlacementRepository(seed []models.Placement) *PlacementRepository {
	r := &PlacementRepository{
		items: make(map[string]models.Placement, len(seed)),
		now:   time.Now,
	}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Status == "" {
			p.Status = models.StatusActive
		}
		if _, exists := r.items[p.ID]; exists {
			continue
		}
		ts := r.now().UTC()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = ts
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = ts
		}
		r.items[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// List returns all placements in insertion order.
func (r *PlacementRepository) List(ctx context.Context) ([]models.Placement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Placement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

// FindByID returns a copy of the placement with the given id.
func (r *PlacementRepository) FindByID(ctx context.Context, id string) (*models.Placement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

// Insert stores a new placement, assigning a fresh id and timestamps.
func (r *PlacementRepository) Insert(ctx context.Context, placement *models.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if placement.ID == "" {
		placement.ID = uuid.NewString()
	}
	now := r.now().UTC()
	placement.CreatedAt = now
	placement.UpdatedAt = now
	r.items[placement.ID] = *placement
	r.order = append(r.order, placement.ID)
	return nil
}

// Update replaces the stored placement keyed by its id.
func (r *PlacementRepository) Update(ctx context.Context, placement *models.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[placement.ID]
	if !ok {
		return ErrNotFound
	}
	placement.CreatedAt = existing.CreatedAt
	placement.UpdatedAt = r.now().UTC()
	r.items[placement.ID] = *placement
	return nil
}

// Delete removes the placement with the given id. An unknown id is an error,
// not a silent no-op, so callers can surface user mistakes.
func (r *PlacementRepository) Delete(ctx context.Context, id string) error {
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

// SetAllStatus bulk-updates the status of every placement and returns the
// number of records touched.
func (r *PlacementRepository) SetAllStatus(ctx context.Context, status string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	for id, p := range r.items {
		p.Status = status
		p.UpdatedAt = now
		r.items[id] = p
	}
	return len(r.items), nil
}

// ReplaceAll swaps the entire placement set, used when loading a template.
// Entries without ids get fresh ones.
func (r *PlacementRepository) ReplaceAll(ctx context.Context, placements []models.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make(map[string]models.Placement, len(placements))
	order := make([]string, 0, len(placements))
	now := r.now().UTC()
	for _, p := range placements {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, exists := items[p.ID]; exists {
			continue
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		items[p.ID] = p
		order = append(order, p.ID)
	}
	r.items = items
	r.order = order
	return nil
}

// Count returns the number of stored placements.
func (r *PlacementRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
