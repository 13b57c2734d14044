package patient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo is the in-memory backing store used by the mock configuration
// and by tests. It hands out deep copies so callers can never mutate the
// store through a returned record, and it preserves insertion order.
type memoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]*Patient
	order []string
	now   func() time.Time
}

// NewMemoryRepo creates an empty in-memory patient store.
func NewMemoryRepo() Repository {
	return &memoryRepo{
		byID: make(map[string]*Patient),
		now:  time.Now,
	}
}

// NewSeededMemoryRepo creates an in-memory store pre-populated with the
// given records. Records without an id get one assigned.
func NewSeededMemoryRepo(patients []*Patient) Repository {
	r := &memoryRepo{
		byID: make(map[string]*Patient, len(patients)),
		now:  time.Now,
	}
	now := r.now()
	for _, p := range patients {
		cp := p.Clone()
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = now
		}
		if cp.UpdatedAt.IsZero() {
			cp.UpdatedAt = cp.CreatedAt
		}
		r.byID[cp.ID] = cp
		r.order = append(r.order, cp.ID)
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Patient, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memoryRepo) Create(_ context.Context, p *Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := p.Clone()
	cp.ID = uuid.NewString()
	now := r.now()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	r.byID[cp.ID] = cp
	r.order = append(r.order, cp.ID)
	return cp.Clone(), nil
}

func (r *memoryRepo) Update(_ context.Context, id string, p *Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := p.Clone()
	cp.ID = existing.ID
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = r.now()

	r.byID[id] = cp
	return cp.Clone(), nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
