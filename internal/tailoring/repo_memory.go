package tailoring

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory record of past generations. Records do not
// survive a restart; the output directory holds the durable artifacts.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Generation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Generation)}
}

// Create stores a generation record.
func (r *MemoryRepo) Create(ctx context.Context, gen Generation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[gen.ID] = gen
	return nil
}

// GetByID returns a generation record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.data[id]
	if !ok {
		return Generation{}, ErrNotFound
	}
	return gen, nil
}

// List returns generation records, newest first.
func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Generation, 0, len(r.data))
	for _, gen := range r.data {
		out = append(out, gen)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
