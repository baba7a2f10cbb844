package audit

import (
	"context"
	"sync"
)

// MemoryRepo keeps the auth-event trail in memory, for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu    sync.Mutex
	trail []Event
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trail = append(r.trail, e)
	return nil
}

// Events returns a copy of the trail in append order.
func (r *MemoryRepo) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.trail))
	copy(out, r.trail)
	return out
}

// HasType reports whether any recorded event carries the given outcome.
// Auth-flow tests assert on outcomes, not on trail positions.
func (r *MemoryRepo) HasType(t EventType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.trail {
		if e.Type == t {
			return true
		}
	}
	return false
}
