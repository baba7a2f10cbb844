package plan

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu     sync.Mutex
	plans  map[string]Plan
	owners map[string]string // plan id -> user id
	groups map[string]ExerciseGroup
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		plans:  make(map[string]Plan),
		owners: make(map[string]string),
		groups: make(map[string]ExerciseGroup),
	}
}

func (r *MemoryRepo) CreatePlan(ctx context.Context, userID string, p Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID] = p
	r.owners[p.ID] = userID
	return nil
}

func (r *MemoryRepo) PlanByID(ctx context.Context, userID, planID string) (Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok || r.owners[planID] != userID {
		return Plan{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListPlans(ctx context.Context, userID, userActivityID string) ([]Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Plan, 0)
	for id, p := range r.plans {
		if r.owners[id] != userID {
			continue
		}
		if userActivityID != "" && p.UserActivityID != userActivityID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryRepo) CreateGroup(ctx context.Context, g ExerciseGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[g.ID] = g
	return nil
}

func (r *MemoryRepo) ListGroups(ctx context.Context, planID string) ([]ExerciseGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ExerciseGroup, 0)
	for _, g := range r.groups {
		if g.PlanID == planID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *MemoryRepo) GroupOwned(ctx context.Context, userID, groupID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[groupID]
	if !ok {
		return false, nil
	}
	return r.owners[g.PlanID] == userID, nil
}
