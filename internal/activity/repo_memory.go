package activity

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu         sync.Mutex
	activities map[string]Activity
	links      map[string]UserActivity

	// Err, when set, is returned by every method. Tests use it to simulate
	// storage failures.
	Err error
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		activities: make(map[string]Activity),
		links:      make(map[string]UserActivity),
	}
}

func (r *MemoryRepo) CreateActivity(ctx context.Context, a Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.activities[a.ID] = a
	return nil
}

func (r *MemoryRepo) ListActivities(ctx context.Context) ([]Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]Activity, 0, len(r.activities))
	for _, a := range r.activities {
		out = append(out, a)
	}
	return out, nil
}

func (r *MemoryRepo) ActivityByID(ctx context.Context, id string) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return Activity{}, r.Err
	}
	a, ok := r.activities[id]
	if !ok {
		return Activity{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) LinkActivity(ctx context.Context, ua UserActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.links {
		if existing.UserID == ua.UserID && existing.ActivityID == ua.ActivityID {
			return ErrAlreadyLinked
		}
	}
	r.links[ua.ID] = ua
	return nil
}

func (r *MemoryRepo) ListUserActivities(ctx context.Context, userID, activityID string) ([]UserActivityDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]UserActivityDetail, 0)
	for _, ua := range r.links {
		if ua.UserID != userID {
			continue
		}
		if activityID != "" && ua.ActivityID != activityID {
			continue
		}
		out = append(out, UserActivityDetail{
			ID:        ua.ID,
			CreatedAt: ua.CreatedAt,
			Activity:  r.activities[ua.ActivityID],
		})
	}
	return out, nil
}

func (r *MemoryRepo) UserActivityOwned(ctx context.Context, userID, userActivityID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	ua, ok := r.links[userActivityID]
	return ok && ua.UserID == userID, nil
}
