package exercise

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu        sync.Mutex
	exercises map[string]Exercise
	inGroups  map[string]GroupExercise
	logs      map[string]Log
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		exercises: make(map[string]Exercise),
		inGroups:  make(map[string]GroupExercise),
		logs:      make(map[string]Log),
	}
}

func (r *MemoryRepo) CreateExercise(ctx context.Context, e Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises[e.ID] = e
	return nil
}

func (r *MemoryRepo) ListExercises(ctx context.Context) ([]Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		out = append(out, e)
	}
	return out, nil
}

func (r *MemoryRepo) ExerciseByID(ctx context.Context, id string) (Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return Exercise{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) AddToGroup(ctx context.Context, ge GroupExercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inGroups[ge.ID] = ge
	return nil
}

func (r *MemoryRepo) ListGroupExercises(ctx context.Context, groupID string) ([]GroupExerciseDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]GroupExerciseDetail, 0)
	for _, ge := range r.inGroups {
		if ge.GroupID != groupID {
			continue
		}
		out = append(out, GroupExerciseDetail{
			ID:       ge.ID,
			Position: ge.Position,
			Exercise: r.exercises[ge.ExerciseID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *MemoryRepo) CreateLog(ctx context.Context, l Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[l.ID] = l
	return nil
}

func (r *MemoryRepo) ListLogs(ctx context.Context, userID, exerciseID string, from, to time.Time) ([]LogDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogDetail, 0)
	for _, l := range r.logs {
		if l.UserID != userID {
			continue
		}
		if exerciseID != "" && l.ExerciseID != exerciseID {
			continue
		}
		if !from.IsZero() && l.PerformedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !l.PerformedAt.Before(to) {
			continue
		}
		out = append(out, LogDetail{Log: l, ExerciseName: r.exercises[l.ExerciseID].Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PerformedAt.After(out[j].PerformedAt) })
	return out, nil
}
