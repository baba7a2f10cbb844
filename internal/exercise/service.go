package exercise

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("exercise: not found")
	ErrInvalidArgument = errors.New("exercise: invalid argument")
)

var trackingTypes = map[string]struct{}{
	TrackingStrength: {},
	TrackingCardio:   {},
	TrackingDuration: {},
}

// Repository is the persistence contract for the exercise catalog, group
// contents, and logs.
//
// Ownership invariant: log reads take the owning userID and filter by it in
// the query itself.
type Repository interface {
	CreateExercise(ctx context.Context, e Exercise) error
	ListExercises(ctx context.Context) ([]Exercise, error)
	ExerciseByID(ctx context.Context, id string) (Exercise, error)

	AddToGroup(ctx context.Context, ge GroupExercise) error
	ListGroupExercises(ctx context.Context, groupID string) ([]GroupExerciseDetail, error)

	CreateLog(ctx context.Context, l Log) error
	ListLogs(ctx context.Context, userID, exerciseID string, from, to time.Time) ([]LogDetail, error)
}

// GroupChecker answers whether an exercise group belongs to a user. The
// plan repository satisfies it.
type GroupChecker interface {
	GroupOwned(ctx context.Context, userID, groupID string) (bool, error)
}

type Service struct {
	repo   Repository
	groups GroupChecker
	clock  func() time.Time
}

func NewService(repo Repository, groups GroupChecker) *Service {
	return &Service{repo: repo, groups: groups, clock: time.Now}
}

// CreateExercise adds a catalog entry. RBAC (admin-only) is enforced at the
// route layer.
func (s *Service) CreateExercise(ctx context.Context, name, description, trackingType string) (Exercise, error) {
	if name == "" {
		return Exercise{}, ErrInvalidArgument
	}
	if _, ok := trackingTypes[trackingType]; !ok {
		return Exercise{}, ErrInvalidArgument
	}
	e := Exercise{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		TrackingType: trackingType,
	}
	if err := s.repo.CreateExercise(ctx, e); err != nil {
		return Exercise{}, err
	}
	return e, nil
}

func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	return s.repo.ListExercises(ctx)
}

// AddToGroup places a catalog exercise inside one of the caller's groups.
// A foreign group reads as missing.
func (s *Service) AddToGroup(ctx context.Context, userID, groupID, exerciseID string, position int) (GroupExercise, error) {
	if userID == "" || groupID == "" || exerciseID == "" || position < 0 {
		return GroupExercise{}, ErrInvalidArgument
	}
	owned, err := s.groups.GroupOwned(ctx, userID, groupID)
	if err != nil {
		return GroupExercise{}, err
	}
	if !owned {
		return GroupExercise{}, ErrNotFound
	}
	if _, err := s.repo.ExerciseByID(ctx, exerciseID); err != nil {
		return GroupExercise{}, err
	}

	ge := GroupExercise{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		ExerciseID: exerciseID,
		Position:   position,
	}
	if err := s.repo.AddToGroup(ctx, ge); err != nil {
		return GroupExercise{}, err
	}
	return ge, nil
}

func (s *Service) ListGroupExercises(ctx context.Context, userID, groupID string) ([]GroupExerciseDetail, error) {
	if userID == "" || groupID == "" {
		return nil, ErrInvalidArgument
	}
	owned, err := s.groups.GroupOwned(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}
	return s.repo.ListGroupExercises(ctx, groupID)
}

// LogExercise records a performed exercise for the caller.
func (s *Service) LogExercise(ctx context.Context, userID, exerciseID string, performedAt time.Time, metrics map[string]float64) (Log, error) {
	if userID == "" || exerciseID == "" || len(metrics) == 0 {
		return Log{}, ErrInvalidArgument
	}
	for k, v := range metrics {
		if k == "" || v < 0 {
			return Log{}, ErrInvalidArgument
		}
	}
	if _, err := s.repo.ExerciseByID(ctx, exerciseID); err != nil {
		return Log{}, err
	}

	now := s.clock().UTC()
	if performedAt.IsZero() {
		performedAt = now
	}
	l := Log{
		ID:          uuid.NewString(),
		UserID:      userID,
		ExerciseID:  exerciseID,
		PerformedAt: performedAt.UTC(),
		Metrics:     metrics,
		CreatedAt:   now,
	}
	if err := s.repo.CreateLog(ctx, l); err != nil {
		return Log{}, err
	}
	return l, nil
}

// ListLogs returns the caller's logs, optionally filtered by exercise and
// time window. Zero from/to disable the bound.
func (s *Service) ListLogs(ctx context.Context, userID, exerciseID string, from, to time.Time) ([]LogDetail, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListLogs(ctx, userID, exerciseID, from, to)
}

// Summary aggregates the caller's logs for the week starting at weekStart.
func (s *Service) Summary(ctx context.Context, userID string, weekStart time.Time) (WeeklySummary, error) {
	if userID == "" {
		return WeeklySummary{}, ErrInvalidArgument
	}
	from := weekStart.UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)

	logs, err := s.repo.ListLogs(ctx, userID, "", from, to)
	if err != nil {
		return WeeklySummary{}, err
	}

	byID := make(map[string]*ExerciseSummary)
	for _, l := range logs {
		es, ok := byID[l.ExerciseID]
		if !ok {
			es = &ExerciseSummary{
				ExerciseID:   l.ExerciseID,
				ExerciseName: l.ExerciseName,
				MetricTotals: make(map[string]float64),
			}
			byID[l.ExerciseID] = es
		}
		es.Sessions++
		for k, v := range l.Metrics {
			es.MetricTotals[k] += v
		}
	}

	out := WeeklySummary{From: from, To: to, TotalLogs: len(logs)}
	for _, es := range byID {
		out.ByExercise = append(out.ByExercise, *es)
	}
	sort.Slice(out.ByExercise, func(i, j int) bool {
		return out.ByExercise[i].ExerciseName < out.ByExercise[j].ExerciseName
	})
	return out, nil
}
