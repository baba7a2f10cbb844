package plan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("plan: not found")
	ErrInvalidArgument = errors.New("plan: invalid argument")
)

// Repository is the persistence contract for plans and their groups.
//
// Ownership invariant: plan reads take the owning userID and resolve
// ownership through the user_activities link in the query itself. A plan
// owned by someone else is indistinguishable from a missing one.
type Repository interface {
	CreatePlan(ctx context.Context, userID string, p Plan) error
	PlanByID(ctx context.Context, userID, planID string) (Plan, error)
	ListPlans(ctx context.Context, userID, userActivityID string) ([]Plan, error)

	CreateGroup(ctx context.Context, g ExerciseGroup) error
	ListGroups(ctx context.Context, planID string) ([]ExerciseGroup, error)
	GroupOwned(ctx context.Context, userID, groupID string) (bool, error)
}

// LinkChecker answers whether a user_activity belongs to a user. The
// activity repository satisfies it.
type LinkChecker interface {
	UserActivityOwned(ctx context.Context, userID, userActivityID string) (bool, error)
}

type Service struct {
	repo  Repository
	links LinkChecker
	clock func() time.Time
}

func NewService(repo Repository, links LinkChecker) *Service {
	return &Service{repo: repo, links: links, clock: time.Now}
}

func (s *Service) CreatePlan(ctx context.Context, userID, userActivityID, name string) (Plan, error) {
	if userID == "" || userActivityID == "" || name == "" {
		return Plan{}, ErrInvalidArgument
	}
	owned, err := s.links.UserActivityOwned(ctx, userID, userActivityID)
	if err != nil {
		return Plan{}, err
	}
	if !owned {
		return Plan{}, ErrNotFound
	}

	p := Plan{
		ID:             uuid.NewString(),
		UserActivityID: userActivityID,
		Name:           name,
		CreatedAt:      s.clock().UTC(),
	}
	if err := s.repo.CreatePlan(ctx, userID, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) PlanByID(ctx context.Context, userID, planID string) (Plan, error) {
	if userID == "" || planID == "" {
		return Plan{}, ErrInvalidArgument
	}
	return s.repo.PlanByID(ctx, userID, planID)
}

// ListPlans returns the caller's plans, optionally filtered by activity link.
func (s *Service) ListPlans(ctx context.Context, userID, userActivityID string) ([]Plan, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListPlans(ctx, userID, userActivityID)
}

func (s *Service) CreateGroup(ctx context.Context, userID, planID, name string, dayOfWeek int) (ExerciseGroup, error) {
	if userID == "" || planID == "" || name == "" {
		return ExerciseGroup{}, ErrInvalidArgument
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ExerciseGroup{}, ErrInvalidArgument
	}
	if _, err := s.repo.PlanByID(ctx, userID, planID); err != nil {
		return ExerciseGroup{}, err
	}

	g := ExerciseGroup{
		ID:        uuid.NewString(),
		PlanID:    planID,
		Name:      name,
		DayOfWeek: dayOfWeek,
	}
	if err := s.repo.CreateGroup(ctx, g); err != nil {
		return ExerciseGroup{}, err
	}
	return g, nil
}

func (s *Service) ListGroups(ctx context.Context, userID, planID string) ([]ExerciseGroup, error) {
	if userID == "" || planID == "" {
		return nil, ErrInvalidArgument
	}
	if _, err := s.repo.PlanByID(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.repo.ListGroups(ctx, planID)
}
