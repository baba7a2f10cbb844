package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("activity: not found")
	ErrInvalidArgument = errors.New("activity: invalid argument")
	ErrAlreadyLinked   = errors.New("activity: already linked")
)

// Repository is the persistence contract for the activity catalog and the
// per-user links into it.
//
// Ownership invariant: every method that touches user_activities takes the
// owning userID and must filter by it in the query itself.
type Repository interface {
	CreateActivity(ctx context.Context, a Activity) error
	ListActivities(ctx context.Context) ([]Activity, error)
	ActivityByID(ctx context.Context, id string) (Activity, error)

	LinkActivity(ctx context.Context, ua UserActivity) error
	ListUserActivities(ctx context.Context, userID, activityID string) ([]UserActivityDetail, error)
	UserActivityOwned(ctx context.Context, userID, userActivityID string) (bool, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// CreateActivity adds a catalog entry. RBAC (admin-only) is enforced at the
// route layer; the service only validates shape.
func (s *Service) CreateActivity(ctx context.Context, name, description string) (Activity, error) {
	if name == "" {
		return Activity{}, ErrInvalidArgument
	}
	a := Activity{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (s *Service) ListActivities(ctx context.Context) ([]Activity, error) {
	return s.repo.ListActivities(ctx)
}

// LinkActivity attaches a catalog activity to the authenticated user.
func (s *Service) LinkActivity(ctx context.Context, userID, activityID string) (UserActivity, error) {
	if userID == "" || activityID == "" {
		return UserActivity{}, ErrInvalidArgument
	}
	if _, err := s.repo.ActivityByID(ctx, activityID); err != nil {
		return UserActivity{}, err
	}

	ua := UserActivity{
		ID:         uuid.NewString(),
		UserID:     userID,
		ActivityID: activityID,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.repo.LinkActivity(ctx, ua); err != nil {
		return UserActivity{}, err
	}
	return ua, nil
}

// ListUserActivities returns the caller's links, optionally filtered by
// catalog activity.
func (s *Service) ListUserActivities(ctx context.Context, userID, activityID string) ([]UserActivityDetail, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListUserActivities(ctx, userID, activityID)
}
