package exercise

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubGroups owns every group id in the set for user "user-1".
type stubGroups struct {
	owned map[string]bool
}

func (s stubGroups) GroupOwned(ctx context.Context, userID, groupID string) (bool, error) {
	return userID == "user-1" && s.owned[groupID], nil
}

func testService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	return NewService(repo, stubGroups{owned: map[string]bool{"group-1": true}}), repo
}

func TestCreateExerciseValidatesTrackingType(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateExercise(ctx, "Squat", "", "guesswork"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	e, err := svc.CreateExercise(ctx, "Squat", "back squat", TrackingStrength)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.TrackingType != TrackingStrength {
		t.Fatalf("unexpected exercise: %+v", e)
	}
}

func TestAddToGroup(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	e, err := svc.CreateExercise(ctx, "Squat", "", TrackingStrength)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ge, err := svc.AddToGroup(ctx, "user-1", "group-1", e.ID, 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if ge.GroupID != "group-1" || ge.ExerciseID != e.ID {
		t.Fatalf("unexpected link: %+v", ge)
	}

	// A foreign group reads as missing.
	if _, err := svc.AddToGroup(ctx, "user-2", "group-1", e.ID, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// Unknown exercise is rejected.
	if _, err := svc.AddToGroup(ctx, "user-1", "group-1", "missing", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListGroupExercisesOrdersByPosition(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	squat, _ := svc.CreateExercise(ctx, "Squat", "", TrackingStrength)
	press, _ := svc.CreateExercise(ctx, "Press", "", TrackingStrength)
	if _, err := svc.AddToGroup(ctx, "user-1", "group-1", press.ID, 1); err != nil {
		t.Fatalf("add press: %v", err)
	}
	if _, err := svc.AddToGroup(ctx, "user-1", "group-1", squat.ID, 0); err != nil {
		t.Fatalf("add squat: %v", err)
	}

	got, err := svc.ListGroupExercises(ctx, "user-1", "group-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Exercise.Name != "Squat" || got[1].Exercise.Name != "Press" {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := svc.ListGroupExercises(ctx, "user-2", "group-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign group, got %v", err)
	}
}

func TestLogExercise(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	e, err := svc.CreateExercise(ctx, "Squat", "", TrackingStrength)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	l, err := svc.LogExercise(ctx, "user-1", e.ID, time.Time{}, map[string]float64{"reps": 5, "weight_kg": 100})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if l.UserID != "user-1" || l.PerformedAt.IsZero() {
		t.Fatalf("unexpected log: %+v", l)
	}

	if _, err := svc.LogExercise(ctx, "user-1", e.ID, time.Time{}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty metrics, got %v", err)
	}
	if _, err := svc.LogExercise(ctx, "user-1", e.ID, time.Time{}, map[string]float64{"reps": -1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative metric, got %v", err)
	}
	if _, err := svc.LogExercise(ctx, "user-1", "missing", time.Time{}, map[string]float64{"reps": 5}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown exercise, got %v", err)
	}
}

func TestListLogsIsScopedToOwner(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	e, _ := svc.CreateExercise(ctx, "Squat", "", TrackingStrength)
	if _, err := svc.LogExercise(ctx, "user-1", e.ID, time.Time{}, map[string]float64{"reps": 5}); err != nil {
		t.Fatalf("log: %v", err)
	}

	mine, err := svc.ListLogs(ctx, "user-1", "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ExerciseName != "Squat" {
		t.Fatalf("unexpected logs: %+v", mine)
	}

	theirs, err := svc.ListLogs(ctx, "user-2", "", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(theirs) != 0 {
		t.Fatalf("expected no logs for other user, got %+v", theirs)
	}
}

func TestWeeklySummary(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	squat, _ := svc.CreateExercise(ctx, "Squat", "", TrackingStrength)
	run, _ := svc.CreateExercise(ctx, "Run", "", TrackingCardio)

	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	inWeek := weekStart.Add(36 * time.Hour)
	nextWeek := weekStart.AddDate(0, 0, 8)

	if _, err := svc.LogExercise(ctx, "user-1", squat.ID, inWeek, map[string]float64{"reps": 5, "weight_kg": 100}); err != nil {
		t.Fatalf("log squat 1: %v", err)
	}
	if _, err := svc.LogExercise(ctx, "user-1", squat.ID, inWeek.Add(48*time.Hour), map[string]float64{"reps": 3, "weight_kg": 110}); err != nil {
		t.Fatalf("log squat 2: %v", err)
	}
	if _, err := svc.LogExercise(ctx, "user-1", run.ID, inWeek, map[string]float64{"distance_km": 8}); err != nil {
		t.Fatalf("log run: %v", err)
	}
	// Outside the window; must not be counted.
	if _, err := svc.LogExercise(ctx, "user-1", run.ID, nextWeek, map[string]float64{"distance_km": 21}); err != nil {
		t.Fatalf("log next week: %v", err)
	}

	sum, err := svc.Summary(ctx, "user-1", weekStart)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalLogs != 3 {
		t.Fatalf("expected 3 logs in window, got %d", sum.TotalLogs)
	}
	if len(sum.ByExercise) != 2 {
		t.Fatalf("expected 2 exercises, got %+v", sum.ByExercise)
	}

	// Sorted by name: Run before Squat.
	if sum.ByExercise[0].ExerciseName != "Run" || sum.ByExercise[0].MetricTotals["distance_km"] != 8 {
		t.Fatalf("unexpected run summary: %+v", sum.ByExercise[0])
	}
	sq := sum.ByExercise[1]
	if sq.Sessions != 2 || sq.MetricTotals["reps"] != 8 || sq.MetricTotals["weight_kg"] != 210 {
		t.Fatalf("unexpected squat summary: %+v", sq)
	}
}
