package plan

import "time"

// Plan is a training plan attached to one of the owner's activity links.
// Ownership is derived through the user_activity, never stored twice.
type Plan struct {
	ID             string    `json:"id" db:"id"`
	UserActivityID string    `json:"user_activity_id" db:"user_activity_id"`
	Name           string    `json:"name" db:"name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ExerciseGroup is a named slot inside a plan, pinned to a weekday
// (0 = Sunday .. 6 = Saturday).
type ExerciseGroup struct {
	ID        string `json:"id" db:"id"`
	PlanID    string `json:"plan_id" db:"plan_id"`
	Name      string `json:"name" db:"name"`
	DayOfWeek int    `json:"day_of_week" db:"day_of_week"`
}
