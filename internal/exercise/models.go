package exercise

import "time"

// Tracking types decide which metrics a log is expected to carry.
const (
	TrackingStrength = "strength" // sets, reps, weight_kg
	TrackingCardio   = "cardio"   // distance_km, duration_min
	TrackingDuration = "duration" // duration_min
)

// Exercise is a shared catalog entry. Like activities, the catalog is
// global and admin-curated.
type Exercise struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description,omitempty" db:"description"`
	TrackingType string `json:"tracking_type" db:"tracking_type"`
}

// GroupExercise places a catalog exercise inside an exercise group.
type GroupExercise struct {
	ID         string `json:"id" db:"id"`
	GroupID    string `json:"group_id" db:"exercise_group_id"`
	ExerciseID string `json:"exercise_id" db:"exercise_id"`
	Position   int    `json:"position" db:"position"`
}

// GroupExerciseDetail is the joined read shape for a group's contents.
type GroupExerciseDetail struct {
	ID       string   `json:"id"`
	Position int      `json:"position"`
	Exercise Exercise `json:"exercise"`
}

// Log records one performed exercise. Metrics are free-form numeric values
// keyed by name (reps, weight_kg, distance_km, ...), stored as JSONB.
//
// Ownership invariant: UserID is the authenticated subject and is never
// accepted from a request body.
type Log struct {
	ID          string             `json:"id" db:"id"`
	UserID      string             `json:"user_id" db:"user_id"`
	ExerciseID  string             `json:"exercise_id" db:"exercise_id"`
	PerformedAt time.Time          `json:"performed_at" db:"performed_at"`
	Metrics     map[string]float64 `json:"metrics" db:"metrics"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

// LogDetail is a log joined with its catalog exercise.
type LogDetail struct {
	Log
	ExerciseName string `json:"exercise_name"`
}

// ExerciseSummary aggregates one exercise's logs inside a summary window.
type ExerciseSummary struct {
	ExerciseID   string             `json:"exercise_id"`
	ExerciseName string             `json:"exercise_name"`
	Sessions     int                `json:"sessions"`
	MetricTotals map[string]float64 `json:"metric_totals"`
}

// WeeklySummary is the caller's training summary for one week.
type WeeklySummary struct {
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	TotalLogs  int               `json:"total_logs"`
	ByExercise []ExerciseSummary `json:"by_exercise"`
}
