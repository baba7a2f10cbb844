package exercise

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// PostgresRepo backs the exercise catalog, group contents, and logs.
//
// Schema:
//
//	CREATE TABLE exercises (
//	    id            UUID PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    description   TEXT NOT NULL DEFAULT '',
//	    tracking_type TEXT NOT NULL
//	);
//
//	CREATE TABLE exercise_group_exercises (
//	    id                UUID PRIMARY KEY,
//	    exercise_group_id UUID NOT NULL REFERENCES exercise_groups(id),
//	    exercise_id       UUID NOT NULL REFERENCES exercises(id),
//	    position          INT NOT NULL DEFAULT 0
//	);
//
//	CREATE TABLE exercise_logs (
//	    id           UUID PRIMARY KEY,
//	    user_id      UUID NOT NULL REFERENCES users(id),
//	    exercise_id  UUID NOT NULL REFERENCES exercises(id),
//	    performed_at TIMESTAMPTZ NOT NULL,
//	    metrics      JSONB NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) CreateExercise(ctx context.Context, e Exercise) error {
	const q = `
INSERT INTO exercises (id, name, description, tracking_type)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Name, e.Description, e.TrackingType)
	return err
}

func (r *PostgresRepo) ListExercises(ctx context.Context) ([]Exercise, error) {
	const q = `SELECT id, name, description, tracking_type FROM exercises ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.TrackingType); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ExerciseByID(ctx context.Context, id string) (Exercise, error) {
	const q = `SELECT id, name, description, tracking_type FROM exercises WHERE id = $1`
	var e Exercise
	err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.Description, &e.TrackingType)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	if err != nil {
		return Exercise{}, err
	}
	return e, nil
}

func (r *PostgresRepo) AddToGroup(ctx context.Context, ge GroupExercise) error {
	const q = `
INSERT INTO exercise_group_exercises (id, exercise_group_id, exercise_id, position)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, ge.ID, ge.GroupID, ge.ExerciseID, ge.Position)
	return err
}

func (r *PostgresRepo) ListGroupExercises(ctx context.Context, groupID string) ([]GroupExerciseDetail, error) {
	const q = `
SELECT ge.id, ge.position, e.id, e.name, e.description, e.tracking_type
FROM exercise_group_exercises ge
JOIN exercises e ON e.id = ge.exercise_id
WHERE ge.exercise_group_id = $1
ORDER BY ge.position
`
	rows, err := r.db.QueryContext(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GroupExerciseDetail
	for rows.Next() {
		var d GroupExerciseDetail
		if err := rows.Scan(&d.ID, &d.Position, &d.Exercise.ID, &d.Exercise.Name, &d.Exercise.Description, &d.Exercise.TrackingType); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateLog(ctx context.Context, l Log) error {
	metrics, err := json.Marshal(l.Metrics)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO exercise_logs (id, user_id, exercise_id, performed_at, metrics, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`
	_, err = r.db.ExecContext(ctx, q, l.ID, l.UserID, l.ExerciseID, l.PerformedAt, metrics, l.CreatedAt)
	return err
}

func (r *PostgresRepo) ListLogs(ctx context.Context, userID, exerciseID string, from, to time.Time) ([]LogDetail, error) {
	q := `
SELECT l.id, l.user_id, l.exercise_id, l.performed_at, l.metrics, l.created_at, e.name
FROM exercise_logs l
JOIN exercises e ON e.id = l.exercise_id
WHERE l.user_id = $1
`
	args := []any{userID}
	if exerciseID != "" {
		args = append(args, exerciseID)
		q += ` AND l.exercise_id = $2`
	}
	if !from.IsZero() {
		args = append(args, from)
		q += ` AND l.performed_at >= $` + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		q += ` AND l.performed_at < $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY l.performed_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogDetail
	for rows.Next() {
		var d LogDetail
		var metrics []byte
		if err := rows.Scan(&d.ID, &d.UserID, &d.ExerciseID, &d.PerformedAt, &metrics, &d.CreatedAt, &d.ExerciseName); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(metrics, &d.Metrics); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
