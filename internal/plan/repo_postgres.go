package plan

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo backs plans and exercise groups.
//
// Schema:
//
//	CREATE TABLE plans (
//	    id               UUID PRIMARY KEY,
//	    user_activity_id UUID NOT NULL REFERENCES user_activities(id),
//	    name             TEXT NOT NULL,
//	    created_at       TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE exercise_groups (
//	    id          UUID PRIMARY KEY,
//	    plan_id     UUID NOT NULL REFERENCES plans(id),
//	    name        TEXT NOT NULL,
//	    day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6)
//	);
//
// Plans carry no user_id column; ownership resolves through
// user_activities on every read.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) CreatePlan(ctx context.Context, userID string, p Plan) error {
	// Ownership of the user_activity is checked by the service; the insert
	// guards it again so a stale check cannot attach a plan to someone
	// else's link.
	const q = `
INSERT INTO plans (id, user_activity_id, name, created_at)
SELECT $1, $2, $3, $4
WHERE EXISTS (
    SELECT 1 FROM user_activities WHERE id = $2 AND user_id = $5
)
`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.UserActivityID, p.Name, p.CreatedAt, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) PlanByID(ctx context.Context, userID, planID string) (Plan, error) {
	const q = `
SELECT p.id, p.user_activity_id, p.name, p.created_at
FROM plans p
JOIN user_activities ua ON ua.id = p.user_activity_id
WHERE p.id = $1 AND ua.user_id = $2
`
	var p Plan
	err := r.db.QueryRowContext(ctx, q, planID, userID).
		Scan(&p.ID, &p.UserActivityID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (r *PostgresRepo) ListPlans(ctx context.Context, userID, userActivityID string) ([]Plan, error) {
	q := `
SELECT p.id, p.user_activity_id, p.name, p.created_at
FROM plans p
JOIN user_activities ua ON ua.id = p.user_activity_id
WHERE ua.user_id = $1
`
	args := []any{userID}
	if userActivityID != "" {
		q += ` AND p.user_activity_id = $2`
		args = append(args, userActivityID)
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.UserActivityID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateGroup(ctx context.Context, g ExerciseGroup) error {
	const q = `
INSERT INTO exercise_groups (id, plan_id, name, day_of_week)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, g.ID, g.PlanID, g.Name, g.DayOfWeek)
	return err
}

func (r *PostgresRepo) ListGroups(ctx context.Context, planID string) ([]ExerciseGroup, error) {
	const q = `
SELECT id, plan_id, name, day_of_week
FROM exercise_groups
WHERE plan_id = $1
ORDER BY day_of_week, name
`
	rows, err := r.db.QueryContext(ctx, q, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExerciseGroup
	for rows.Next() {
		var g ExerciseGroup
		if err := rows.Scan(&g.ID, &g.PlanID, &g.Name, &g.DayOfWeek); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GroupOwned(ctx context.Context, userID, groupID string) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1
    FROM exercise_groups g
    JOIN plans p ON p.id = g.plan_id
    JOIN user_activities ua ON ua.id = p.user_activity_id
    WHERE g.id = $1 AND ua.user_id = $2
)
`
	var owned bool
	if err := r.db.QueryRowContext(ctx, q, groupID, userID).Scan(&owned); err != nil {
		return false, err
	}
	return owned, nil
}
