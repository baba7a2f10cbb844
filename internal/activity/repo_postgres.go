package activity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepo backs the activity catalog and user links.
//
// Schema:
//
//	CREATE TABLE activities (
//	    id          UUID PRIMARY KEY,
//	    name        TEXT NOT NULL,
//	    description TEXT NOT NULL DEFAULT ''
//	);
//
//	CREATE TABLE user_activities (
//	    id          UUID PRIMARY KEY,
//	    user_id     UUID NOT NULL REFERENCES users(id),
//	    activity_id UUID NOT NULL REFERENCES activities(id),
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    UNIQUE (user_id, activity_id)
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const pgUniqueViolation = "23505"

func (r *PostgresRepo) CreateActivity(ctx context.Context, a Activity) error {
	const q = `INSERT INTO activities (id, name, description) VALUES ($1,$2,$3)`
	_, err := r.db.ExecContext(ctx, q, a.ID, a.Name, a.Description)
	return err
}

func (r *PostgresRepo) ListActivities(ctx context.Context) ([]Activity, error) {
	const q = `SELECT id, name, description FROM activities ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ActivityByID(ctx context.Context, id string) (Activity, error) {
	const q = `SELECT id, name, description FROM activities WHERE id = $1`
	var a Activity
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Activity{}, ErrNotFound
	}
	if err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (r *PostgresRepo) LinkActivity(ctx context.Context, ua UserActivity) error {
	const q = `
INSERT INTO user_activities (id, user_id, activity_id, created_at)
VALUES ($1,$2,$3,$4)
`
	_, err := r.db.ExecContext(ctx, q, ua.ID, ua.UserID, ua.ActivityID, ua.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrAlreadyLinked
	}
	return err
}

func (r *PostgresRepo) ListUserActivities(ctx context.Context, userID, activityID string) ([]UserActivityDetail, error) {
	q := `
SELECT ua.id, ua.created_at, a.id, a.name, a.description
FROM user_activities ua
JOIN activities a ON a.id = ua.activity_id
WHERE ua.user_id = $1
`
	args := []any{userID}
	if activityID != "" {
		q += ` AND ua.activity_id = $2`
		args = append(args, activityID)
	}
	q += ` ORDER BY ua.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserActivityDetail
	for rows.Next() {
		var d UserActivityDetail
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.Activity.ID, &d.Activity.Name, &d.Activity.Description); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) UserActivityOwned(ctx context.Context, userID, userActivityID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM user_activities WHERE id = $1 AND user_id = $2)`
	var owned bool
	if err := r.db.QueryRowContext(ctx, q, userActivityID, userID).Scan(&owned); err != nil {
		return false, err
	}
	return owned, nil
}
