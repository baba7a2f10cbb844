package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// NOTE: This provider assumes the following table exists:
//
// CREATE TABLE users (
//   id            UUID PRIMARY KEY,
//   email         TEXT NOT NULL UNIQUE,
//   password_hash TEXT NOT NULL,
//   role          TEXT NOT NULL DEFAULT 'user',
//   created_at    TIMESTAMPTZ NOT NULL
// );
//
// Email is stored lower-cased; normalization happens in the Service.

const pgUniqueViolation = "23505"

// PostgresProvider is the production identity provider.
type PostgresProvider struct {
	db    *sql.DB
	clock func() time.Time
}

func NewPostgresProvider(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{db: db, clock: time.Now}
}

func (p *PostgresProvider) CreateUser(ctx context.Context, email, passwordHash, role string) (User, error) {
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    p.clock().UTC(),
	}

	const q = `
INSERT INTO users (id, email, password_hash, role, created_at)
VALUES ($1,$2,$3,$4,$5)
`
	if _, err := p.db.ExecContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (p *PostgresProvider) UserByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, email, password_hash, role, created_at
FROM users
WHERE email = $1
`
	return p.scanUser(p.db.QueryRowContext(ctx, q, email))
}

func (p *PostgresProvider) UserByID(ctx context.Context, id string) (User, error) {
	const q = `
SELECT id, email, password_hash, role, created_at
FROM users
WHERE id = $1
`
	return p.scanUser(p.db.QueryRowContext(ctx, q, id))
}

func (p *PostgresProvider) scanUser(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
