package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo persists auth events in the auth_events table.
// The table is INSERT-only; retention is handled operationally.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO auth_events (id, type, subject, email, ip_address, message, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.Type,
		e.Subject,
		e.Email,
		e.IPAddress,
		e.Message,
		e.CreatedAt,
	)
	return err
}
