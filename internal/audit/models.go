package audit

import "time"

// Event is an immutable, append-only record of an authentication outcome.
//
// Invariants:
// - Events are never updated or deleted.
// - Recording is best-effort; sign-in and sign-up flows must not fail
//   because the audit write failed.
//
// Storage recommendation (Postgres):
// - Table auth_events with an INSERT-only policy.
// - Optional: partition by time for retention.

type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the authentication outcome being recorded.
	Type EventType `json:"type" db:"type"`

	// Subject is the user identifier when known (missing for failed
	// sign-ins against unknown emails).
	Subject string `json:"subject,omitempty" db:"subject"`

	// Email is the address the attempt was made with.
	Email string `json:"email,omitempty" db:"email"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeSignupSucceeded EventType = "signup_succeeded"
	EventTypeSignupRejected  EventType = "signup_rejected"
	EventTypeLoginSucceeded  EventType = "login_succeeded"
	EventTypeLoginFailed     EventType = "login_failed"
	EventTypeLoginThrottled  EventType = "login_throttled"
	EventTypeRefreshRejected EventType = "refresh_rejected"
)
