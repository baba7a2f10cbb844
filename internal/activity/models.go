package activity

import "time"

// Activity is a shared catalog entry (e.g., running, resistance training).
// The catalog is global: every account reads it, only admins mutate it.
type Activity struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// UserActivity links a user to a catalog activity they train.
//
// Ownership invariant: UserID is the authenticated subject and is never
// accepted from a request body.
type UserActivity struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	ActivityID string    `json:"activity_id" db:"activity_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// UserActivityDetail is the joined read shape returned to clients.
type UserActivityDetail struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Activity  Activity  `json:"activity"`
}
