package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for auth events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records authentication outcomes.
//
// IMPORTANT:
// - Audit is internal-only. Do not expose these records to users.
// - Callers should treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}
	if e.Subject == "" && e.Email == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogAuthEvent records an authentication outcome for the given attempt.
func (s *Service) LogAuthEvent(ctx context.Context, typ EventType, subject, email, ip, message string) error {
	return s.Append(ctx, Event{
		Type:      typ,
		Subject:   subject,
		Email:     email,
		IPAddress: ip,
		Message:   message,
	})
}
