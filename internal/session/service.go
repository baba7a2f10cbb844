package session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fitness-platform/internal/audit"
	"fitness-platform/internal/auth"
	"fitness-platform/internal/rbac"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Throttle caps failed sign-in bursts per email. A nil Throttle disables
// throttling.
type Throttle interface {
	// Acquire reserves an attempt slot; false means the cap is exhausted.
	Acquire(ctx context.Context, email string) (bool, error)
	// Release frees the slot after a successful sign-in.
	Release(ctx context.Context, email string) error
}

// Service is the session issuer: it validates input, delegates credential
// storage and lookup to the Provider, translates failures into the closed
// session error taxonomy and shapes responses down to the token pair.
//
// It holds no per-request state; every method is safe for concurrent use.
type Service struct {
	provider Provider
	tokens   *auth.Manager
	audit    *audit.Service
	throttle Throttle

	// upstreamTimeout bounds each provider call.
	upstreamTimeout time.Duration

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(provider Provider, tokens *auth.Manager, auditSvc *audit.Service, throttle Throttle, upstreamTimeout time.Duration) *Service {
	if upstreamTimeout <= 0 {
		upstreamTimeout = 5 * time.Second
	}
	return &Service{
		provider:        provider,
		tokens:          tokens,
		audit:           auditSvc,
		throttle:        throttle,
		upstreamTimeout: upstreamTimeout,
		clock:           time.Now,
	}
}

/* ===================== SIGN UP ===================== */

// SignUp registers a new account and returns an active session for it.
func (s *Service) SignUp(ctx context.Context, email, password, ip string) (auth.TokenPair, error) {
	normEmail, err := normalizeEmail(email)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("%w: email", ErrInvalidArgument)
	}
	if password == "" {
		return auth.TokenPair{}, fmt.Errorf("%w: password", ErrInvalidArgument)
	}
	if len(password) < minPasswordLength {
		s.logEvent(ctx, audit.EventTypeSignupRejected, "", normEmail, ip, "weak password")
		return auth.TokenPair{}, fmt.Errorf("%w: password must be at least %d characters", ErrSignupRejected, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenPair{}, err
	}

	user, err := s.callProvider(ctx, func(ctx context.Context) (User, error) {
		return s.provider.CreateUser(ctx, normEmail, string(hash), rbac.RoleUser)
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.logEvent(ctx, audit.EventTypeSignupRejected, "", normEmail, ip, "email taken")
			return auth.TokenPair{}, fmt.Errorf("%w: email already registered", ErrSignupRejected)
		}
		return auth.TokenPair{}, err
	}

	s.logEvent(ctx, audit.EventTypeSignupSucceeded, user.ID, user.Email, ip, "")
	return s.tokens.IssuePair(s.clock().UTC(), user.ID, user.Email, user.Role)
}

/* ===================== SIGN IN ===================== */

// SignIn exchanges email+password for a credential pair. Any mismatch
// collapses to ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password, ip string) (auth.TokenPair, error) {
	normEmail, err := normalizeEmail(email)
	if err != nil || password == "" {
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	if s.throttle != nil {
		ok, terr := s.throttle.Acquire(ctx, normEmail)
		if terr == nil && !ok {
			// Fail closed with the same answer as a bad password.
			s.logEvent(ctx, audit.EventTypeLoginThrottled, "", normEmail, ip, "attempt cap reached")
			return auth.TokenPair{}, ErrInvalidCredentials
		}
	}

	user, err := s.callProvider(ctx, func(ctx context.Context) (User, error) {
		return s.provider.UserByEmail(ctx, normEmail)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logEvent(ctx, audit.EventTypeLoginFailed, "", normEmail, ip, "unknown email")
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logEvent(ctx, audit.EventTypeLoginFailed, user.ID, user.Email, ip, "wrong password")
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	if s.throttle != nil {
		_ = s.throttle.Release(ctx, normEmail)
	}

	s.logEvent(ctx, audit.EventTypeLoginSucceeded, user.ID, user.Email, ip, "")
	return s.tokens.IssuePair(s.clock().UTC(), user.ID, user.Email, user.Role)
}

/* ===================== REFRESH ===================== */

// Refresh mints a new pair from a valid refresh credential.
func (s *Service) Refresh(ctx context.Context, refreshToken, ip string) (auth.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return auth.TokenPair{}, fmt.Errorf("%w: refresh_token", ErrInvalidArgument)
	}

	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh, s.clock())
	if err != nil {
		s.logEvent(ctx, audit.EventTypeRefreshRejected, "", "", ip, "invalid refresh token")
		return auth.TokenPair{}, fmt.Errorf("%w: %v", ErrRefreshRejected, err)
	}

	// Re-read the account so a refreshed access token picks up the
	// current email and role.
	user, err := s.callProvider(ctx, func(ctx context.Context) (User, error) {
		return s.provider.UserByID(ctx, claims.Subject)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logEvent(ctx, audit.EventTypeRefreshRejected, claims.Subject, "", ip, "account gone")
			return auth.TokenPair{}, fmt.Errorf("%w: account not found", ErrRefreshRejected)
		}
		return auth.TokenPair{}, err
	}

	return s.tokens.IssuePair(s.clock().UTC(), user.ID, user.Email, user.Role)
}

/* ===================== INTERNAL ===================== */

// callProvider bounds a provider call with the upstream timeout and folds
// transport failures into the upstream error kinds. Provider sentinels
// (ErrUserNotFound, ErrEmailTaken) pass through untouched.
func (s *Service) callProvider(ctx context.Context, fn func(ctx context.Context) (User, error)) (User, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	defer cancel()

	user, err := fn(callCtx)
	if err == nil {
		return user, nil
	}
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrEmailTaken):
		return User{}, err
	case errors.Is(err, context.DeadlineExceeded):
		return User{}, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	default:
		return User{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
}

func (s *Service) logEvent(ctx context.Context, typ audit.EventType, subject, email, ip, msg string) {
	if s.audit == nil {
		return
	}
	// Best-effort: auth flows never fail on audit errors.
	_ = s.audit.LogAuthEvent(ctx, typ, subject, email, ip, msg)
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", errors.New("empty email")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}
