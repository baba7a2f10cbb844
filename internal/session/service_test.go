package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitness-platform/internal/audit"
	"fitness-platform/internal/auth"
	"fitness-platform/internal/config"
)

func testTokens(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func testService(t *testing.T) (*Service, *MemoryProvider, *audit.MemoryRepo) {
	t.Helper()
	provider := NewMemoryProvider()
	auditRepo := audit.NewMemoryRepo()
	svc := NewService(provider, testTokens(t), audit.NewService(auditRepo), nil, time.Second)
	return svc, provider, auditRepo
}

func TestSignUpAndSignInRoundTrip(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "A@B.com", "long-enough-pw", "1.2.3.4"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	pair, err := svc.SignIn(ctx, "a@b.com", "long-enough-pw", "1.2.3.4")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.ExpiresIn <= 0 {
		t.Fatalf("incomplete pair: %+v", pair)
	}
}

func TestSignUpRejectsBadInput(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "", "long-enough-pw", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.SignUp(ctx, "not-an-email", "long-enough-pw", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.SignUp(ctx, "a@b.com", "short", ""); !errors.Is(err, ErrSignupRejected) {
		t.Fatalf("expected ErrSignupRejected for weak password, got %v", err)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc, _, auditRepo := testService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@b.com", "long-enough-pw", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.SignUp(ctx, "a@b.com", "long-enough-pw", ""); !errors.Is(err, ErrSignupRejected) {
		t.Fatalf("expected ErrSignupRejected, got %v", err)
	}

	if !auditRepo.HasType(audit.EventTypeSignupRejected) {
		t.Fatalf("expected signup_rejected audit event")
	}
}

func TestSignInCollapsesFailureKinds(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@b.com", "long-enough-pw", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// Unknown email and wrong password produce the identical error so a
	// caller cannot tell which field was wrong.
	_, errUnknown := svc.SignIn(ctx, "nobody@b.com", "long-enough-pw", "")
	_, errWrongPw := svc.SignIn(ctx, "a@b.com", "x", "")

	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure kinds must be indistinguishable: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestSignInSurfacesUpstreamFailure(t *testing.T) {
	svc, provider, _ := testService(t)
	provider.Err = errors.New("connection refused")

	if _, err := svc.SignIn(context.Background(), "a@b.com", "long-enough-pw", ""); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSignInSurfacesUpstreamTimeout(t *testing.T) {
	svc, provider, _ := testService(t)
	provider.Err = context.DeadlineExceeded

	if _, err := svc.SignIn(context.Background(), "a@b.com", "long-enough-pw", ""); !errors.Is(err, ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}

type denyThrottle struct{}

func (denyThrottle) Acquire(ctx context.Context, email string) (bool, error) { return false, nil }
func (denyThrottle) Release(ctx context.Context, email string) error         { return nil }

func TestSignInThrottleFailsClosed(t *testing.T) {
	provider := NewMemoryProvider()
	auditRepo := audit.NewMemoryRepo()
	svc := NewService(provider, testTokens(t), audit.NewService(auditRepo), denyThrottle{}, time.Second)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@b.com", "long-enough-pw", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.SignIn(ctx, "a@b.com", "long-enough-pw", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected throttled sign-in to look like bad credentials, got %v", err)
	}

	if !auditRepo.HasType(audit.EventTypeLoginThrottled) {
		t.Fatalf("expected login_throttled audit event")
	}
}

func TestRefreshMintsDistinctWorkingPair(t *testing.T) {
	svc, _, _ := testService(t)
	tokens := svc.tokens
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@b.com", "long-enough-pw", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	first, err := svc.SignIn(ctx, "a@b.com", "long-enough-pw", "")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}

	// Advance the issuer clock so the refreshed pair has a later expiry.
	later := time.Now().Add(5 * time.Minute)
	svc.clock = func() time.Time { return later }

	second, err := svc.Refresh(ctx, first.RefreshToken, "")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.AccessToken == first.AccessToken {
		t.Fatalf("expected a fresh access token")
	}

	firstClaims, err := tokens.Verify(first.AccessToken, auth.TokenTypeAccess, time.Now())
	if err != nil {
		t.Fatalf("verify first: %v", err)
	}
	secondClaims, err := tokens.Verify(second.AccessToken, auth.TokenTypeAccess, later)
	if err != nil {
		t.Fatalf("verify second: %v", err)
	}
	if secondClaims.Subject != firstClaims.Subject {
		t.Fatalf("subject changed across refresh")
	}
	if !secondClaims.ExpiresAt.After(firstClaims.ExpiresAt.Time) {
		t.Fatalf("expected extended expiry")
	}
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, "garbage", ""); !errors.Is(err, ErrRefreshRejected) {
		t.Fatalf("expected ErrRefreshRejected, got %v", err)
	}

	// An access token is not a refresh token.
	if _, err := svc.SignUp(ctx, "a@b.com", "long-enough-pw", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	pair, err := svc.SignIn(ctx, "a@b.com", "long-enough-pw", "")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.AccessToken, ""); !errors.Is(err, ErrRefreshRejected) {
		t.Fatalf("expected ErrRefreshRejected for access token, got %v", err)
	}
}
