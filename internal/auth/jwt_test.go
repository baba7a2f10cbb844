package auth

import (
	"errors"
	"testing"
	"time"

	"fitness-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func testManager(t *testing.T, secret string) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       secret,
		JWTIssuer:       "fitness-platform",
		JWTAudience:     "fitness-app",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := testManager(t, "secret")

	now := time.Now().UTC()
	pair, err := m.IssuePair(now, "user-1", "a@b.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("unexpected expires_in: %d", pair.ExpiresIn)
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@b.com" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Now().UTC()

	p, err := m.IssuePair(now, "u", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(p.RefreshToken, TokenTypeAccess, now); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("expected ErrWrongTokenType, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuerSide := testManager(t, "other-secret")
	verifierSide := testManager(t, "secret")
	now := time.Now().UTC()

	p, err := issuerSide.IssuePair(now, "u", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifierSide.Verify(p.AccessToken, TokenTypeAccess, now); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Now().UTC()

	p, err := m.IssuePair(now, "u", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Past the access TTL plus the clock-skew leeway.
	at := now.Add(16 * time.Minute)
	if _, err := m.Verify(p.AccessToken, TokenTypeAccess, at); !errors.Is(err, ErrExpiredCredential) {
		t.Fatalf("expected ErrExpiredCredential, got %v", err)
	}
}

func TestVerifyForgedAndExpiredReadsAsForgery(t *testing.T) {
	issuerSide := testManager(t, "other-secret")
	verifierSide := testManager(t, "secret")
	now := time.Now().UTC()

	p, err := issuerSide.IssuePair(now, "u", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Both defects at once; the signature verdict must win.
	at := now.Add(16 * time.Minute)
	if _, err := verifierSide.Verify(p.AccessToken, TokenTypeAccess, at); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerifyRejectsAlgorithmDowngrade(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fitness-platform",
			Subject:   "u",
			Audience:  jwt.ClaimStrings{"fitness-app"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: TokenTypeAccess,
		Role:      "user",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(tok, TokenTypeAccess, now); !errors.Is(err, ErrAlgorithmMismatch) {
		t.Fatalf("expected ErrAlgorithmMismatch, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager(t, "secret")
	if _, err := m.Verify("not-a-token", TokenTypeAccess, time.Now()); !errors.Is(err, ErrMalformedCredential) {
		t.Fatalf("expected ErrMalformedCredential, got %v", err)
	}
}

func TestVerifyDefaultsAccessRole(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Now().UTC()

	tok, err := m.issue(now, TokenTypeAccess, "u", "a@b.com", "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.Verify(tok, TokenTypeAccess, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != DefaultRole {
		t.Fatalf("expected default role, got %q", claims.Role)
	}
}

func TestRefreshTokenCarriesSubjectOnly(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Now().UTC()

	p, err := m.IssuePair(now, "user-1", "a@b.com", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.Verify(p.RefreshToken, TokenTypeRefresh, now)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.Email != "" || claims.Role != "" {
		t.Fatalf("refresh token must not carry email or role: %+v", claims)
	}
}
