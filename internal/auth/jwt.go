package auth

import (
	"errors"
	"fmt"
	"time"

	"fitness-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager issues and verifies the service's signed credentials.
// The signing secret is read-only after construction; verification is a pure
// function of (token, secret, now) and never blocks.
type Manager struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		audience:   cfg.JWTAudience,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

// TokenPair is a freshly minted access/refresh credential pair.
// The access token encodes everything needed to authorize resource access
// without a further lookup; the refresh token's sole purpose is to mint a
// new pair, so it carries only the subject.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

/* ===================== ISSUE TOKENS ===================== */

func (m *Manager) IssuePair(now time.Time, subject, email, role string) (TokenPair, error) {
	if role == "" {
		role = DefaultRole
	}

	access, err := m.issue(now, TokenTypeAccess, subject, email, role, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	// Refresh tokens DO NOT carry role or email.
	refresh, err := m.issue(now, TokenTypeRefresh, subject, "", "", m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

/* ===================== VERIFY TOKEN ===================== */

// Verify checks structure, signature, algorithm and expiry, in that order of
// visibility: every rejection is one of the closed kinds in errors.go.
func (m *Manager) Verify(tokenString string, expected TokenType, now time.Time) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(30 * time.Second), // clock skew tolerance
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	// The algorithm is pinned inside the keyfunc rather than via
	// WithValidMethods so a downgrade attempt maps to its own kind
	// instead of a generic signature failure.
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("%w: got %s", ErrAlgorithmMismatch, t.Method.Alg())
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, classifyParseError(err)
	}

	if claims.TokenType != expected {
		return Claims{}, fmt.Errorf("%w: expected %s", ErrWrongTokenType, expected)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: sub missing", ErrMalformedCredential)
	}
	if expected == TokenTypeAccess && claims.Role == "" {
		claims.Role = DefaultRole
	}

	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, ErrAlgorithmMismatch):
		return fmt.Errorf("%w: %v", ErrAlgorithmMismatch, err)
	// Signature outranks expiry: a forged token stays a forgery even when
	// its claims have also lapsed.
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredCredential, err)
	default:
		// Structural problems, missing exp, bad issuer/audience and any
		// other parse failure fail closed as malformed.
		return fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
}

/* ===================== INTERNAL ISSUE ===================== */

func (m *Manager) issue(
	now time.Time,
	tokenType TokenType,
	subject,
	email,
	role string,
	ttl time.Duration,
) (string, error) {

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			Audience:  audienceOrNil(m.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Email:     email,
		Role:      role,
		TokenType: tokenType,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
