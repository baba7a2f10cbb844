package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// DefaultRole is assumed for access tokens that carry no explicit role claim.
const DefaultRole = "user"

// Claims are the only supported JWT claims shape for this service.
// The subject (RegisteredClaims.Subject) is the stable, opaque user
// identifier; resource queries must be scoped by it and by nothing else.
// Email may be absent. Role is present on access tokens only.
type Claims struct {
	jwt.RegisteredClaims

	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
}
