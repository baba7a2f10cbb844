package auth

import "errors"

// Verifier failure kinds. The set is closed: every credential rejection maps
// to exactly one of these, and the HTTP boundary collapses them all to 401
// with a generic message. Handlers may log the kind but must never leak it
// to the client.
var (
	ErrMissingCredential   = errors.New("auth: missing credential")
	ErrMalformedCredential = errors.New("auth: malformed credential")
	ErrBadSignature        = errors.New("auth: bad signature")
	ErrExpiredCredential   = errors.New("auth: credential expired")
	ErrAlgorithmMismatch   = errors.New("auth: signing algorithm mismatch")
	ErrWrongTokenType      = errors.New("auth: wrong token type")
)
