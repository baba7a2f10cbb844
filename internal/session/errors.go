package session

import "errors"

// Session failure kinds. Closed set: the HTTP boundary maps each kind to a
// status code in exactly one place.
var (
	// ErrInvalidArgument covers structurally bad input (missing email or
	// password, unparsable email).
	ErrInvalidArgument = errors.New("session: invalid argument")

	// ErrInvalidCredentials deliberately covers both "unknown email" and
	// "wrong password" so a caller cannot probe which field was wrong.
	ErrInvalidCredentials = errors.New("session: invalid credentials")

	// ErrSignupRejected carries the provider's reason (weak password,
	// duplicate email) in its wrapped detail.
	ErrSignupRejected = errors.New("session: signup rejected")

	// ErrRefreshRejected covers invalid, expired and wrong-type refresh
	// credentials.
	ErrRefreshRejected = errors.New("session: refresh rejected")

	// ErrUpstreamUnavailable means the identity provider could not be
	// reached. Not retried automatically.
	ErrUpstreamUnavailable = errors.New("session: upstream unavailable")

	// ErrUpstreamTimeout means the identity provider call exceeded the
	// configured deadline.
	ErrUpstreamTimeout = errors.New("session: upstream timeout")
)
