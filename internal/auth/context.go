package auth

import (
	"context"
	"errors"
)

// Identity is the per-request identity derived from a verified credential.
// It is constructed by the gate and discarded at end of request.
type Identity struct {
	Subject string
	Email   string
	Role    string
}

type ctxKey int

const ctxIdentity ctxKey = iota

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// IdentityFrom returns the attached identity, or an error if the request
// did not pass through the gate.
func IdentityFrom(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxIdentity).(Identity); ok && id.Subject != "" {
		return id, nil
	}
	return Identity{}, errors.New("identity not in context")
}

// Subject is a convenience accessor for the ownership-scoping identifier.
func Subject(ctx context.Context) (string, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return "", err
	}
	return id.Subject, nil
}

func Role(ctx context.Context) (string, error) {
	id, err := IdentityFrom(ctx)
	if err != nil || id.Role == "" {
		return "", errors.New("role not in context")
	}
	return id.Role, nil
}
