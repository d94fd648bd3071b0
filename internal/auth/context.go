package auth

import (
	"context"
	"errors"
)

type ctxKey int

const ctxIdentity ctxKey = iota

// Identity is the request-scoped result of a successful verification.
// It is never persisted and does not outlive the request.
type Identity struct {
	SubjectID string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(Identity)
	if !ok || id.SubjectID == "" {
		return Identity{}, false
	}
	return id, true
}

func SubjectID(ctx context.Context) (string, error) {
	if id, ok := IdentityFrom(ctx); ok {
		return id.SubjectID, nil
	}
	return "", errors.New("subject id not in context")
}
