package common

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("Please log in")

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
)

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, userID uint64, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}

// UserIDFromContext returns the caller's user id, if any.
func UserIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(userIDKey).(uint64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// RequireUser is UserIDFromContext with ErrUnauthenticated for anonymous callers.
func RequireUser(ctx context.Context) (uint64, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, ErrUnauthenticated
	}
	return id, nil
}

func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}
