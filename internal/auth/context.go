package auth

import (
	"context"
)

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the resolved principal carried through request context.
type Claims struct {
	Subject string // user id
	Email   string
	Role    string
	JWTID   string
}

func (c Claims) HasRole(role string) bool {
	return c.Role == role
}

func (c Claims) Authenticated() bool {
	return c.Subject != ""
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
