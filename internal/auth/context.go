package auth

import (
	"context"

	"github.com/workhive/workhive/internal/model"
)

// Identity holds the authenticated caller injected into the request
// context by the auth middleware.
type Identity struct {
	UserID string
	Role   model.Role
}

// IsEmployer returns true for employer callers.
func (i *Identity) IsEmployer() bool {
	return i.Role == model.RoleEmployer
}

// IsEmployee returns true for employee callers.
func (i *Identity) IsEmployee() bool {
	return i.Role == model.RoleEmployee
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityContextKey contextKey = "auth_identity"

// ContextWithIdentity adds the caller identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext retrieves the caller identity from the context.
// Returns nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// UserIDFromContext is a convenience function to get the caller's user ID.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.UserID
}
