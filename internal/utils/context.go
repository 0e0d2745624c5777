// Package utils provides general-purpose helper utilities
// used across different parts of the application: typed context keys,
// JWT issuance and validation, JSON response writing, the resty-based
// HTTP client and UUIDv7 generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated Discord user id
// in the context.
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, "80351110224678912")
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user id from the context.
// ok is false when the value is missing, empty, or not a string.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}
