package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key for storing the caller's user ID.
const UserIDKey contextKey = "user_id"

// UserIDHeader carries the caller's user ID. Authentication happens upstream;
// the gateway in front of this service sets the header.
const UserIDHeader = "X-User-Id"

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIdentity returns a Connect interceptor that copies the UserIDHeader
// value into the request context. Requests without the header pass through
// anonymously.
func UserIdentity() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID := strings.TrimSpace(req.Header().Get(UserIDHeader)); userID != "" {
				ctx = WithUserID(ctx, userID)
			}
			return next(ctx, req)
		}
	}
}
