package auth

import (
	"context"

	"github.com/taskboard-dev/taskboard/internal/models"
)

type contextKey struct{}

var userKey contextKey

// WithCurrentUser returns a context carrying the resolved caller identity.
func WithCurrentUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the caller identity from the context. The second return
// is false for anonymous callers, which is a valid non-error state.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
