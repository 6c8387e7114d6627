package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
)

// ContextKey is a private type so keys never collide with other packages.
type ContextKey string

const (
	UserIDCtxKey = ContextKey("user_id")
	UserCtxKey   = ContextKey("user")
)

// WithUser stores the authenticated user and its id on ctx.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	ctx = context.WithValue(ctx, UserCtxKey, u)
	return context.WithValue(ctx, UserIDCtxKey, u.ID)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(UserCtxKey).(*domain.User)
	return u, ok && u != nil
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}
