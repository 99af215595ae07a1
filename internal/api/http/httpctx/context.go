// Package httpctx stores and retrieves the authenticated caller
// identity on the request context.
package httpctx

import (
	"context"

	"github.com/placemark/placemark-server/internal/model"
)

type contextKey int

const identityKey contextKey = iota

// SetIdentity returns a context carrying the caller identity. Called by
// the authentication middleware after a token is verified.
func SetIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the caller identity set by the
// authentication middleware.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}
