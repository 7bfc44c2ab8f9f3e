package domain

import "context"

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated requester.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the requester set by the auth middleware.
// ok is false on unauthenticated paths (public registration).
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
