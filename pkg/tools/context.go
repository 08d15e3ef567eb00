package tools

import "context"

type ownerKey struct{}

// WithOwner attaches the caller identity to the context so owner-scoped
// tools only search that caller's own library.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext returns the caller identity if present.
func OwnerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerKey{}).(string)
	return id, ok
}
