package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New generates a random UUID v4. Used both for ops HTTP request IDs
// and for scheduler dispatch run IDs.
func New() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying the ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the ID from ctx, or "" if absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
