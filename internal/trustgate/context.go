package trustgate

import (
	"context"

	"github.com/chittyos/chittyregistry/internal/domain"
)

type ctxKey struct{}

// WithContext returns a context carrying the caller's trust context.
func WithContext(ctx context.Context, tc *domain.TrustContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// FromContext extracts the caller's trust context. Requests that never
// passed authentication resolve to the anonymous context.
func FromContext(ctx context.Context) *domain.TrustContext {
	if tc, ok := ctx.Value(ctxKey{}).(*domain.TrustContext); ok && tc != nil {
		return tc
	}
	return domain.AnonymousContext()
}
