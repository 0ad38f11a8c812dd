package api

import (
	"context"

	"github.com/linesmerrill/lifeline-api/policy"
)

type principalKey struct{}

// WithPrincipal stores the authenticated principal on the context
func WithPrincipal(ctx context.Context, p policy.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by the auth middleware
func PrincipalFrom(ctx context.Context) (policy.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(policy.Principal)
	return p, ok
}
