// Package auth implements the Authorization Gate: bearer tokens name a
// principal, and a call is authorized for an identity only if that
// identity is the principal.
package auth

import (
	"context"
	"fmt"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
)

type contextKey string

const principalKey = contextKey("principal")

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, principalKey, id)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(principalKey).(domain.Identity)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// PrincipalAuthorizer authorizes a call for exactly the principal that
// authenticated it.
type PrincipalAuthorizer struct{}

// NewPrincipalAuthorizer creates the Authorization Gate.
func NewPrincipalAuthorizer() *PrincipalAuthorizer {
	return &PrincipalAuthorizer{}
}

var _ portssvc.Authorizer = (*PrincipalAuthorizer)(nil)

// RequireAuth fails closed when no principal is present.
func (a *PrincipalAuthorizer) RequireAuth(ctx context.Context, id domain.Identity) error {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: call is not authenticated", apperrors.ErrUnauthorized)
	}
	if principal != id {
		return fmt.Errorf("%w: call is not authorized by %s", apperrors.ErrUnauthorized, id)
	}
	return nil
}
