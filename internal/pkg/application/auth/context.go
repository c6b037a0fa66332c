package auth

import (
	"context"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
)

// AccessContext is the caller's identity for a single request. It is
// either anonymous or authenticated with a set of granted scopes.
// Contexts are values, constructed per request and never stored.
type AccessContext struct {
	authenticated bool
	scopes        map[string]struct{}
}

func Anonymous() AccessContext {
	return AccessContext{}
}

func Authenticated(scopes ...string) AccessContext {
	granted := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		granted[s] = struct{}{}
	}
	return AccessContext{authenticated: true, scopes: granted}
}

func (c AccessContext) IsAnonymous() bool {
	return !c.authenticated
}

// HasScopes reports whether the granted scope set is a superset of
// the required scopes.
func (c AccessContext) HasScopes(required []string) bool {
	for _, scope := range required {
		if _, ok := c.scopes[scope]; !ok {
			return false
		}
	}
	return true
}

// IsVisible decides whether a resource appears in catalog listings for
// the given access context. Hidden suppresses the resource for every
// context, regardless of any scopes presented.
//
// Substitute resources are anonymous-only placeholders: an anonymous
// caller sees them instead of their scope-gated counterparts, and an
// authenticated caller no longer does. When a substitute additionally
// declares required scopes, the scope test wins for authenticated
// callers.
func IsVisible(r domain.DatasetResource, c AccessContext) bool {
	if r.Hidden {
		return false
	}

	ac := r.AccessControl

	if c.IsAnonymous() {
		return len(ac.RequiredScopes) == 0 || ac.IsSubstitute
	}

	if len(ac.RequiredScopes) > 0 {
		return c.HasScopes(ac.RequiredScopes)
	}

	return !ac.IsSubstitute
}

// IsAccessible decides whether the resolved cube behind a resource may
// actually be opened. It is stricter than IsVisible: required scopes
// are re-checked on every call, so a substitute that is listed for an
// anonymous caller still cannot be opened unless its scope requirements
// are met.
func IsAccessible(r domain.DatasetResource, c AccessContext) bool {
	required := r.AccessControl.RequiredScopes
	if len(required) == 0 {
		return true
	}
	if c.IsAnonymous() {
		return false
	}
	return c.HasScopes(required)
}

type contextKey struct{}

// NewContext stores an access context for retrieval by downstream
// handlers.
func NewContext(ctx context.Context, ac AccessContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext returns the stored access context, or an anonymous one
// when none was stored.
func FromContext(ctx context.Context) AccessContext {
	if ac, ok := ctx.Value(contextKey{}).(AccessContext); ok {
		return ac
	}
	return Anonymous()
}
