package company

import (
	"context"
)

type ScopeService interface {
	// ResolveScope never fails for a missing identity or company; it returns an empty scope
	ResolveScope(ctx context.Context, userID string) (Scope, error)
}
