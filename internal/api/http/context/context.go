package context

import (
	"context"

	"github.com/dtroode/sessionauth/internal/model"
)

type identityKey struct{}

// Manager stores the resolved caller identity on request contexts.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the identity set by SetIdentityToContext.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	return identity, ok
}
