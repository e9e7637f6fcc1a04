package model

import "context"

// IdentityResolver turns a raw session token into the caller identity.
type IdentityResolver interface {
	Name() string
	Resolve(ctx context.Context, token string) (Identity, error)
}

// AuthService covers the credential operations exposed at the session boundary.
type AuthService interface {
	Register(ctx context.Context, reg Registration) (Identity, error)
	Login(ctx context.Context, email, password string) (string, error)
}
