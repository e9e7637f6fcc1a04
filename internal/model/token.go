package model

import "github.com/google/uuid"

// TokenCodec mints and verifies signed session tokens.
type TokenCodec interface {
	Mint(claims IdentityClaims) (string, error)
	Verify(token string) (IdentityClaims, error)
}

// IdentityClaims is the identity snapshot embedded in a session token.
type IdentityClaims struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Age       int
	Role      string
}

// ClaimsFromUser builds the claim set for a stored user.
func ClaimsFromUser(u User) IdentityClaims {
	return IdentityClaims{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Role:      u.Role,
	}
}

// Identity converts the claims into a resolved identity without touching the store.
func (c IdentityClaims) Identity() Identity {
	return Identity{
		ID:        c.UserID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Age:       c.Age,
		Role:      c.Role,
	}
}
