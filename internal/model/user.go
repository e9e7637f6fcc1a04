package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to every newly registered user.
const DefaultRole = "user"

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Age          int
	PasswordHash string
	Role         string
	CartID       *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the externally visible projection of the user.
// The password hash never leaves the store through this value.
func (u User) Public() Identity {
	return Identity{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Role:      u.Role,
		CartID:    u.CartID,
	}
}

// Registration carries the fields accepted when a user signs up.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Age       int
	Password  string
}

// Identity is the caller identity resolved for a request.
type Identity struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Age       int        `json:"age"`
	Role      string     `json:"role"`
	CartID    *uuid.UUID `json:"cart,omitempty"`
}
