package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/sessionauth/internal/model"
)

// DefaultCost is tuned for interactive login latency.
const DefaultCost = 10

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// ErrMismatch is returned when a password does not match its hash.
var ErrMismatch = errors.New("password does not match")

// Bcrypt implements model.PasswordHasher.
type Bcrypt struct {
	cost int
}

var _ model.PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt creates a hasher with the given work factor. Out of range costs fall back to DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// Compare checks password against hash in constant time.
func (b *Bcrypt) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("failed to compare password: %w", err)
}
