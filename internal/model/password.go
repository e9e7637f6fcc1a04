package model

// PasswordHasher is a one-way password hash with a constant-time compare.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
