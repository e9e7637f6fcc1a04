package postgres

import (
	"context"

	"github.com/dtroode/sessionauth/internal/model"
)

var _ model.Storage = (*Store)(nil)

// Store bundles the postgres connection with the user repository.
type Store struct {
	*Connection
	*UserRepository
}

// NewStore connects, migrates and returns a ready user store.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	conn, err := NewConnection(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return &Store{
		Connection:     conn,
		UserRepository: NewUserRepository(conn.DB),
	}, nil
}
