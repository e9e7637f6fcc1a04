package mongo

import (
	"context"
	"fmt"

	"github.com/dtroode/sessionauth/internal/model"
)

var _ model.Storage = (*Store)(nil)

// Store bundles the mongo connection with the user repository.
type Store struct {
	*Connection
	*UserRepository
}

// NewStore connects and makes sure the unique email index exists.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	conn, err := NewConnection(ctx, uri, dbName)
	if err != nil {
		return nil, err
	}

	users := NewUserRepository(conn)
	if err := users.EnsureIndexes(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{
		Connection:     conn,
		UserRepository: users,
	}, nil
}
