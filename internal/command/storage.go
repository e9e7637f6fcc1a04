package command

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dtroode/sessionauth/internal/config"
	"github.com/dtroode/sessionauth/internal/model"
	"github.com/dtroode/sessionauth/internal/repository/mongo"
	"github.com/dtroode/sessionauth/internal/repository/postgres"
)

type backend int

const (
	backendPostgres backend = iota + 1
	backendMongo
)

func (b backend) String() string {
	switch b {
	case backendPostgres:
		return "postgres"
	case backendMongo:
		return "mongo"
	default:
		return "unknown"
	}
}

// backendFor picks the store implementation from the DSN scheme.
func backendFor(dsn string) (backend, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return 0, fmt.Errorf("failed to parse database dsn: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return backendPostgres, nil
	case "mongodb", "mongodb+srv":
		return backendMongo, nil
	default:
		return 0, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// openStorage connects to the configured backend and prepares its schema.
func openStorage(ctx context.Context, cfg config.Database) (model.Storage, backend, error) {
	b, err := backendFor(cfg.DSN)
	if err != nil {
		return nil, 0, err
	}

	var store model.Storage
	switch b {
	case backendPostgres:
		store, err = postgres.NewStore(ctx, cfg.DSN)
	case backendMongo:
		store, err = mongo.NewStore(ctx, cfg.DSN, cfg.Name)
	}
	if err != nil {
		return nil, b, fmt.Errorf("failed to initialize %s storage: %w", b, err)
	}

	return store, b, nil
}
