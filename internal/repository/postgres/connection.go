package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/sessionauth/database"
)

// DBTX is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Connection is a database/sql handle backed by a pgx pool.
type Connection struct {
	*sql.DB
	pool *pgxpool.Pool
}

// Open connects to postgres without touching the schema.
func Open(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	return &Connection{
		DB:   stdlib.OpenDBFromPool(pool),
		pool: pool,
	}, nil
}

// NewConnection opens a connection and applies pending migrations.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conn, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, conn.DB); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return conn, nil
}

func (c *Connection) Close() error {
	var err error
	if c.DB != nil {
		err = c.DB.Close()
	}
	if c.pool != nil {
		c.pool.Close()
	}
	return err
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.DB == nil {
		return fmt.Errorf("connection is nil")
	}
	return c.DB.PingContext(ctx)
}
