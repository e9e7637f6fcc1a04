package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const disconnectTimeout = 5 * time.Second

// Connection holds a mongo client bound to one database.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewConnection(ctx context.Context, uri, dbName string) (*Connection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return &Connection{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (c *Connection) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Connection) Close() error {
	if c.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	return c.client.Disconnect(ctx)
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("mongo client is nil")
	}
	return c.client.Ping(ctx, readpref.Primary())
}
