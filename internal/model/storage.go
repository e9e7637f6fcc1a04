package model

import (
	"context"
	"io"
)

// Storage is a user store backend together with its lifecycle.
type Storage interface {
	UserStore
	io.Closer
	Ping(ctx context.Context) error
}
