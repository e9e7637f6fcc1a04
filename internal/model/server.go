package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network server with a start/stop lifecycle.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
