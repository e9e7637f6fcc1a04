package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/sessionauth/internal/model"
)

var _ model.Server = (*HTTPServer)(nil)

// HTTPServer wraps an http.Server with address and lifecycle methods.
type HTTPServer struct {
	server *http.Server
	addr   string
}

// NewHTTPServer creates an HTTPServer serving handler on addr.
func NewHTTPServer(
	handler http.Handler,
	addr string,
	readHeaderTimeout time.Duration,
) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		addr: addr,
	}
}

// Start starts serving on the configured address using the provided security layer.
// It returns nil after a graceful Stop.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server, waiting for in-flight requests until ctx expires.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
