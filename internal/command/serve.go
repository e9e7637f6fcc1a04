package command

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/cobra"

	httpctx "github.com/dtroode/sessionauth/internal/api/http/context"
	"github.com/dtroode/sessionauth/internal/api/http/handler"
	"github.com/dtroode/sessionauth/internal/api/http/router"
	httpserver "github.com/dtroode/sessionauth/internal/api/http/server"
	"github.com/dtroode/sessionauth/internal/config"
	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
	"github.com/dtroode/sessionauth/internal/password"
	"github.com/dtroode/sessionauth/internal/server"
	"github.com/dtroode/sessionauth/internal/service"
	"github.com/dtroode/sessionauth/internal/token"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(envFile *string, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP session API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, info)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, info BuildInfo) error {
	logger := logger.New(cfg.LogLevel, cfg.LogFormat).With("version", orNA(info.Version))
	logger.Info("starting sessionauth", "commit", orNA(info.Commit), "date", orNA(info.Date))

	codec, err := token.NewJWT(cfg.JWT.Secret)
	if err != nil {
		return err
	}

	store, backend, err := openStorage(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("storage initialized", "backend", backend.String())

	httpServer := newHTTPServer(cfg, store, codec, logger)
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	errCh := make(chan error, 1)
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			errCh <- err
		}
	}(httpServer)

	select {
	case <-ctx.Done():
		logger.Info("received interruption signal, shutting down")
	case err = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if stopErr := httpServer.Stop(shutdownCtx); stopErr != nil {
		logger.Error("error during server shutdown", "error", stopErr, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")

	return err
}

func newHTTPServer(cfg *config.Config, store model.Storage, codec model.TokenCodec, logger *logger.Logger) *httpserver.HTTPServer {
	authService := service.NewAuth(store, password.NewBcrypt(cfg.Bcrypt.Cost), codec, cfg.Store.Timeout, logger)
	authoritative := service.NewAuthoritativeResolver(codec, store, cfg.Store.Timeout, logger)
	snapshot := service.NewSnapshotResolver(codec, logger)

	r := router.New(
		authService,
		authoritative,
		snapshot,
		httpctx.NewManager(),
		store,
		router.Options{
			CORSOrigins:   cfg.HTTP.CORSOrigins,
			Cookie:        handler.CookieConfig{MaxAge: token.DefaultTTL, Secure: cfg.HTTP.SecureCookie},
			HealthTimeout: cfg.Store.Timeout,
		},
		logger,
	)

	return httpserver.NewHTTPServer(r.Register(), cfg.HTTP.Address, cfg.HTTP.ReadHeaderTimeout)
}
