package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/sessionauth/internal/api/http/handler"
	"github.com/dtroode/sessionauth/internal/api/http/middleware"
	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
)

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins   []string
	Cookie        handler.CookieConfig
	HealthTimeout time.Duration
}

// Router assembles the session API on a chi mux.
type Router struct {
	authService    model.AuthService
	authoritative  model.IdentityResolver
	snapshot       model.IdentityResolver
	contextManager model.ContextManager
	pinger         handler.Pinger
	opts           Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService model.AuthService,
	authoritative model.IdentityResolver,
	snapshot model.IdentityResolver,
	contextManager model.ContextManager,
	pinger handler.Pinger,
	opts Options,
	logger *logger.Logger,
) *Router {
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = 2 * time.Second
	}
	return &Router{
		authService:    authService,
		authoritative:  authoritative,
		snapshot:       snapshot,
		contextManager: contextManager,
		pinger:         pinger,
		opts:           opts,
		logger:         logger,
	}
}

func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// Register builds the handler tree with request logging and authentication middleware.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.NewLogging(r.logger).Handle)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(corsOptions(r.opts.CORSOrigins)))

	health := handler.NewHealth(r.pinger, r.opts.HealthTimeout, r.logger)
	mux.Get("/healthz", health.Check)

	r.registerSessionRoutes(mux)

	return mux
}

func (r *Router) registerSessionRoutes(mux chi.Router) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.opts.Cookie, r.logger)

	snapshot := middleware.NewAuthenticate(r.snapshot, middleware.CookieToken(handler.CookieName), r.contextManager, r.logger)
	authoritative := middleware.NewAuthenticate(r.authoritative, middleware.BearerToken, r.contextManager, r.logger)

	mux.Route("/api/sessions", func(s chi.Router) {
		s.Post("/register", authHandler.Register)
		s.Post("/login", authHandler.Login)
		s.Post("/logout", authHandler.Logout)
		s.With(snapshot.Handle).Get("/current", authHandler.Identity)
	})

	mux.With(authoritative.Handle).Get("/api/profile", authHandler.Identity)
}
