package middleware

import (
	"net/http"
	"strings"

	"github.com/dtroode/sessionauth/internal/api/http/handler"
	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
)

// TokenExtractor pulls the raw session token out of a request.
// It returns an empty string when no token is present.
type TokenExtractor func(r *http.Request) string

// BearerToken reads the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CookieToken reads the token from the named cookie.
func CookieToken(name string) TokenExtractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// Authenticate resolves the caller identity with one strategy and injects it into the context.
type Authenticate struct {
	resolver       model.IdentityResolver
	extract        TokenExtractor
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	resolver model.IdentityResolver,
	extract TokenExtractor,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		resolver:       resolver,
		extract:        extract,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle rejects the request unless the resolver accepts its token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.resolver.Resolve(r.Context(), m.extract(r))
		if err != nil {
			args := []any{
				"strategy", m.resolver.Name(),
				"path", r.URL.Path,
				"error", err.Error(),
			}
			if handler.StatusFor(err) >= http.StatusInternalServerError {
				m.logger.Error("Authenticate middleware: identity resolution failed", args...)
			} else {
				m.logger.Debug("Authenticate middleware: request rejected", args...)
			}
			handler.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetIdentityToContext(r.Context(), identity)))
	})
}
