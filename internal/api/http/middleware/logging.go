package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/sessionauth/internal/logger"
)

// Logging logs every HTTP request with its status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration for each request.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chimw.GetReqID(r.Context()),
		}

		if status >= http.StatusInternalServerError {
			l.logger.Error("HTTP request failed", args...)
			return
		}
		l.logger.Info("HTTP request completed", args...)
	})
}
