package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves the liveness probe.
type Health struct {
	pinger  Pinger
	timeout time.Duration
	logger  *logger.Logger
}

func NewHealth(pinger Pinger, timeout time.Duration, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, timeout: timeout, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: store ping failed",
			"error", err.Error())
		WriteError(w, model.ErrStoreUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
