package handler

import (
	"net/http"

	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
)

// Auth handles HTTP endpoints for sessions.
type Auth struct {
	authService    model.AuthService
	contextManager model.ContextManager
	cookie         CookieConfig
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService model.AuthService,
	contextManager model.ContextManager,
	cookie CookieConfig,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type registerResponse struct {
	Message string         `json:"message"`
	User    model.Identity `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a user account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		h.logger.Debug("Auth handler: invalid registration request",
			"error", err.Error())
		WriteError(w, err)
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	identity, err := h.authService.Register(r.Context(), req.toModel())
	if err != nil {
		h.logFailure("Auth handler: registration failed", err, "email", req.Email)
		WriteError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", identity.ID)

	writeJSON(w, http.StatusCreated, registerResponse{Message: "user created", User: identity})
}

// Login verifies credentials, sets the session cookie and returns the token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		h.logger.Debug("Auth handler: invalid login request",
			"error", err.Error())
		WriteError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logFailure("Auth handler: login failed", err, "email", req.Email)
		WriteError(w, err)
		return
	}

	h.cookie.set(w, token)
	writeJSON(w, http.StatusOK, loginResponse{Message: "login successful", Token: token})
}

// Logout clears the session cookie. The token itself stays valid until expiry.
func (h *Auth) Logout(w http.ResponseWriter, _ *http.Request) {
	h.cookie.clear(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// Identity returns the caller identity resolved by the authentication middleware.
func (h *Auth) Identity(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

// logFailure logs expected client errors at info and server faults at error.
func (h *Auth) logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err.Error())
	if StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, args...)
		return
	}
	h.logger.Info(msg, args...)
}
