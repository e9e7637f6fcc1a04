package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/sessionauth/internal/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusEntry struct {
	err     error
	status  int
	code    string
	message string
}

// statusTable is the one place sentinel errors become HTTP statuses.
// Order matters: the first matching entry wins.
var statusTable = []statusEntry{
	{model.ErrValidation, http.StatusBadRequest, "validation_failed", "request is invalid"},
	{model.ErrDuplicateEmail, http.StatusBadRequest, "duplicate_email", "email is already in use"},
	{model.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "invalid credentials"},
	{model.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "log in again"},
	{model.ErrUserNotFound, http.StatusUnauthorized, "user_not_found", "account no longer exists"},
	{model.ErrStoreTimeout, http.StatusServiceUnavailable, "store_timeout", "service unavailable, try again"},
	{model.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable", "service unavailable, try again"},
}

var internalError = statusEntry{status: http.StatusInternalServerError, code: "internal_error", message: "internal server error"}

func lookup(err error) statusEntry {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e
		}
	}
	return internalError
}

// StatusFor returns the HTTP status an error is reported with.
func StatusFor(err error) int {
	return lookup(err).status
}

// WriteError writes err as a JSON error response.
// Validation errors carry their field details; nothing else leaks the cause.
func WriteError(w http.ResponseWriter, err error) {
	e := lookup(err)

	message := e.message
	var fieldErrs validationError
	if errors.As(err, &fieldErrs) {
		message = fieldErrs.Error()
	}

	writeJSON(w, e.status, ErrorResponse{Code: e.code, Message: message})
}
