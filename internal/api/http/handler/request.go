package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dtroode/sessionauth/internal/model"
)

const maxBodyBytes = 1 << 20

// validationError keeps ozzo field errors presentable to the client.
type validationError struct {
	cause error
}

func (e validationError) Error() string { return e.cause.Error() }
func (e validationError) Unwrap() []error {
	return []error{model.ErrValidation, e.cause}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Password  string `json:"password"`
}

// Validate checks the trimmed values so blank names are rejected.
func (r registerRequest) Validate() error {
	r = r.trimmed()
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Age, validation.Required, validation.Min(1), validation.Max(150)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

func (r registerRequest) trimmed() registerRequest {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

func (r registerRequest) toModel() model.Registration {
	r = r.trimmed()
	return model.Registration{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Age:       r.Age,
		Password:  r.Password,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// decode reads a JSON body into dst and validates it.
// Every failure is reported as model.ErrValidation.
func decode(w http.ResponseWriter, r *http.Request, dst validation.Validatable) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", model.ErrValidation)
		}
		return fmt.Errorf("%w: malformed json", model.ErrValidation)
	}

	if err := dst.Validate(); err != nil {
		return validationError{cause: err}
	}

	return nil
}
