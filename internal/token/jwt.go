package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/sessionauth/internal/model"
)

// DefaultTTL is the fixed lifetime of a session token.
const DefaultTTL = time.Hour

// ErrEmptySecret is returned when the codec is built without a signing secret.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Claims represents JWT claims with the embedded identity snapshot.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
}

// JWT implements model.TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// Option configures a JWT codec.
type Option func(*JWT)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		if now != nil {
			j.now = now
		}
	}
}

var _ model.TokenCodec = (*JWT)(nil)

// NewJWT creates a new JWT codec with the provided secret key.
func NewJWT(secretKey string, opts ...Option) (*JWT, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}

	j := &JWT{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// Mint signs the identity claims with issued-at and expiry set from the codec clock.
func (j *JWT) Mint(c model.IdentityClaims) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(DefaultTTL)),
		},
		UserID:    c.UserID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Age:       c.Age,
		Role:      c.Role,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrEncoding, err)
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
func (j *JWT) Verify(tokenString string) (model.IdentityClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return model.IdentityClaims{}, classify(tokenString, err)
	}
	if !token.Valid {
		return model.IdentityClaims{}, model.ErrMalformed
	}
	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		return model.IdentityClaims{}, fmt.Errorf("%w: subject mismatch", model.ErrMalformed)
	}

	return model.IdentityClaims{
		UserID:    claims.UserID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Age:       claims.Age,
		Role:      claims.Role,
	}, nil
}

func classify(tokenString string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", model.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenMalformed) && undecodableSignature(tokenString):
		return fmt.Errorf("%w: %w", model.ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", model.ErrMalformed, err)
	}
}

// undecodableSignature reports whether header and payload are well formed
// while the signature segment fails strict base64url decoding.
func undecodableSignature(tokenString string) bool {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return false
	}

	enc := base64.RawURLEncoding.Strict()
	for _, part := range parts[:2] {
		raw, err := enc.DecodeString(part)
		if err != nil || !json.Valid(raw) {
			return false
		}
	}

	_, err := enc.DecodeString(parts[2])
	return err != nil
}
