package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
)

// Auth implements registration and credential login.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenCodec   model.TokenCodec
	storeTimeout time.Duration
	now          func() time.Time
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenCodec model.TokenCodec,
	storeTimeout time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenCodec:   tokenCodec,
		storeTimeout: storeTimeout,
		now:          time.Now,
		logger:       logger,
	}
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with role "user" and returns its public projection.
// The plaintext password is hashed before anything is persisted.
func (a *Auth) Register(ctx context.Context, reg model.Registration) (model.Identity, error) {
	email := NormalizeEmail(reg.Email)

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	_, err := callStore(ctx, a.storeTimeout, func(ctx context.Context) (model.User, error) {
		return a.userStore.GetByEmail(ctx, email)
	})
	switch {
	case err == nil:
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.Identity{}, model.ErrDuplicateEmail
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(reg.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	user := model.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        email,
		Age:          reg.Age,
		PasswordHash: hash,
		Role:         model.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := callStore(ctx, a.storeTimeout, func(ctx context.Context) (model.User, error) {
		return a.userStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			a.logger.Info("Auth service: email taken concurrently",
				"email", email)
			return model.Identity{}, model.ErrDuplicateEmail
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered successfully",
		"email", email,
		"user_id", created.ID)

	return created.Public(), nil
}

// Login checks credentials and mints a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := callStore(ctx, a.storeTimeout, func(ctx context.Context) (model.User, error) {
		return a.userStore.GetByEmail(ctx, email)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login for unknown email",
				"email", email)
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"email", email,
			"user_id", user.ID)
		return "", model.ErrInvalidCredentials
	}

	token, err := a.tokenCodec.Mint(model.ClaimsFromUser(user))
	if err != nil {
		a.logger.Error("Auth service: failed to mint token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to mint token: %w", err)
	}

	a.logger.Info("Auth service: user logged in successfully",
		"user_id", user.ID)

	return token, nil
}
