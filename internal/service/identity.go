package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/sessionauth/internal/logger"
	"github.com/dtroode/sessionauth/internal/model"
)

// Strategy names.
const (
	StrategyAuthoritative = "jwt"
	StrategySnapshot      = "current"
)

// AuthoritativeResolver verifies the token and re-reads the user from the store,
// so role and profile changes take effect on the next request.
type AuthoritativeResolver struct {
	tokenCodec   model.TokenCodec
	userStore    model.UserStore
	storeTimeout time.Duration
	logger       *logger.Logger
}

func NewAuthoritativeResolver(
	tokenCodec model.TokenCodec,
	userStore model.UserStore,
	storeTimeout time.Duration,
	logger *logger.Logger,
) *AuthoritativeResolver {
	return &AuthoritativeResolver{
		tokenCodec:   tokenCodec,
		userStore:    userStore,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

func (r *AuthoritativeResolver) Name() string { return StrategyAuthoritative }

func (r *AuthoritativeResolver) Resolve(ctx context.Context, token string) (model.Identity, error) {
	claims, err := verify(r.tokenCodec, token)
	if err != nil {
		r.logger.Debug("Identity resolver: token rejected",
			"strategy", StrategyAuthoritative,
			"error", err.Error())
		return model.Identity{}, err
	}

	user, err := callStore(ctx, r.storeTimeout, func(ctx context.Context) (model.User, error) {
		return r.userStore.GetByID(ctx, claims.UserID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			r.logger.Info("Identity resolver: token subject no longer exists",
				"user_id", claims.UserID)
			return model.Identity{}, model.ErrUserNotFound
		}
		r.logger.Error("Identity resolver: failed to get user by id",
			"user_id", claims.UserID,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Public(), nil
}

// SnapshotResolver trusts the claims embedded at mint time and never touches the store.
// The identity it returns may be stale for up to the token lifetime.
type SnapshotResolver struct {
	tokenCodec model.TokenCodec
	logger     *logger.Logger
}

func NewSnapshotResolver(tokenCodec model.TokenCodec, logger *logger.Logger) *SnapshotResolver {
	return &SnapshotResolver{
		tokenCodec: tokenCodec,
		logger:     logger,
	}
}

func (r *SnapshotResolver) Name() string { return StrategySnapshot }

func (r *SnapshotResolver) Resolve(_ context.Context, token string) (model.Identity, error) {
	claims, err := verify(r.tokenCodec, token)
	if err != nil {
		r.logger.Debug("Identity resolver: token rejected",
			"strategy", StrategySnapshot,
			"error", err.Error())
		return model.Identity{}, err
	}

	return claims.Identity(), nil
}

// verify maps every codec failure to ErrUnauthenticated while keeping the cause.
func verify(codec model.TokenCodec, token string) (model.IdentityClaims, error) {
	if token == "" {
		return model.IdentityClaims{}, fmt.Errorf("%w: missing token", model.ErrUnauthenticated)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		return model.IdentityClaims{}, fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}

	return claims, nil
}
