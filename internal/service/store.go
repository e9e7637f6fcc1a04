package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/sessionauth/internal/model"
)

// DefaultStoreTimeout bounds every single store call.
const DefaultStoreTimeout = 3 * time.Second

// callStore runs fn under its own deadline and folds infrastructure faults into
// ErrStoreTimeout or ErrStoreUnavailable. ErrNotFound and ErrDuplicateEmail pass through.
func callStore(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (model.User, error)) (model.User, error) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}

	storeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	user, err := fn(storeCtx)
	if err == nil {
		return user, nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrDuplicateEmail):
		return model.User{}, err
	case errors.Is(err, model.ErrStoreTimeout), errors.Is(err, model.ErrStoreUnavailable):
		return model.User{}, err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(storeCtx.Err(), context.DeadlineExceeded):
		return model.User{}, fmt.Errorf("%w: %w", model.ErrStoreTimeout, err)
	default:
		return model.User{}, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}
}
