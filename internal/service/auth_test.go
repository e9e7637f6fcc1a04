package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sessionauth/internal/mocks"
	"github.com/dtroode/sessionauth/internal/model"
	"github.com/dtroode/sessionauth/internal/testutil"
)

func newTestAuth(t *testing.T) (*Auth, *mocks.UserStore, *mocks.PasswordHasher, *mocks.TokenCodec) {
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	codec := mocks.NewTokenCodec(t)

	a := NewAuth(userStore, hasher, codec, time.Second, testutil.MakeNoopLogger())
	return a, userStore, hasher, codec
}

func testRegistration() model.Registration {
	return model.Registration{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@x.com",
		Age:       30,
		Password:  "pw123456",
	}
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _ := newTestAuth(t)

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "pw123456").Return("$2a$10$hash", nil)
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "ana@x.com" &&
			u.PasswordHash == "$2a$10$hash" &&
			u.Role == model.DefaultRole &&
			u.ID != uuid.Nil &&
			!u.CreatedAt.IsZero()
	})).Return(func(_ context.Context, u model.User) (model.User, error) {
		return u, nil
	})

	identity, err := a.Register(ctx, testRegistration())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, identity.ID)
	assert.Equal(t, "Ana", identity.FirstName)
	assert.Equal(t, "Lopez", identity.LastName)
	assert.Equal(t, "ana@x.com", identity.Email)
	assert.Equal(t, 30, identity.Age)
	assert.Equal(t, model.DefaultRole, identity.Role)
}

func TestAuth_Register_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _ := newTestAuth(t)

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", mock.Anything).Return("h", nil)
	userStore.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, u model.User) (model.User, error) {
		return u, nil
	})

	reg := testRegistration()
	reg.Email = "  Ana@X.com "
	identity, err := a.Register(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", identity.Email)
}

func TestAuth_Register_ExistingUser(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newTestAuth(t)

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{ID: uuid.New()}, nil)

	_, err := a.Register(ctx, testRegistration())
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Register_CreateConflict(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _ := newTestAuth(t)

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", mock.Anything).Return("h", nil)
	userStore.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrDuplicateEmail)

	_, err := a.Register(ctx, testRegistration())
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestAuth_Register_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _ := newTestAuth(t)

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{}, assert.AnError)

	_, err := a.Register(ctx, testRegistration())
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "failed to get user by email")
}

func TestAuth_Register_HashError(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _ := newTestAuth(t)

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", mock.Anything).Return("", assert.AnError)

	_, err := a.Register(ctx, testRegistration())
	require.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, codec := newTestAuth(t)

	user := model.User{ID: uuid.New(), Email: "ana@x.com", PasswordHash: "h", Role: model.DefaultRole}
	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(user, nil)
	hasher.On("Compare", "h", "pw123456").Return(nil)
	codec.On("Mint", model.ClaimsFromUser(user)).Return("tok", nil)

	token, err := a.Login(ctx, "ana@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		setup func(userStore *mocks.UserStore, hasher *mocks.PasswordHasher)
	}{
		{
			name: "unknown email",
			setup: func(userStore *mocks.UserStore, _ *mocks.PasswordHasher) {
				userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{}, model.ErrNotFound)
			},
		},
		{
			name: "wrong password",
			setup: func(userStore *mocks.UserStore, hasher *mocks.PasswordHasher) {
				userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(model.User{ID: uuid.New(), PasswordHash: "h"}, nil)
				hasher.On("Compare", "h", "pw123456").Return(assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, userStore, hasher, codec := newTestAuth(t)
			tt.setup(userStore, hasher)

			token, err := a.Login(context.Background(), "ana@x.com", "pw123456")
			require.ErrorIs(t, err, model.ErrInvalidCredentials)
			assert.Empty(t, token)
			codec.AssertNotCalled(t, "Mint", mock.Anything)
		})
	}
}

func TestAuth_Login_StoreTimeout(t *testing.T) {
	userStore := mocks.NewUserStore(t)
	a := NewAuth(userStore, mocks.NewPasswordHasher(t), mocks.NewTokenCodec(t), 10*time.Millisecond, testutil.MakeNoopLogger())

	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(func(ctx context.Context, _ string) (model.User, error) {
		<-ctx.Done()
		return model.User{}, ctx.Err()
	})

	_, err := a.Login(context.Background(), "ana@x.com", "pw")
	require.ErrorIs(t, err, model.ErrStoreTimeout)
}

func TestAuth_Login_MintError(t *testing.T) {
	a, userStore, hasher, codec := newTestAuth(t)

	user := model.User{ID: uuid.New(), PasswordHash: "h"}
	userStore.On("GetByEmail", mock.Anything, "ana@x.com").Return(user, nil)
	hasher.On("Compare", "h", "pw").Return(nil)
	codec.On("Mint", mock.Anything).Return("", model.ErrEncoding)

	_, err := a.Login(context.Background(), "ana@x.com", "pw")
	require.ErrorIs(t, err, model.ErrEncoding)
	assert.Contains(t, err.Error(), "failed to mint token")
}
