package user

import (
	"context"
	"errors"
	"testing"

	"campobook/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration defaults to player", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New User", "new@example.com", mock.AnythingOfType("string"), auth.RolePlayer).
			Return(&User{ID: 1, Name: "New User", Email: "new@example.com", Role: auth.RolePlayer}, nil)

		svc := NewService(repo, "secret")
		user, access, refresh, err := svc.Register(ctx, RegisterRequest{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		repo.AssertExpectations(t)
	})

	t.Run("owner role is honored", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "owner@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "Owner", "owner@example.com", mock.AnythingOfType("string"), auth.RoleOwner).
			Return(&User{ID: 2, Role: auth.RoleOwner, Email: "owner@example.com"}, nil)

		svc := NewService(repo, "secret")
		user, _, _, err := svc.Register(ctx, RegisterRequest{
			Name:     "Owner",
			Email:    "owner@example.com",
			Password: "password123",
			Role:     auth.RoleOwner,
		})

		require.NoError(t, err)
		assert.Equal(t, auth.RoleOwner, user.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		svc := NewService(repo, "secret")
		_, _, _, err := svc.Register(ctx, RegisterRequest{
			Name:     "User",
			Email:    "taken@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	t.Run("successful login", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(&User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hash,
			Role:         auth.RolePlayer,
		}, nil)

		svc := NewService(repo, "secret")
		user, access, _, err := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.NotEmpty(t, access)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(&User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hash,
		}, nil)

		svc := NewService(repo, "secret")
		_, _, _, err := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, errors.New("sql: no rows"))

		svc := NewService(repo, "secret")
		_, _, _, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepo)
	repo.On("FindByID", mock.Anything, 5).Return(&User{
		ID:    5,
		Email: "user@example.com",
		Role:  auth.RolePlayer,
	}, nil)

	svc := NewService(repo, "secret")

	_, refreshToken, err := auth.GenerateTokens(5, "user@example.com", auth.RolePlayer, "secret")
	require.NoError(t, err)

	newAccess, user, err := svc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)

	claims, err := auth.ValidateToken(newAccess, "secret")
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}
