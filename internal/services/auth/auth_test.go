package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lms-backend/internal/apperror"
	"github.com/magabrotheeeer/lms-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/lms-backend/internal/lib/password"
	"github.com/magabrotheeeer/lms-backend/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "user@example.com" &&
			u.Role == models.RoleUser &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret123"
	})).Return("uid-1", nil)
	svc := NewAuthService(repo, newMaker())

	uid, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("RegisterUser", mock.Anything, mock.Anything).Return("", apperror.ErrDuplicate)
	svc := NewAuthService(repo, newMaker())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	activeUser := &models.User{
		UID:          "uid-1",
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	t.Run("успешный вход", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(activeUser, nil)
		repo.On("UpdateLastLogin", mock.Anything, "uid-1").Return(nil)
		svc := NewAuthService(repo, newMaker())

		token, role, err := svc.Login(context.Background(), "user@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, models.RoleUser, role)
		repo.AssertExpectations(t)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(activeUser, nil)
		svc := NewAuthService(repo, newMaker())

		_, _, err := svc.Login(context.Background(), "user@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
	})

	t.Run("несуществующий email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, apperror.ErrNotFound)
		svc := NewAuthService(repo, newMaker())

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("деактивированная учётная запись", func(t *testing.T) {
		inactive := *activeUser
		inactive.IsActive = false
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(&inactive, nil)
		svc := NewAuthService(repo, newMaker())

		_, _, err := svc.Login(context.Background(), "user@example.com", "secret123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	maker := newMaker()
	svc := NewAuthService(new(MockUserRepository), maker)

	token, err := maker.GenerateToken("user@example.com", models.RoleModerator, "uid-1")
	require.NoError(t, err)

	user, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, models.RoleModerator, user.Role)

	_, err = svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
