package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogv2/internal/apperrors"
	"blogv2/internal/models"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) CheckConflict(ctx context.Context, email, username string, excludeID int64) error {
	args := m.Called(ctx, email, username, excludeID)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) DeleteWithPosts(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestAuthService(userRepo *mockUserRepository) AuthService {
	cfg := testTokenConfig("test-secret-key")
	return NewAuthService(userRepo, NewTokenService(cfg), cfg)
}

func testUser(password string) *models.User {
	hash, _ := HashPassword(password)
	return &models.User{
		ID:           1,
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: hash,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Логин по username", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("GetByIdentifier", mock.Anything, "alice").Return(testUser("password123"), nil)

		svc := newTestAuthService(repo)

		token, err := svc.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Логин по email", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("GetByIdentifier", mock.Anything, "alice@example.com").Return(testUser("password123"), nil)

		svc := newTestAuthService(repo)

		token, err := svc.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Неверный пароль и неизвестный пользователь дают одну ошибку", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("GetByIdentifier", mock.Anything, "alice").Return(testUser("password123"), nil)
		repo.On("GetByIdentifier", mock.Anything, "nobody").Return(nil, apperrors.ErrNotFound)

		svc := newTestAuthService(repo)

		_, errBadPassword := svc.Login(ctx, "alice", "wrong")
		_, errNoUser := svc.Login(ctx, "nobody", "password123")

		assert.ErrorIs(t, errBadPassword, apperrors.ErrUnauthorized)
		assert.ErrorIs(t, errNoUser, apperrors.ErrUnauthorized)
		assert.Equal(t, errBadPassword, errNoUser)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Токен от логина разрешается в пользователя", func(t *testing.T) {
		user := testUser("password123")

		repo := new(mockUserRepository)
		repo.On("GetByIdentifier", mock.Anything, "alice").Return(user, nil)

		svc := newTestAuthService(repo)

		token, err := svc.Login(ctx, "alice", "password123")
		require.NoError(t, err)

		resolved, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
		assert.Equal(t, "alice", resolved.Username)
	})

	t.Run("Отключенный пользователь не проходит", func(t *testing.T) {
		user := testUser("password123")
		user.Disabled = true

		repo := new(mockUserRepository)
		repo.On("GetByIdentifier", mock.Anything, "alice").Return(user, nil)

		svc := newTestAuthService(repo)

		token, err := svc.Login(ctx, "alice", "password123")
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Subject без строки в users не проходит", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("GetByIdentifier", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

		cfg := testTokenConfig("test-secret-key")
		tokens := NewTokenService(cfg)
		svc := NewAuthService(repo, tokens, cfg)

		token, err := tokens.Issue("ghost", 30*time.Minute)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
