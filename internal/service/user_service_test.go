package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogv2/internal/apperrors"
	"blogv2/internal/config"
	"blogv2/internal/models"
	"blogv2/internal/repository"
)

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepository) GetLatest(ctx context.Context) (*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) Create(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *mockImageRepository) GetByImageID(ctx context.Context, imageID string) (*models.Image, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *mockImageRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Image, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *mockImageRepository) Delete(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, postID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func newTestUserService(users *mockUserRepository, posts *mockPostRepository, images *mockImageRepository, store *mockStorage) UserService {
	rep := &repository.Repository{User: users, Post: posts, Image: images}
	return NewUserService(rep, store, &config.Config{})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Пароль хешируется до записи", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("CheckConflict", mock.Anything, "alice@example.com", "alice", int64(0)).Return(nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.PasswordHash != "" && u.PasswordHash != "password123" &&
				VerifyPassword("password123", u.PasswordHash)
		})).Return(nil)

		svc := newTestUserService(users, new(mockPostRepository), new(mockImageRepository), new(mockStorage))

		user, err := svc.Register(ctx, RegisterUserRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		users.AssertExpectations(t)
	})

	t.Run("Конфликт из пре-проверки - вставки нет", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("CheckConflict", mock.Anything, "alice@example.com", "alice", int64(0)).
			Return(&apperrors.ConflictError{Field: "email"})

		svc := newTestUserService(users, new(mockPostRepository), new(mockImageRepository), new(mockStorage))

		_, err := svc.Register(ctx, RegisterUserRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "password123",
		})

		conflict, ok := apperrors.IsConflict(err)
		require.True(t, ok)
		assert.Equal(t, "email", conflict.Field)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Смена email проходит проверку без собственной строки", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("CheckConflict", mock.Anything, "new@example.com", "alice", int64(1)).Return(nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := newTestUserService(users, new(mockPostRepository), new(mockImageRepository), new(mockStorage))

		user := &models.User{ID: 1, Email: "alice@example.com", Username: "alice"}
		newEmail := "new@example.com"

		err := svc.Update(ctx, user, UpdateUserRequest{Email: &newEmail})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		users.AssertExpectations(t)
	})

	t.Run("Без смены email/username проверка не выполняется", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := newTestUserService(users, new(mockPostRepository), new(mockImageRepository), new(mockStorage))

		user := &models.User{ID: 1, Email: "alice@example.com", Username: "alice", PasswordHash: "old"}
		newPassword := "newpassword"

		err := svc.Update(ctx, user, UpdateUserRequest{Password: &newPassword})

		require.NoError(t, err)
		assert.True(t, VerifyPassword("newpassword", user.PasswordHash))
		users.AssertNotCalled(t, "CheckConflict", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_Delete_Cascade(t *testing.T) {
	// пользователь 1 владеет постами 10 и 11, у поста 10 есть картинка:
	// объект уходит из MinIO, строки - одной транзакцией репозитория
	ctx := context.Background()

	users := new(mockUserRepository)
	posts := new(mockPostRepository)
	images := new(mockImageRepository)
	store := new(mockStorage)

	posts.On("GetByAuthorID", mock.Anything, int64(1)).Return([]models.Post{
		{ID: 10, AuthorID: 1},
		{ID: 11, AuthorID: 1},
	}, nil)
	images.On("GetByPostID", mock.Anything, int64(10)).Return([]models.Image{
		{ImageID: "img-1", PostID: 10, ImageURL: "http://localhost:9000/images/posts/10/img-1.jpg"},
	}, nil)
	images.On("GetByPostID", mock.Anything, int64(11)).Return([]models.Image{}, nil)
	store.On("DeleteImage", mock.Anything, "posts/10/img-1.jpg").Return(nil)
	users.On("DeleteWithPosts", mock.Anything, int64(1)).Return(nil)

	svc := newTestUserService(users, posts, images, store)

	err := svc.Delete(ctx, 1)

	require.NoError(t, err)
	users.AssertExpectations(t)
	store.AssertExpectations(t)
}
