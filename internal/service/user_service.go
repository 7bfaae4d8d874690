package service

import (
	"context"
	"log"

	"blogv2/internal/config"
	"blogv2/internal/models"
	"blogv2/internal/repository"
	"blogv2/internal/storage"
)

type RegisterUserRequest struct {
	Email    string
	Username string
	Password string
}

// UpdateUserRequest - частичное обновление, nil-поля не трогаются
type UpdateUserRequest struct {
	Email    *string
	Username *string
	Password *string
	Disabled *bool
}

type UserService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*models.User, error)
	Update(ctx context.Context, user *models.User, req UpdateUserRequest) error
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewUserService(rep *repository.Repository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo:  rep.User,
		postRepo:  rep.Post,
		imageRepo: rep.Image,
		storage:   storage,
		cfg:       cfg,
	}
}

// Register создает пользователя. Перед вставкой email и username проверяются
// одним OR-запросом; уникальный индекс БД остается последней инстанцией,
// его нарушение приходит тем же ConflictError.
func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	if err := s.userRepo.CheckConflict(ctx, req.Email, req.Username, 0); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update применяет заданные поля к уже найденному пользователю.
// Смена email/username повторно проходит проверку уникальности,
// собственная строка пользователя из нее исключается.
func (s *userService) Update(ctx context.Context, user *models.User, req UpdateUserRequest) error {
	email := user.Email
	username := user.Username

	if req.Email != nil {
		email = *req.Email
	}
	if req.Username != nil {
		username = *req.Username
	}

	if req.Email != nil || req.Username != nil {
		if err := s.userRepo.CheckConflict(ctx, email, username, user.ID); err != nil {
			return err
		}
	}

	user.Email = email
	user.Username = username

	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	return s.userRepo.Update(ctx, user)
}

// Delete удаляет пользователя, его посты и их картинки одной транзакцией.
// Объекты в MinIO чистятся до транзакции, их потеря не критична.
func (s *userService) Delete(ctx context.Context, userID int64) error {
	posts, err := s.postRepo.GetByAuthorID(ctx, userID)
	if err != nil {
		return err
	}

	for _, post := range posts {
		images, err := s.imageRepo.GetByPostID(ctx, post.ID)
		if err != nil {
			return err
		}
		for _, image := range images {
			if err := s.storage.DeleteImage(ctx, objectNameFromURL(image.ImageURL)); err != nil {
				log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
			}
		}
	}

	return s.userRepo.DeleteWithPosts(ctx, userID)
}
