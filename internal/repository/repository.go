package repository

import (
	"blogv2/internal/models"
	"context"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	CheckConflict(ctx context.Context, email, username string, excludeID int64) error
	Update(ctx context.Context, user *models.User) error
	DeleteWithPosts(ctx context.Context, userID int64) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetLatest(ctx context.Context) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByImageID(ctx context.Context, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID int64) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type Repository struct {
	User  UserRepository
	Post  PostRepository
	Image ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Post:  NewPostRepository(db),
		Image: NewImageRepository(db),
	}
}
