package service

import (
	"context"
	"io"
	"log"
	"net/url"
	"strings"

	"blogv2/internal/config"
	"blogv2/internal/models"
	"blogv2/internal/repository"
	"blogv2/internal/storage"
)

type CreatePostRequest struct {
	AuthorID  int64
	Title     string
	Content   string
	Published *bool
}

// UpdatePostRequest - частичное обновление, nil-поля не трогаются
type UpdatePostRequest struct {
	Title     *string
	Content   *string
	Published *bool
}

type PostService interface {
	Create(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, post *models.Post, req UpdatePostRequest) error
	Delete(ctx context.Context, postID int64) error
	AttachImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error)
	DetachImage(ctx context.Context, imageID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewPostService(rep *repository.Repository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:  rep.Post,
		imageRepo: rep.Image,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *postService) Create(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	// по умолчанию пост публикуется сразу
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post := &models.Post{
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) Update(ctx context.Context, post *models.Post, req UpdatePostRequest) error {
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	return s.postRepo.Update(ctx, post)
}

// Delete удаляет пост вместе с картинками: объекты в MinIO чистятся
// до транзакции, строки images и сам пост - внутри нее.
func (s *postService) Delete(ctx context.Context, postID int64) error {
	images, err := s.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	for _, image := range images {
		if err := s.storage.DeleteImage(ctx, objectNameFromURL(image.ImageURL)); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
		}
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) AttachImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error) {
	objectName, imageURL, err := s.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, err
	}

	image := &models.Image{
		PostID:   postID,
		ImageURL: imageURL,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// строка не записалась - убираем осиротевший объект
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", delErr)
		}
		return nil, err
	}

	return image, nil
}

func (s *postService) DetachImage(ctx context.Context, imageID string) error {
	image, err := s.imageRepo.GetByImageID(ctx, imageID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteImage(ctx, objectNameFromURL(image.ImageURL)); err != nil {
		log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
	}

	return s.imageRepo.Delete(ctx, imageID)
}

// objectNameFromURL выделяет имя объекта из URL вида
// http://host/bucket/posts/... Имя объекта - все после бакета.
func objectNameFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
