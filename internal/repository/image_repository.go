package repository

import (
	"blogv2/internal/apperrors"
	"blogv2/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (image_id, post_id, image_url, created_at)
		VALUES (:image_id, :post_id, :image_url, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("ошибка при создании изображения: %w", err)
	}

	return nil
}

func (r *imageRepository) GetByImageID(ctx context.Context, imageID string) (*models.Image, error) {
	var image models.Image

	query := `SELECT * FROM images WHERE image_id = $1`

	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении изображения: %w", err)
	}

	return &image, nil
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID int64) ([]models.Image, error) {
	var images []models.Image

	query := `SELECT * FROM images WHERE post_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений: %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID string) error {
	query := `DELETE FROM images WHERE image_id = $1`

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении изображения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
