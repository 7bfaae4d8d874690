package repository

import (
	"blogv2/internal/apperrors"
	"blogv2/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (author_id, title, content, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.Title,
		post.Content,
		post.Published,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post

	query := `SELECT * FROM posts ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetLatest(ctx context.Context) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, &post, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении последнего поста: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error) {
	var posts []models.Post

	query := `SELECT * FROM posts WHERE author_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE posts
		SET title = :title, content = :content, published = :published, updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete удаляет пост и его картинки в одной транзакции.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM images WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении картинок поста: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}
