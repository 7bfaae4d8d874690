package repository

import (
	"blogv2/internal/apperrors"
	"blogv2/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// uniqueViolation - переводит ошибку уникального индекса Postgres (23505)
// в ConflictError с именем поля. БД - последняя инстанция при гонке регистраций.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "email") {
			return &apperrors.ConflictError{Field: "email"}
		}
		return &apperrors.ConflictError{Field: "username"}
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (email, username, password_hash, disabled, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Disabled,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

// GetByIdentifier ищет пользователя по username ИЛИ email одним запросом.
// Логин принимает и то и другое, приоритета между колонками нет.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE username = $1 OR email = $1`

	err := r.db.GetContext(ctx, &user, query, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по идентификатору: %w", err)
	}

	return &user, nil
}

// CheckConflict проверяет email и username одним OR-запросом до вставки/обновления.
// При совпадении обоих полей первым сообщается email. excludeID исключает
// собственную строку пользователя при обновлении профиля.
func (r *userRepository) CheckConflict(ctx context.Context, email, username string, excludeID int64) error {
	var existing models.User

	query := `
		SELECT * FROM users
		WHERE (email = $1 OR username = $2) AND id <> $3
		ORDER BY (email = $1) DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &existing, query, email, username, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("ошибка при проверке уникальности: %w", err)
	}

	if existing.Email == email {
		return &apperrors.ConflictError{Field: "email"}
	}
	return &apperrors.ConflictError{Field: "username"}
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = :email, username = :username, password_hash = :password_hash, disabled = :disabled
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
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

// DeleteWithPosts удаляет пользователя вместе с его постами и их картинками
// в одной транзакции. Каскад выполняется явно, на уровень БД не полагаемся.
func (r *userRepository) DeleteWithPosts(ctx context.Context, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	// сначала дети, потом родитель: images -> posts -> user
	_, err = tx.ExecContext(ctx,
		`DELETE FROM images WHERE post_id IN (SELECT id FROM posts WHERE author_id = $1)`, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении картинок пользователя: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM posts WHERE author_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении постов пользователя: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
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
