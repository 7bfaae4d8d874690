package service

import (
	"context"

	"blogv2/internal/apperrors"
	"blogv2/internal/config"
	"blogv2/internal/models"
	"blogv2/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	CurrentUser(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		cfg:      cfg,
	}
}

// Login проверяет пару идентификатор/пароль и выпускает access token.
// Идентификатором служит username или email. Несуществующий пользователь
// и неверный пароль дают одинаковый ErrUnauthorized.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, error) {
	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", apperrors.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.Username, 0)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	return token, nil
}

// CurrentUser - единственная точка входа для аутентифицированных запросов:
// токен -> subject -> строка users (username или email) -> проверка disabled.
// Вызывается middleware один раз на запрос, хендлеры берут результат из контекста.
func (s *authService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	subject, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.GetByIdentifier(ctx, subject)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	if user.Disabled {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}
