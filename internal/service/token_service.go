package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogv2/internal/apperrors"
	"blogv2/internal/config"
)

// TokenService выпускает и проверяет подписанные bearer-токены.
// Токены нигде не хранятся, единственный механизм отзыва - истечение срока.
type TokenService interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Validate(tokenString string) (string, error)
}

type tokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	return &tokenService{
		secret:     []byte(cfg.SecretKey),
		method:     method,
		defaultTTL: cfg.AccessTokenDuration,
	}
}

// Issue создает токен с claims sub и exp. При ttl <= 0 берется срок из конфига.
func (s *tokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(s.method, claims)

	return token.SignedString(s.secret)
}

// Validate проверяет подпись и срок действия и возвращает subject.
// Битый формат, чужая подпись и истекший срок дают один и тот же
// ErrUnauthorized - по ответу нельзя понять, какая проверка не прошла.
func (s *tokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", apperrors.ErrUnauthorized
	}

	return subject, nil
}
