package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("пароль не может быть пустым")

// HashPassword возвращает bcrypt-хеш пароля. Соль и фактор стоимости
// зашиты в саму строку хеша, внешнего состояния для проверки не нужно.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хешем. Любая проблема, включая
// битую строку хеша, дает false - никогда не ложный успех.
func VerifyPassword(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
