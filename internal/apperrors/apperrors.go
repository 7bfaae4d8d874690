package apperrors

import (
	"errors"
	"fmt"
)

// ErrUnauthorized - единый ответ на любую ошибку аутентификации.
// Подпись, формат и срок действия токена не различаются снаружи.
var ErrUnauthorized = errors.New("не удалось проверить учетные данные")

// ErrForbidden - личность подтверждена, но прав на ресурс нет
var ErrForbidden = errors.New("доступ запрещен")

// ErrNotFound - запрошенный ресурс не существует
var ErrNotFound = errors.New("ресурс не найден")

// ConflictError - нарушение уникальности users.email / users.username
type ConflictError struct {
	Field string // "email" или "username"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("пользователь с таким %s уже существует", e.Field)
}

func IsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
