package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogv2/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError - универсальная функция для отправки ошибок
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError переводит ошибки сервисного слоя в HTTP-статусы:
// конфликт уникальности - 400, аутентификация - 401 (единый текст),
// права - 403, отсутствующий ресурс - 404, остальное - 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if conflict, ok := apperrors.IsConflict(err); ok {
		writeError(w, conflict.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, apperrors.ErrUnauthorized.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrForbidden):
		writeError(w, apperrors.ErrForbidden.Error(), http.StatusForbidden)
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(w, apperrors.ErrNotFound.Error(), http.StatusNotFound)
	default:
		writeError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
