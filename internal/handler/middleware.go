package handlers

import (
	"context"
	"net/http"
	"strings"

	"blogv2/internal/apperrors"
	"blogv2/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// ContextWithIdentity кладет распознанного пользователя в контекст запроса.
func ContextWithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFromContext возвращает пользователя, положенного RequireAuth.
func IdentityFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(identityKey).(*models.User)
	return user
}

// RequireAuth - middleware для защищенных маршрутов. Разбирает заголовок
// Authorization, один раз за запрос прогоняет токен через AuthService и
// кладет пользователя в контекст. Любой сбой - единый 401.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeServiceError(w, apperrors.ErrUnauthorized)
			return
		}

		// Проверяем формат "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeServiceError(w, apperrors.ErrUnauthorized)
			return
		}

		user, err := h.AuthService.CurrentUser(r.Context(), parts[1])
		if err != nil {
			writeServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), user)))
	})
}
