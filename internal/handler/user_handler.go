package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"blogv2/internal/apperrors"
	"blogv2/internal/models"
	"blogv2/internal/service"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,min=3"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Disabled *bool   `json:"disabled"`
}

// PostShared - сокращенный пост внутри профиля пользователя
type PostShared struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserResponse struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	Username  string       `json:"username"`
	CreatedAt time.Time    `json:"createdAt"`
	Posts     []PostShared `json:"posts"`
}

func userResponse(user *models.User, posts []models.Post) UserResponse {
	shared := make([]PostShared, 0, len(posts))
	for _, post := range posts {
		shared = append(shared, PostShared{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		})
	}

	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		Posts:     shared,
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Register - POST /v2/users/. Открытый маршрут: регистрация доступна всем,
// но проходит через проверку уникальности email и username.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterUserRequest{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, userResponse(user, nil), http.StatusCreated)
}

// GetCurrentUser - GET /v2/users/me
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	posts, err := h.PostRepo.GetByAuthorID(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, userResponse(identity, posts), http.StatusOK)
}

// GetUser - GET /v2/users/{id}, открытый профиль с постами
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	posts, err := h.PostRepo.GetByAuthorID(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, userResponse(user, posts), http.StatusOK)
}

// UpdateUser - PUT /v2/users/{id}. Профиль меняет только его владелец,
// при этом отсутствующий пользователь отдает 404 раньше 403.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	target, err := h.UserRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !service.CanModifyUser(identity, target) {
		writeServiceError(w, apperrors.ErrForbidden)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	err = h.UserService.Update(r.Context(), target, service.UpdateUserRequest{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Disabled: req.Disabled,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	posts, err := h.PostRepo.GetByAuthorID(r.Context(), target.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, userResponse(target, posts), http.StatusOK)
}

// DeleteUser - DELETE /v2/users/{id}. Самоудаление: вместе с пользователем
// в одной транзакции уходят его посты и их картинки.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	target, err := h.UserRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !service.CanModifyUser(identity, target) {
		writeServiceError(w, apperrors.ErrForbidden)
		return
	}

	if err := h.UserService.Delete(r.Context(), target.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, userResponse(target, nil), http.StatusOK)
}
