package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"blogv2/internal/apperrors"
	"blogv2/internal/models"
	"blogv2/internal/service"
)

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type PostResponse struct {
	ID        int64          `json:"id"`
	AuthorID  int64          `json:"authorId"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Published bool           `json:"published"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Images    []models.Image `json:"images,omitempty"`
}

type ImageResponse struct {
	ImageID   string    `json:"imageId"`
	PostID    int64     `json:"postId"`
	ImageURL  string    `json:"imageUrl"`
	FileName  string    `json:"fileName"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

func postResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Images:    post.Images,
	}
}

// GetPosts - GET /v2/posts/
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostRepo.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for i := range posts {
		response = append(response, postResponse(&posts[i]))
	}

	writeSuccess(w, response, http.StatusOK)
}

// GetLatestPost - GET /v2/posts/latest
func (h *Handlers) GetLatestPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostRepo.GetLatest(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, postResponse(post), http.StatusOK)
}

// GetPost - GET /v2/posts/{id}, вместе с картинками
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	images, err := h.ImageRepo.GetByPostID(r.Context(), post.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	post.Images = images

	writeSuccess(w, postResponse(post), http.StatusOK)
}

// CreatePost - POST /v2/posts/. Автором становится текущий пользователь,
// author_id из тела запроса не принимается.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Create(r.Context(), service.CreatePostRequest{
		AuthorID:  identity.ID,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, postResponse(post), http.StatusCreated)
}

// UpdatePost - PUT /v2/posts/{id}. Сначала существование (404),
// потом владение (403) - порядок закреплен тестами.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !service.CanModifyPost(identity, post) {
		writeServiceError(w, apperrors.ErrForbidden)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	err = h.PostService.Update(r.Context(), post, service.UpdatePostRequest{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, postResponse(post), http.StatusOK)
}

// DeletePost - DELETE /v2/posts/{id}
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !service.CanModifyPost(identity, post) {
		writeServiceError(w, apperrors.ErrForbidden)
		return
	}

	if err := h.PostService.Delete(r.Context(), post.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, postResponse(post), http.StatusOK)
}

// AttachImage - POST /v2/posts/{id}/images, multipart-форма с полем image
func (h *Handlers) AttachImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !service.CanModifyPost(identity, post) {
		writeServiceError(w, apperrors.ErrForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		writeError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	image, err := h.PostService.AttachImage(r.Context(), post.ID, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ImageResponse{
		ImageID:   image.ImageID,
		PostID:    image.PostID,
		ImageURL:  image.ImageURL,
		FileName:  header.Filename,
		FileSize:  header.Size,
		CreatedAt: image.CreatedAt,
	}, http.StatusCreated)
}

// DetachImage - DELETE /v2/posts/{id}/images/{imageID}
func (h *Handlers) DetachImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseID(r)
	if !ok {
		writeError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeServiceError(w, apperrors.ErrUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !service.CanModifyPost(identity, post) {
		writeServiceError(w, apperrors.ErrForbidden)
		return
	}

	imageID := mux.Vars(r)["imageID"]

	image, err := h.ImageRepo.GetByImageID(r.Context(), imageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// картинка должна принадлежать именно этому посту
	if image.PostID != post.ID {
		writeServiceError(w, apperrors.ErrNotFound)
		return
	}

	if err := h.PostService.DetachImage(r.Context(), image.ImageID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]string{"message": "Картинка удалена"}, http.StatusOK)
}
