package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"blogv2/internal/config"
	"blogv2/internal/database"
	"blogv2/internal/repository"
	"blogv2/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	UserService service.UserService
	PostService service.PostService
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	ImageRepo   repository.ImageRepository
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		UserService: services.User,
		PostService: services.Post,
		UserRepo:    repo.User,
		PostRepo:    repo.Post,
		ImageRepo:   repo.Image,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		writeError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
