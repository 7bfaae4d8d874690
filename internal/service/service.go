package service

import (
	"blogv2/internal/config"
	"blogv2/internal/repository"
	"blogv2/internal/storage"
)

type Service struct {
	Token TokenService
	Auth  AuthService
	User  UserService
	Post  PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	tokens := NewTokenService(cfg)

	return &Service{
		Token: tokens,
		Auth:  NewAuthService(rep.User, tokens, cfg),
		User:  NewUserService(rep, storage, cfg),
		Post:  NewPostService(rep, storage, cfg),
	}
}
