package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogv2/cmd/app"
	"blogv2/internal/config"
	handlers "blogv2/internal/handler"
	"blogv2/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, db, cfg)

	router := mux.NewRouter()
	router.StrictSlash(true)

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// setting up public routes
	router.HandleFunc("/v2/auth/token", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/v2/users/", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/v2/users/{id:[0-9]+}", handler.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/v2/posts/", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/v2/posts/latest", handler.GetLatestPost).Methods(http.MethodGet)
	router.HandleFunc("/v2/posts/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)

	// setting up protected routes: токен разбирается один раз в RequireAuth
	protected := router.NewRoute().Subrouter()
	protected.Use(handler.RequireAuth)
	protected.HandleFunc("/v2/users/me", handler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/v2/users/{id:[0-9]+}", handler.UpdateUser).Methods(http.MethodPut)
	protected.HandleFunc("/v2/users/{id:[0-9]+}", handler.DeleteUser).Methods(http.MethodDelete)
	protected.HandleFunc("/v2/posts/", handler.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/v2/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	protected.HandleFunc("/v2/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)
	protected.HandleFunc("/v2/posts/{id:[0-9]+}/images", handler.AttachImage).Methods(http.MethodPost)
	protected.HandleFunc("/v2/posts/{id:[0-9]+}/images/{imageID}", handler.DetachImage).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
