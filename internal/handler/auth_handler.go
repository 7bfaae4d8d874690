package handlers

import (
	"net/http"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login - POST /v2/auth/token. Принимает form-поля username и password,
// как OAuth2 password flow. В username можно передать и email.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	identifier := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if identifier == "" || password == "" {
		writeError(w, "Требуются username и password", http.StatusBadRequest)
		return
	}

	accessToken, err := h.AuthService.Login(r.Context(), identifier, password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, http.StatusOK)
}
