package handlers

import (
	"net/http"
	"strings"

	"socialforum/internal/service"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=72"`
	Email    string `json:"email" validate:"required,email,max=32"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	err := h.AuthService.Signup(r.Context(), service.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "User created successfully")
}

// Signin accepts a JSON body or an OAuth2 password-grant style form.
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			WriteError(w, "Invalid form body", http.StatusUnprocessableEntity)
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if !h.validate(w, &req) {
			return
		}
	} else if !h.decodeJSON(w, r, &req) {
		return
	}

	token, err := h.AuthService.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, TokenResponse{AccessToken: token, TokenType: "Bearer"}, http.StatusOK)
}

func (h *Handlers) Signout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Signout(r.Context(), bearerToken(r)); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeMessage(w, "Signed out successfully")
}
