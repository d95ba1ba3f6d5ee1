package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidora/api/internal/config"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	auth        config.Auth
	cookies     config.Cookies
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, auth config.Auth, cookies config.Cookies) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		auth:        auth,
		cookies:     cookies,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	user, err := h.userService.Register(r.Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User *domain.User `json:"user"`
	ports.TokenPair
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, pair, err := h.authService.Login(r.Context(), identifier, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	respondJSON(w, http.StatusOK, loginResponse{User: user, TokenPair: *pair})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	// The refresh path never trusts access-token claims: the presented
	// refresh token is checked against the persisted one.
	pair, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.expireTokenCookies(w)
		respondError(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	respondJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	h.expireTokenCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair *ports.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    pair.AccessToken,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   int(h.auth.AccessTokenTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    pair.RefreshToken,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   int(h.auth.RefreshTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) expireTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", MaxAge: -1, Path: "/", Domain: h.cookies.Domain})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", MaxAge: -1, Path: "/", Domain: h.cookies.Domain})
}
