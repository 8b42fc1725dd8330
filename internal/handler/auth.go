package handler

import (
	"net/http"
	"strings"

	"github.com/shopworks/storefront/internal/middleware"
	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

const sessionCookieName = "session"

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

// AuthHandlerConfig holds configuration for the auth handler.
type AuthHandlerConfig struct {
	AuthService *service.AuthService
	// SecureCookie marks the session cookie Secure; set in production.
	SecureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		authService:  cfg.AuthService,
		secureCookie: cfg.SecureCookie,
	}
}

// RegisterRequest is the payload for POST /v1/users
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Register handles POST /v1/users - create a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		WriteError(w, MapServiceError(err, "user"))
		return
	}

	WriteData(w, http.StatusCreated, user, nil)
}

// LoginRequest is the payload for POST /v1/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token alongside the user record. The
// same token also travels in the session cookie.
type LoginResponse struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in"`
}

// Login handles POST /v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err, "user"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   result.ExpiresIn,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	WriteData(w, http.StatusOK, LoginResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	}, nil)
}

// Logout handles POST /v1/logout - revokes the current session. The session
// cookie is cleared even when the token was already invalid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	tokenString := requestToken(r)
	if tokenString == "" {
		WriteError(w, model.NewUnauthorizedError("Missing authentication token"))
		return
	}
	if err := h.authService.Logout(r.Context(), tokenString); err != nil {
		WriteError(w, MapServiceError(err, "session"))
		return
	}

	WriteNoContent(w)
}

// Me handles GET /v1/me - returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err, "user"))
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}

// requestToken extracts the session token the same way the auth middleware
// does: Authorization header first, then the session cookie.
func requestToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
