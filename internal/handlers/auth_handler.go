package handlers

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/service"
)

// AuthHandler handles login requests
type AuthHandler struct {
	authService *service.AuthService
	log         *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /api/login
type LoginResponse struct {
	Response
	Token string          `json:"token"`
	User  models.Profile  `json:"user"`
	Store *models.Catalog `json:"store"`
}

// Login handles POST /api/login
// Accepts a JSON body or a classic form post.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid form body", h.log)
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	default:
		decoded, err := decodeObject[LoginRequest](w, r, maxCartBody)
		if err != nil {
			h.log.Warn("invalid login request body", "error", err)
			WriteError(w, http.StatusBadRequest, "Username and password are required", h.log)
			return
		}
		req = decoded
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch service.Classify(err) {
		case service.ClassInput:
			WriteError(w, http.StatusBadRequest, "Username and password are required", h.log)
		case service.ClassAuth:
			h.log.Info("login rejected", "username", req.Username)
			WriteError(w, http.StatusUnauthorized, "Invalid credentials", h.log)
		case service.ClassFatal:
			h.log.Error("login data unavailable", "error", err)
			WriteError(w, http.StatusInternalServerError, "Store data is unavailable", h.log)
		default:
			h.log.Error("failed to log in", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("user logged in", "username", session.User.Username)
	WriteJSON(w, http.StatusOK, LoginResponse{
		Response: Response{OK: true},
		Token:    session.Token,
		User:     session.User,
		Store:    session.Store,
	}, h.log)
}
