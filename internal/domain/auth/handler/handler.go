// Package handler exposes the authentication HTTP endpoints and the
// middleware other domains use to require a logged-in user.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-exterminator/backend/internal/domain/auth/repository"
	"github.com/expense-exterminator/backend/internal/domain/auth/service"
	"github.com/expense-exterminator/backend/internal/server/respond"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user's id. The boolean is
// false outside of a RequireAuth-wrapped handler.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// AuthHandler implements the auth HTTP endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *repository.User `json:"user"`
	AccessToken string           `json:"access_token"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, repository.ErrUserAlreadyExists):
		respond.Error(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrWeakPassword):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "registration failed")
	default:
		respond.JSON(w, http.StatusCreated, authResponse{User: result.User, AccessToken: result.AccessToken})
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "login failed")
	default:
		respond.JSON(w, http.StatusOK, authResponse{User: result.User, AccessToken: result.AccessToken})
	}
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, "user not found")
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "profile lookup failed")
	default:
		respond.JSON(w, http.StatusOK, user)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrWeakPassword):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "password change failed")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// Logout handles POST /api/auth/logout. Access tokens are stateless, so
// logout is a client-side discard; the endpoint exists to give clients a
// uniform flow.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the request context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := h.service.ValidateAccessToken(r.Context(), token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid token subject")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores the user id in the context when a valid bearer token
// is present, and passes the request through untouched otherwise. Handlers
// that need a user check UserIDFromContext themselves.
func (h *AuthHandler) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := h.service.ValidateAccessToken(r.Context(), token); err == nil {
				if userID, err := uuid.Parse(claims.UserID); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
