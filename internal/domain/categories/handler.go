package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	authhandler "github.com/expense-exterminator/backend/internal/domain/auth/handler"
	"github.com/expense-exterminator/backend/internal/server/respond"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	repo Repository
}

// NewHandler constructs a new handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// List handles GET /api/categories.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cats, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []*Category{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// Create handles POST /api/categories.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c := &Category{UserID: userID, Name: strings.TrimSpace(req.Name), Color: req.Color, Icon: req.Icon}
	err := h.repo.Create(r.Context(), c)
	switch {
	case errors.Is(err, ErrCategoryExists):
		respond.Error(w, http.StatusConflict, "category already exists")
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "failed to create category")
	default:
		respond.JSON(w, http.StatusCreated, c)
	}
}

// Update handles PUT /api/categories/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c := &Category{ID: id, UserID: userID, Name: strings.TrimSpace(req.Name), Color: req.Color, Icon: req.Icon}
	err = h.repo.Update(r.Context(), c)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		respond.Error(w, http.StatusNotFound, "category not found")
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "failed to update category")
	default:
		respond.JSON(w, http.StatusOK, c)
	}
}

// Delete handles DELETE /api/categories/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	err = h.repo.Delete(r.Context(), userID, id)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		respond.Error(w, http.StatusNotFound, "category not found")
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "failed to delete category")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
