package preferences

import (
	"encoding/json"
	"net/http"

	authhandler "github.com/expense-exterminator/backend/internal/domain/auth/handler"
	"github.com/expense-exterminator/backend/internal/server/respond"
)

// Handler implements the preferences HTTP endpoints.
type Handler struct {
	repo Repository
}

// NewHandler constructs a new handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Get handles GET /api/preferences.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	p, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Update handles PUT /api/preferences.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authhandler.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	p := Default(userID)
	if err := json.NewDecoder(r.Body).Decode(p); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.UserID = userID
	if p.Currency == "" {
		p.Currency = "INR"
	}

	if err := h.repo.Upsert(r.Context(), p); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}
