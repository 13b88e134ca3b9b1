package handlers

import (
	"net/http"

	"github.com/blockedby/starred-jobs/internal/models"
	"github.com/blockedby/starred-jobs/internal/web"
)

// UsersHandler handles /users requests
type UsersHandler struct {
	repo UsersRepository
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(repo UsersRepository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

// List returns every user without credentials.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		web.RespondError(w, r, err)
		return
	}

	// Ensure we return empty array, not null
	if users == nil {
		users = []models.User{}
	}
	web.RespondJSON(w, http.StatusOK, users)
}
