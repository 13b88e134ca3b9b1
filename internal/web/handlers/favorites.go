package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/web"
)

// FavoritesHandler handles /api/favorites requests
type FavoritesHandler struct {
	svc FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(svc FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

type jobIDsResponse struct {
	JobIDs []int `json:"jobIds"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// List returns the favorited job ids of the acting user.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.JobIDs(r.Context(), web.UserID(r.Context()))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	web.RespondJSON(w, http.StatusOK, jobIDsResponse{JobIDs: ids})
}

// Create favorites the job named in the body: {"jobId": <number>}.
func (h *FavoritesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JobID json.RawMessage `json:"jobId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		web.RespondError(w, r, apperror.Validation("Invalid JSON body"))
		return
	}

	jobID, ok := parseJobIDNumber(payload.JobID)
	if !ok {
		web.RespondError(w, r, apperror.Validation("jobId is required and must be a number"))
		return
	}

	fav, err := h.svc.Add(r.Context(), web.UserID(r.Context()), jobID)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.RespondJSON(w, http.StatusCreated, fav)
}

// Delete removes the job in the path from the acting user's favorites.
func (h *FavoritesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.Atoi(chi.URLParam(r, "jobId"))
	if err != nil {
		web.RespondError(w, r, apperror.Validation("Invalid job ID"))
		return
	}

	if err := h.svc.Remove(r.Context(), web.UserID(r.Context()), jobID); err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.RespondJSON(w, http.StatusOK, deletedResponse{Deleted: true})
}

// parseJobIDNumber accepts only a positive integral JSON number.
// Strings, booleans, null and fractions are rejected.
func parseJobIDNumber(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(n.String())
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
