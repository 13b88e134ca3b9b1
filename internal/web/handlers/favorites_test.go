package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/models"
	"github.com/blockedby/starred-jobs/internal/web"
)

// MockFavoritesService is a mock for FavoritesService
type MockFavoritesService struct {
	mock.Mock
}

func (m *MockFavoritesService) JobIDs(ctx context.Context, userID int) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockFavoritesService) Add(ctx context.Context, userID, jobID int) (*models.Favorite, error) {
	args := m.Called(ctx, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoritesService) Remove(ctx context.Context, userID, jobID int) error {
	args := m.Called(ctx, userID, jobID)
	return args.Error(0)
}

func favoritesRouter(h *FavoritesHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(web.UserContext(1))
	r.Get("/api/favorites", h.List)
	r.Post("/api/favorites", h.Create)
	r.Delete("/api/favorites/{jobId}", h.Delete)
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) web.ErrorBody {
	t.Helper()
	var body web.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestFavoritesAPI_ListDefaultsToUserOne(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("JobIDs", mock.Anything, 1).Return([]int{3, 1}, nil)

	req := httptest.NewRequest("GET", "/api/favorites", nil)
	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"jobIds":[3,1]}}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestFavoritesAPI_ListUsesHeaderUser(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("JobIDs", mock.Anything, 4).Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/favorites", nil)
	req.Header.Set("X-User-Id", "4")
	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"jobIds":[]}}`, rec.Body.String())
}

func TestFavoritesAPI_ListDatabaseError(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("JobIDs", mock.Anything, 1).
		Return(nil, apperror.Wrap(apperror.KindDatabase, "Failed to fetch favorites", errors.New("disk")))

	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, httptest.NewRequest("GET", "/api/favorites", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "database_error", body.Code)
	assert.Equal(t, "Failed to fetch favorites", body.Error)
}

func TestFavoritesAPI_Create(t *testing.T) {
	svc := new(MockFavoritesService)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.On("Add", mock.Anything, 2, 42).
		Return(&models.Favorite{ID: 9, UserID: 2, JobID: 42, CreatedAt: created}, nil)

	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(`{"jobId":42}`))
	req.Header.Set("X-User-Id", "2")
	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":9,"userId":2,"jobId":42,"createdAt":"2025-03-01T12:00:00Z"}}`, rec.Body.String())
}

func TestFavoritesAPI_CreateValidation(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"jobId":"42"}`,
		`{"jobId":null}`,
		`{"jobId":0}`,
		`{"jobId":1.5}`,
		`{"jobId":true}`,
		`not json`,
	}

	for _, b := range bodies {
		t.Run(b, func(t *testing.T) {
			svc := new(MockFavoritesService)
			req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(b))
			rec := httptest.NewRecorder()
			favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_error", decodeError(t, rec).Code)
			svc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestFavoritesAPI_CreateConstraint(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("Add", mock.Anything, 1, 5).
		Return(nil, apperror.Wrap(apperror.KindConstraint, "", errors.New("FOREIGN KEY constraint failed")))

	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewBufferString(`{"jobId":5}`))
	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "constraint_error", decodeError(t, rec).Code)
}

func TestFavoritesAPI_Delete(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("Remove", mock.Anything, 1, 42).Return(nil)

	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/favorites/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"deleted":true}}`, rec.Body.String())
}

func TestFavoritesAPI_DeleteInvalidID(t *testing.T) {
	svc := new(MockFavoritesService)

	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/favorites/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body.Code)
	assert.Equal(t, "Invalid job ID", body.Error)
}

func TestFavoritesAPI_DeleteNotFound(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("Remove", mock.Anything, 1, 42).Return(apperror.NotFound("Favorite not found"))

	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/favorites/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "Favorite not found", body.Error)
}

func TestFavoritesAPI_BusyIs503(t *testing.T) {
	svc := new(MockFavoritesService)
	svc.On("Remove", mock.Anything, 1, 42).
		Return(apperror.Wrap(apperror.KindDatabaseBusy, "", errors.New("database is locked")))

	rec := httptest.NewRecorder()
	favoritesRouter(NewFavoritesHandler(svc)).ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/favorites/42", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database_busy", decodeError(t, rec).Code)
}
