package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/starred-jobs/internal/apperror"
)

func TestClient_Favorites(t *testing.T) {
	var gotUser string
	r := chi.NewRouter()
	r.Get("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get("X-User-Id")
		_, _ = w.Write([]byte(`{"data":{"jobIds":[5,2]}}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	ids, err := New(ts.URL, nil).Favorites(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 2}, ids)
	assert.Equal(t, "3", gotUser)
}

func TestClient_FavoritesMissingDataIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	ids, err := New(ts.URL, nil).Favorites(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{}, ids)
}

func TestClient_AddFavorite(t *testing.T) {
	var body map[string]int
	r := chi.NewRouter()
	r.Post("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":1,"userId":1,"jobId":8}}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	require.NoError(t, New(ts.URL, nil).AddFavorite(context.Background(), 1, 8))
	assert.Equal(t, map[string]int{"jobId": 8}, body)
}

func TestClient_RemoveFavoriteServerError(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/favorites/{jobId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Favorite not found","code":"not_found"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	err := New(ts.URL, nil).RemoveFavorite(context.Background(), 1, 8)
	require.Error(t, err)

	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, e.Kind)
	assert.Equal(t, "Favorite not found", e.Message)
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer ts.Close()

	err := New(ts.URL, nil).AddFavorite(context.Background(), 1, 2)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternal, e.Kind)
	assert.Equal(t, "Request failed with status 502", e.Message)
}

func TestClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url, nil)

	_, err := c.Favorites(context.Background(), 1)
	assert.Equal(t, apperror.KindNetwork, apperror.KindOf(err))

	err = c.AddFavorite(context.Background(), 1, 1)
	assert.Equal(t, apperror.KindNetwork, apperror.KindOf(err))

	_, err = c.Users(context.Background())
	assert.Equal(t, apperror.KindNetwork, apperror.KindOf(err))
}

func TestClient_Users(t *testing.T) {
	var hadUserHeader bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadUserHeader = r.Header["X-User-Id"]
		_, _ = w.Write([]byte(`{"data":[{"id":1,"firstName":"Ada","lastName":"Lovelace","email":"a@x.io"}]}`))
	}))
	defer ts.Close()

	users, err := New(ts.URL, nil).Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada Lovelace", users[0].DisplayName())
	assert.False(t, hadUserHeader)
}
