// Package apiclient talks to the favorites service.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/models"
)

// Client is an HTTP client for /api/favorites and /users.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Favorites returns the job ids favorited by userID.
func (c *Client) Favorites(ctx context.Context, userID int) ([]int, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/favorites", userID, nil)
	if err != nil {
		return nil, networkError("Network error. Please check your connection.", err)
	}

	var body struct {
		Data struct {
			JobIDs []int `json:"jobIds"`
		} `json:"data"`
	}
	if err := decodeJSON(resp, &body); err != nil {
		return nil, err
	}
	if body.Data.JobIDs == nil {
		return []int{}, nil
	}
	return body.Data.JobIDs, nil
}

// AddFavorite favorites jobID for userID.
func (c *Client) AddFavorite(ctx context.Context, userID, jobID int) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/favorites", userID, map[string]int{"jobId": jobID})
	if err != nil {
		return networkError("Network error. Please try again.", err)
	}
	return decodeJSON(resp, nil)
}

// RemoveFavorite unfavorites jobID for userID.
func (c *Client) RemoveFavorite(ctx context.Context, userID, jobID int) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/favorites/"+strconv.Itoa(jobID), userID, nil)
	if err != nil {
		return networkError("Network error. Please try again.", err)
	}
	return decodeJSON(resp, nil)
}

// Users returns all users.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users", 0, nil)
	if err != nil {
		return nil, networkError("Network error. Please check your connection.", err)
	}

	var body struct {
		Data []models.User `json:"data"`
	}
	if err := decodeJSON(resp, &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return []models.User{}, nil
	}
	return body.Data, nil
}

// do sends a request; userID 0 omits the user header.
func (c *Client) do(ctx context.Context, method, path string, userID int, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if userID > 0 {
		req.Header.Set("X-User-Id", strconv.Itoa(userID))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// decodeJSON decodes a success envelope into v, or turns an {error, code}
// body into a tagged error carrying the server's code.
func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperror.Wrap(apperror.KindInternal, "", fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	fallback := fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	cause := fmt.Errorf("server returned %d", resp.StatusCode)

	var body struct {
		Error any    `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return apperror.Wrap(apperror.KindInternal, fallback, cause)
	}

	msg, ok := body.Error.(string)
	if !ok || msg == "" {
		return apperror.Wrap(apperror.KindInternal, fallback, cause)
	}
	return apperror.Wrap(apperror.KindFromCode(body.Code), msg, cause)
}

func networkError(message string, err error) error {
	return apperror.Wrap(apperror.KindNetwork, message, err)
}
