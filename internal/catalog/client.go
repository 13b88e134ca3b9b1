// Package catalog is the client for the upstream job catalog.
package catalog

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
	"golang.org/x/sync/errgroup"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/models"
)

// MaxSearchResults caps how many recommended jobs a search fetches.
const MaxSearchResults = 20

const maxBodySize = 4 << 20

// Client talks to the catalog over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *RateLimiter
	cache   Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimiter replaces the default limiter.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithCache enables response caching for page and job lookups.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// NewClient creates a catalog client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: DefaultRateLimiter(),
		cache:   noCache{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListJobs returns one page of the feed.
func (c *Client) ListJobs(ctx context.Context, page int) (*JobsPage, error) {
	if page < 1 {
		page = 1
	}
	path := "/jobs?page=" + strconv.Itoa(page)

	body, status, err := c.cachedGet(ctx, path, "jobs:page:"+strconv.Itoa(page), ListTTL)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetwork, "", err)
	}
	if !ok(status) {
		logger.Component("catalog").Warn().Int("status", status).Int("page", page).Msg("catalog list failed")
		return nil, apperror.Wrap(apperror.KindFetch, "", fmt.Errorf("catalog returned %d", status))
	}

	var list externalJobsList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, apperror.Wrap(apperror.KindFetch, "", fmt.Errorf("decode jobs page: %w", err))
	}
	return list.toPage(), nil
}

// GetJob returns a single job.
func (c *Client) GetJob(ctx context.Context, id int) (*models.Job, error) {
	path := "/jobs/" + strconv.Itoa(id)

	body, status, err := c.cachedGet(ctx, path, "jobs:id:"+strconv.Itoa(id), JobTTL)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetwork, "Failed to load job details.", err)
	}
	if !ok(status) {
		return nil, apperror.Wrap(apperror.KindNotFound, "Job not found.", fmt.Errorf("catalog returned %d for job %d", status, id))
	}

	var ext externalJob
	if err := json.Unmarshal(body, &ext); err != nil {
		return nil, apperror.Wrap(apperror.KindNotFound, "Job not found.", fmt.Errorf("decode job %d: %w", id, err))
	}
	job := ext.toJob()
	return &job, nil
}

// GetJobs fetches jobs concurrently, keeping the order of ids. Jobs that fail
// to load are left out; the call itself never fails.
func (c *Client) GetJobs(ctx context.Context, ids []int) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}

	results := make([]*models.Job, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxSearchResults)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			job, err := c.GetJob(gctx, id)
			if err != nil {
				logger.Component("catalog").Debug().Err(err).Int("job_id", id).Msg("dropping job that failed to load")
				return nil
			}
			results[i] = job
			return nil
		})
	}
	_ = g.Wait()

	jobs := make([]models.Job, 0, len(ids))
	for _, j := range results {
		if j != nil {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

// Search asks the catalog for jobs matching title and loads the first
// MaxSearchResults of them.
func (c *Client) Search(ctx context.Context, title string) ([]models.Job, error) {
	payload, err := json.Marshal(searchRequest{JobTitle: title})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindSearch, "", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, "/jobs/recommendations", payload)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetwork, "", err)
	}
	if !ok(status) {
		logger.Component("catalog").Warn().Int("status", status).Str("query", title).Msg("catalog search failed")
		return nil, apperror.Wrap(apperror.KindSearch, "", fmt.Errorf("catalog returned %d", status))
	}

	var res searchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, apperror.Wrap(apperror.KindSearch, "", fmt.Errorf("decode search response: %w", err))
	}
	if len(res.JobIDs) == 0 {
		return []models.Job{}, nil
	}

	ids := res.JobIDs
	if len(ids) > MaxSearchResults {
		ids = ids[:MaxSearchResults]
	}
	return c.GetJobs(ctx, ids)
}

func (c *Client) cachedGet(ctx context.Context, path, key string, ttl time.Duration) ([]byte, int, error) {
	if b, hit := c.cache.Get(ctx, key); hit {
		return b, http.StatusOK, nil
	}

	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, 0, err
	}
	if ok(status) {
		c.cache.Set(ctx, key, body, ttl)
	}
	return body, status, nil
}

// do performs a request and returns the body and status. Only transport
// failures are returned as errors.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			c.limiter.SetRetryAfter(time.Duration(secs) * time.Second)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	return body, resp.StatusCode, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
