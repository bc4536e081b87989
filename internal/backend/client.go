// Package backend is the HTTP client for the leave-management API. The
// backend owns every business rule; this package only moves JSON, attaches
// the caller's bearer token, unwraps response envelopes and classifies
// failures by status code.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"congeadmin/internal/platform/cache"
	"congeadmin/internal/requestctx"
)

// Envelope is the wrapper the backend puts around every successful response.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Page is the paginated list payload carried inside an envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

type Client struct {
	baseURL     string
	http        *http.Client
	store       *cache.Cache
	readRetries int
}

func New(baseURL string, timeout time.Duration, readRetries int, store *cache.Cache) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		store:       store,
		readRetries: readRetries,
	}
}

// Invalidate drops cached reads for a resource after a mutation on it.
func (c *Client) Invalidate(resource string) {
	if c.store != nil {
		c.store.Invalidate(resource)
	}
}

// get retries once per configured read retry on transport errors and 5xx;
// mutations are never retried.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.readRetries; attempt++ {
		lastErr = c.do(ctx, http.MethodGet, path, query, nil, out)
		if lastErr == nil || !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := requestctx.GetToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp.StatusCode, raw)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "réponse illisible du serveur"}
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: "données inattendues du serveur"}
		}
	}
	return nil
}

const maxResponseBytes = 8 << 20

// cached serves a read from the resource cache when possible and stores the
// decoded result on a miss.
func cached[T any](ctx context.Context, c *Client, resource, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c.store != nil {
		if value, ok := c.store.Get(resource, key); ok {
			if typed, ok := value.(T); ok {
				return typed, nil
			}
		}
	}
	result, err := fetch(ctx)
	if err != nil {
		return result, err
	}
	if c.store != nil {
		c.store.Set(resource, key, result)
	}
	return result, nil
}
