// Package adminclient talks to the admin API and keeps the client-side view of the
// demo request list.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/delivery/http/middleware"
	"neurobiomark/internal/domain"
)

// APIError is a non-2xx response from the admin API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("admin api: status %d", e.Status)
	}
	return fmt.Sprintf("admin api: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client calls the demo request admin endpoints with the X-Admin-Key header.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

// New returns a Client for the API at baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL, key string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		key:        key,
		httpClient: httpClient,
	}
}

// List fetches one page of demo requests.
func (c *Client) List(ctx context.Context, q domain.DemoRequestQuery) (*domain.DemoRequestPage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	path := "/demo-requests"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var page domain.DemoRequestPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []*domain.DemoRequest{}
	}
	return &page, nil
}

type updateBody struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateStatus sets the follow-up status of one request.
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.DemoRequestStatus) (*domain.DemoRequest, error) {
	s := string(status)
	return c.update(ctx, id, updateBody{Status: &s})
}

// SaveNotes replaces the internal notes of one request.
func (c *Client) SaveNotes(ctx context.Context, id, notes string) (*domain.DemoRequest, error) {
	return c.update(ctx, id, updateBody{Notes: &notes})
}

func (c *Client) update(ctx context.Context, id string, body updateBody) (*domain.DemoRequest, error) {
	var updated domain.DemoRequest
	if err := c.do(ctx, http.MethodPatch, "/demo-requests/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/demo-requests/"+url.PathEscape(id), nil, nil)
}

func (c *Client) BulkDelete(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodPost, "/demo-requests/bulk-delete", map[string][]string{"ids": ids}, nil)
}

// Export streams the CSV export into w.
func (c *Client) Export(ctx context.Context, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/demo-requests/export", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read export: %w", err)
	}
	return nil
}

func (c *Client) Stats(ctx context.Context) ([]*domain.DailyCount, error) {
	var counts []*domain.DailyCount
	if err := c.do(ctx, http.MethodGet, "/demo-requests/stats", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx responses into *APIError.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(middleware.AdminKeyHeader, c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	apiErr := &APIError{Status: resp.StatusCode}
	var errBody helpers.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errBody); err == nil {
		apiErr.Code = errBody.Code
		apiErr.Message = errBody.Error
	}
	return nil, apiErr
}
