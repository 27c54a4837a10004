package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neurobiomark/internal/domain"
)

// DefaultEndpoint is Cloudflare's Turnstile verification URL.
const DefaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Client verifies Turnstile tokens against the siteverify API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	secret     string
}

// NewClient returns a Client that posts to endpoint (DefaultEndpoint when empty).
func NewClient(secret, endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		secret:     secret,
	}
}

var _ domain.CaptchaVerifier = (*Client)(nil)

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify reports whether the token was accepted. A transport or decode failure is
// returned as an error; a rejected token is (false, nil).
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" && remoteIP != domain.UnknownIP {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("siteverify request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}
	var out siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode siteverify response: %w", err)
	}
	return out.Success, nil
}
