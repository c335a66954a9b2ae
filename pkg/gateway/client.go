package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// StatusOK is the gateway status code signalling valid credentials.
const StatusOK = 0

// Result carries the gateway's verdict for a credential pair. Any
// nonzero Code means the credentials were rejected.
type Result struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Client talks to the school identity service that remains the
// authority for accounts the portal has never seen.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a gateway client for the given endpoint.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Authenticate verifies a username/password pair against the school
// directory and returns the status code plus the display name on success.
func (c *Client) Authenticate(ctx context.Context, username, password string) (Result, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call identity gateway: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("identity gateway returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode gateway response: %w", err)
	}
	return result, nil
}
