package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelmate/internal/api"
)

// Client talks to the reelmated HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New constructs a client for the given base URL, which may be a bare
// host:port.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Status fetches server runtime information.
func (c *Client) Status(ctx context.Context) (api.StatusResponse, error) {
	var payload api.StatusResponse
	err := c.do(ctx, http.MethodGet, "/api/status", "", nil, &payload)
	return payload, err
}

// Users lists the stored users.
func (c *Client) Users(ctx context.Context) (api.UserListResponse, error) {
	var payload api.UserListResponse
	err := c.do(ctx, http.MethodGet, "/api/users", "", nil, &payload)
	return payload, err
}

// Movies fetches a user's stored collection.
func (c *Client) Movies(ctx context.Context, userID string) (api.MoviesResponse, error) {
	var payload api.MoviesResponse
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/movies", "", nil, &payload)
	return payload, err
}

// Import uploads a Letterboxd CSV export for the given user.
func (c *Client) Import(ctx context.Context, userID string, export io.Reader) (api.ImportResponse, error) {
	var payload api.ImportResponse
	err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/movies", "text/csv", export, &payload)
	return payload, err
}

// SaveProfile updates a user's profile fields.
func (c *Client) SaveProfile(ctx context.Context, userID string, profile api.ProfileRequest) (api.User, error) {
	body, err := json.Marshal(profile)
	if err != nil {
		return api.User{}, fmt.Errorf("encode profile: %w", err)
	}
	var payload api.User
	err = c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID)+"/profile", "application/json", bytes.NewReader(body), &payload)
	return payload, err
}

// Compare runs a comparison between two stored collections.
func (c *Client) Compare(ctx context.Context, userID, friendID string) (api.CompareResponse, error) {
	query := url.Values{}
	query.Set("user", userID)
	query.Set("friend", friendID)
	var payload api.CompareResponse
	err := c.do(ctx, http.MethodGet, "/api/compare?"+query.Encode(), "", nil, &payload)
	return payload, err
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	var payload api.ErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Error)
	}
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, message)
}
