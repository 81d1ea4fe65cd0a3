package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"robi-be/internal/dto"
)

// Client talks to a running ROBI server.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx reply carrying the server's detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

func (c *Client) Ask(ctx context.Context, query string) (*dto.AskResponse, error) {
	var res dto.AskResponse
	if err := c.get(ctx, "/ask?query="+url.QueryEscape(query), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Reload(ctx context.Context) (string, error) {
	var res dto.DetailResponse
	if err := c.get(ctx, "/reload_resource", &res); err != nil {
		return "", err
	}
	return res.Detail, nil
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var res dto.HealthResponse
	if err := c.get(ctx, "/health", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		var detail dto.DetailResponse
		if json.Unmarshal(body, &detail) != nil || detail.Detail == "" {
			detail.Detail = strings.TrimSpace(string(body))
		}
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}
	return json.Unmarshal(body, out)
}
