// Package client talks to the back-office REST API. Each collection wraps one
// endpoint and performs exactly one request per call: no retries, no timeout
// beyond the transport's own, no idempotency keys.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"backoffice/internal/models"
)

// Config holds the client construction parameters.
type Config struct {
	// BaseURL is the backend address, e.g. http://localhost:5000.
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is the root of the remote resource collections.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the backend at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base URL %q must use http or https", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: u, http: httpClient, logger: logger}, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Products returns the /api/products collection.
func (c *Client) Products() *Products {
	return &Products{Collection: newCollection[models.Product](c, "/api/products")}
}

// Categories returns the /api/categories collection.
func (c *Client) Categories() *Categories {
	return &Categories{Collection: newCollection[models.Category](c, "/api/categories")}
}

// Orders returns the /api/order collection.
func (c *Client) Orders() *Orders {
	return &Orders{Collection: newCollection[models.Order](c, "/api/order")}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// doJSON sends body (if non-nil) as JSON and decodes a 2xx response into out
// (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, reader, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return &Error{Method: method, Path: path, Message: GenericMessage, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &Error{Method: method, Path: path, Message: "Unable to reach the server.", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Message: GenericMessage, Err: err}
	}
	c.logger.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    failureMessage(data),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    "The server returned an unreadable response.",
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}

// failureMessage picks the backend's explanation out of an error body such as
// {"message": "...", "error": "..."}.
func failureMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return GenericMessage
}
