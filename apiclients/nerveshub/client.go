package nerveshub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
)

// DefaultBaseURL is the production NervesHub API endpoint.
const DefaultBaseURL = "https://api.nerves-hub.org"

// Client is a wrapper for making authenticated calls to the NervesHub API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *slog.Logger
}

// NewClient creates a new NervesHub API client for the given user token.
// If no httpClient is provided http.DefaultClient is used; if no baseURL
// is provided DefaultBaseURL is used.
func NewClient(
	token string,
	baseURL string,
	httpClient *http.Client,
	logger *slog.Logger,
) *Client {

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// Logger setup.
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelWarn},
		))
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      token,
		log:        logger,
	}
}

// ListProducts fetches the products belonging to org, in the order the
// server returns them.
func (c *Client) ListProducts(ctx context.Context, org string) ([]Product, error) {
	requestURL := fmt.Sprintf("%s/orgs/%s/products", c.baseURL, url.PathEscape(org))

	c.log.Debug(fmt.Sprintf("ListProducts request %v", requestURL))

	req, err := c.newRequest(ctx, "GET", requestURL, nil)
	if err != nil {
		c.log.Error(fmt.Sprintf("ListProducts: request error: %v", err))
		return nil, err
	}

	var response productsResponse
	if err := do(c, req, &response); err != nil {
		c.log.Error(fmt.Sprintf("ListProducts: failed to execute request: %v", err))
		return nil, err
	}

	c.log.Info(fmt.Sprintf("ListProducts: retrieved %d products", len(response.Data)))
	return response.Data, nil
}

// CreateProduct creates a new product named name under org, returning the
// server's representation of the created record.
func (c *Client) CreateProduct(ctx context.Context, org, name string) (Product, error) {
	requestURL := fmt.Sprintf("%s/orgs/%s/products", c.baseURL, url.PathEscape(org))

	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return Product{}, fmt.Errorf("failed to marshal create payload: %w", err)
	}

	c.log.Debug(fmt.Sprintf("CreateProduct request %v", requestURL))

	req, err := c.newRequest(ctx, "POST", requestURL, body)
	if err != nil {
		c.log.Error(fmt.Sprintf("CreateProduct: request error: %v", err))
		return Product{}, err
	}

	var response productResponse
	if err := do(c, req, &response); err != nil {
		c.log.Error(fmt.Sprintf("CreateProduct: failed to execute request: %v", err))
		return Product{}, err
	}

	c.log.Info(fmt.Sprintf("CreateProduct: created %q", response.Data.Name))
	return response.Data, nil
}

// DeleteProduct deletes the named product under org. A successful delete
// has an empty response body.
func (c *Client) DeleteProduct(ctx context.Context, org, name string) error {
	requestURL := fmt.Sprintf("%s/orgs/%s/products/%s",
		c.baseURL, url.PathEscape(org), url.PathEscape(name))

	c.log.Debug(fmt.Sprintf("DeleteProduct request %v", requestURL))

	req, err := c.newRequest(ctx, "DELETE", requestURL, nil)
	if err != nil {
		c.log.Error(fmt.Sprintf("DeleteProduct: request error: %v", err))
		return err
	}

	if err := do[struct{}](c, req, nil); err != nil {
		c.log.Error(fmt.Sprintf("DeleteProduct: failed to execute request: %v", err))
		return err
	}

	c.log.Info(fmt.Sprintf("DeleteProduct: deleted %q", name))
	return nil
}

// UpdateProduct applies the given field values to the named product under
// org and returns the server's post-update representation of the record.
func (c *Client) UpdateProduct(ctx context.Context, org, name string, fields map[string]string) (Product, error) {
	requestURL := fmt.Sprintf("%s/orgs/%s/products/%s",
		c.baseURL, url.PathEscape(org), url.PathEscape(name))

	body, err := json.Marshal(map[string]map[string]string{"product": fields})
	if err != nil {
		return Product{}, fmt.Errorf("failed to marshal update payload: %w", err)
	}

	c.log.Debug(fmt.Sprintf("UpdateProduct request %v", requestURL))

	req, err := c.newRequest(ctx, "PUT", requestURL, body)
	if err != nil {
		c.log.Error(fmt.Sprintf("UpdateProduct: request error: %v", err))
		return Product{}, err
	}

	var response productResponse
	if err := do(c, req, &response); err != nil {
		c.log.Error(fmt.Sprintf("UpdateProduct: failed to execute request: %v", err))
		return Product{}, err
	}

	c.log.Info(fmt.Sprintf("UpdateProduct: updated %q", name))
	return response.Data, nil
}

// newRequest is a helper to create a new HTTP request with common headers.
func (c *Client) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do is a helper to execute an HTTP request and decode the JSON response.
// A nil `v` is supported for API calls not providing a response body, such
// as DELETE calls. Non-success statuses are returned as an *APIError.
func do[T any](c *Client, req *http.Request, v *T) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return newAPIError(resp.StatusCode, body)
	}

	if v != nil { // v is nil for a DELETE request, for example.
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
