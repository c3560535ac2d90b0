package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"nadir/models"
)

// ErrNotFound reports a product id the directory does not know.
var ErrNotFound = errors.New("product not found")

const defaultBaseURL = "https://nbbackend-production.up.railway.app/api"

// Client reads products from the remote directory API. All boundary
// normalization (truthy flags, category fallback) happens here, so the
// rest of the service only ever sees clean models.Product values.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
}

// NewClient picks the base URL from DIRECTORY_API_URL with a hardcoded
// fallback. cache may be nil.
func NewClient(cache *Cache) *Client {
	baseURL := os.Getenv("DIRECTORY_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}
}

// NewClientWithBase is used by tests to point the client at a local server.
func NewClientWithBase(baseURL string, cache *Cache) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}
}

// List fetches the full product listing, serving from cache when a fresh
// copy is available.
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	if c.cache != nil {
		if products, ok := c.cache.GetListing(ctx); ok {
			return products, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory responded %d", resp.StatusCode)
	}

	var payloads []productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("directory decode: %w", err)
	}

	products := make([]models.Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.normalize())
	}

	if c.cache != nil {
		c.cache.SetListing(ctx, products)
	}
	return products, nil
}

// Get fetches a single product. A 404 from the directory maps to
// ErrNotFound; transport failures come back wrapped and retryable.
func (c *Client) Get(ctx context.Context, id string) (models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+id, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("directory request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return models.Product{}, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.Product{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return models.Product{}, fmt.Errorf("directory responded %d", resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Product{}, fmt.Errorf("directory decode: %w", err)
	}
	return payload.normalize(), nil
}
