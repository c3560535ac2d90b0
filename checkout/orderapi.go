package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"nadir/models"
)

const defaultOrdersURL = "https://nbbackend-production.up.railway.app/api"

// SubmitError is a rejection from the order API, carrying the status and
// the human-readable message the server returned.
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("order rejected (%d): %s", e.Status, e.Message)
}

// OrderAPI posts finalized orders to the remote order-submission service.
type OrderAPI struct {
	baseURL string
	http    *http.Client
}

// NewOrderAPI picks the base URL from ORDERS_API_URL with a hardcoded
// fallback.
func NewOrderAPI() *OrderAPI {
	baseURL := os.Getenv("ORDERS_API_URL")
	if baseURL == "" {
		baseURL = defaultOrdersURL
	}
	return &OrderAPI{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewOrderAPIWithBase is used by tests to point at a local server.
func NewOrderAPIWithBase(baseURL string) *OrderAPI {
	return &OrderAPI{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit sends the order exactly once per call, tagged with the caller's
// idempotency key so a retry after a timeout cannot create a duplicate.
// A non-2xx response decodes into *SubmitError.
func (a *OrderAPI) Submit(ctx context.Context, order models.Order, idempotencyKey string) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("order encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("order request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var rejection struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil || rejection.Message == "" {
		rejection.Message = "Failed to submit order. Please try again."
	}
	return &SubmitError{Status: resp.StatusCode, Message: rejection.Message}
}
