package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nadir/cart"
	"nadir/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedOrder struct {
	Order models.Order
	Key   string
}

// fakeOrderAPI records submissions and answers with a scripted status.
func fakeOrderAPI(t *testing.T, status int, body string, captured *[]capturedOrder) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		var order models.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		*captured = append(*captured, capturedOrder{Order: order, Key: r.Header.Get("Idempotency-Key")})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func seededRegistry(sessionID string) *cart.Registry {
	registry := cart.NewRegistry(nil)
	store := registry.Get(sessionID)
	price := 50.0
	store.Add(models.Product{ProductID: "A", Name: "Rice", Price: &price, Available: true}, 2)
	store.Add(models.Product{ProductID: "B", Name: "Salt", Available: true}, 1)
	return registry
}

func submit(h *Handlers, sessionID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	w := httptest.NewRecorder()
	h.SubmitOrder(w, req, nil)
	return w
}

const validForm = `{"name":"Ali","city":"Lahore","address":"12 Mall Rd","contact":"0300-1234567","paymentMethod":"Online"}`

func TestSubmitOrderSuccessClearsCart(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusCreated, `{"status":"ok"}`, &captured)
	defer srv.Close()

	registry := seededRegistry("s1")
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	w := submit(h, "s1", validForm)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, captured, 1)

	got := captured[0].Order
	assert.Equal(t, "Ali", got.Client.Name)
	assert.Equal(t, "Lahore", got.Client.City)
	assert.Equal(t, "Online", got.PaymentMethod)
	require.Len(t, got.Products, 2)
	assert.Equal(t, models.OrderLine{ProductID: "A", Name: "Rice", Price: 50, Quantity: 2}, got.Products[0])
	assert.Equal(t, models.OrderLine{ProductID: "B", Name: "Salt", Price: 0, Quantity: 1}, got.Products[1])
	assert.Equal(t, 100.0, got.TotalPrice)
	assert.NotEmpty(t, captured[0].Key)

	// cart cleared only on confirmed success
	assert.Equal(t, 0, registry.Get("s1").TotalItems())
}

func TestSubmitOrderRejectionKeepsCartAndSurfacesMessage(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusUnprocessableEntity, `{"message":"Sugar is no longer available"}`, &captured)
	defer srv.Close()

	registry := seededRegistry("s1")
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	w := submit(h, "s1", validForm)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Sugar is no longer available")
	assert.Equal(t, 3, registry.Get("s1").TotalItems())
}

func TestSubmitOrderTransportFailureKeepsCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	registry := seededRegistry("s1")
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	w := submit(h, "s1", validForm)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to submit order")
	assert.Equal(t, 3, registry.Get("s1").TotalItems())
}

func TestSubmitOrderIdempotencyKeyStableAcrossResubmission(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusServiceUnavailable, `{"message":"busy"}`, &captured)
	defer srv.Close()

	registry := seededRegistry("s1")
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	submit(h, "s1", validForm)
	submit(h, "s1", validForm)

	require.Len(t, captured, 2)
	assert.Equal(t, captured[0].Key, captured[1].Key)
}

func TestSubmitOrderKeyDiffersAcrossSessions(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusCreated, `{}`, &captured)
	defer srv.Close()

	registry := cart.NewRegistry(nil)
	defer registry.Stop()
	price := 50.0
	for _, sid := range []string{"s1", "s2"} {
		registry.Get(sid).Add(models.Product{ProductID: "A", Name: "Rice", Price: &price, Available: true}, 1)
	}
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	submit(h, "s1", validForm)
	submit(h, "s2", validForm)

	require.Len(t, captured, 2)
	assert.NotEqual(t, captured[0].Key, captured[1].Key)
}

func TestSubmitOrderValidatesRequiredFields(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusCreated, `{}`, &captured)
	defer srv.Close()

	registry := seededRegistry("s1")
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	w := submit(h, "s1", `{"name":"Ali","address":"12 Mall Rd","contact":"0300-1234567"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "city is required")
	assert.Empty(t, captured)
	assert.Equal(t, 3, registry.Get("s1").TotalItems())
}

func TestSubmitOrderEmptyCartRejected(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusCreated, `{}`, &captured)
	defer srv.Close()

	registry := cart.NewRegistry(nil)
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	w := submit(h, "s1", validForm)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
	assert.Empty(t, captured)
}

func TestSubmitOrderDefaultsPaymentMethod(t *testing.T) {
	var captured []capturedOrder
	srv := fakeOrderAPI(t, http.StatusCreated, `{}`, &captured)
	defer srv.Close()

	registry := seededRegistry("s1")
	defer registry.Stop()
	h := NewHandlers(registry, NewOrderAPIWithBase(srv.URL))

	submit(h, "s1", `{"name":"Ali","city":"Lahore","address":"12 Mall Rd","contact":"0300-1234567"}`)

	require.Len(t, captured, 1)
	assert.Equal(t, "COD", captured[0].Order.PaymentMethod)
}
