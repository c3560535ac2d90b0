package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNormalizesTruthyEncodings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"p1","name":"Rice","price":100,"available":true,"onOffer":"true"},
			{"_id":"p2","name":"Flour","price":80,"available":"true","onOffer":1},
			{"_id":"p3","name":"Sugar","price":60,"available":1,"onOffer":false},
			{"_id":"p4","name":"Salt","available":"yes","onOffer":0}
		]`))
	}))
	defer srv.Close()

	products, err := NewClientWithBase(srv.URL, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.True(t, products[0].Available)
	assert.True(t, products[0].OnOffer)
	assert.True(t, products[1].Available)
	assert.True(t, products[1].OnOffer)
	assert.True(t, products[2].Available)
	assert.False(t, products[2].OnOffer)
	// anything outside true/"true"/1 normalizes to false
	assert.False(t, products[3].Available)
	assert.False(t, products[3].OnOffer)
}

func TestListCategoryFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id":"p1","name":"Rice","category":"Grains"},
			{"_id":"p2","name":"Flour","category":{"name":"Baking"}},
			{"_id":"p3","name":"Sugar"},
			{"_id":"p4","name":"Salt","category":null}
		]`))
	}))
	defer srv.Close()

	products, err := NewClientWithBase(srv.URL, nil).List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Grains", products[0].Category)
	assert.Equal(t, "Baking", products[1].Category)
	assert.Equal(t, "Uncategorized", products[2].Category)
	assert.Equal(t, "Uncategorized", products[3].Category)
}

func TestListMissingPriceStaysNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"p1","name":"Rice"},{"_id":"p2","name":"Flour","price":80}]`))
	}))
	defer srv.Close()

	products, err := NewClientWithBase(srv.URL, nil).List(context.Background())
	require.NoError(t, err)

	assert.Nil(t, products[0].Price)
	assert.Equal(t, 0.0, products[0].UnitPrice())
	require.NotNil(t, products[1].Price)
	assert.Equal(t, 80.0, *products[1].Price)
}

func TestGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClientWithBase(srv.URL, nil).Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUsesProductPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		w.Write([]byte(`{"_id":"p1","name":"Rice","available":true}`))
	}))
	defer srv.Close()

	product, err := NewClientWithBase(srv.URL, nil).Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ProductID)
	assert.True(t, product.Available)
}

func TestTransportErrorIsRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClientWithBase(srv.URL, nil)

	_, err := c.List(context.Background())
	assert.Error(t, err)
	_, err = c.Get(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClientWithBase(srv.URL, nil).List(context.Background())
	assert.Error(t, err)
}
