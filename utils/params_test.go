package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/catalog", nil)

	q := ParseQueryOptions(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Equal(t, "all", q.Availability)
	assert.Equal(t, "all", q.Offer)
	assert.Empty(t, q.Search)
}

func TestParseQueryOptionsClampsAndValidates(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/catalog?page=-2&limit=0&availability=bogus&offer=onOffer&search=rice", nil)

	q := ParseQueryOptions(r)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Equal(t, "all", q.Availability)
	assert.Equal(t, "onOffer", q.Offer)
	assert.Equal(t, "rice", q.Search)
}
