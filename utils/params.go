package utils

import (
	"net/http"
	"strconv"
	"strings"
)

type QueryOptions struct {
	Page         int
	Limit        int
	Search       string
	Availability string // "all", "available", "unavailable"
	Offer        string // "all", "onOffer", "notOnOffer"
}

// ParseQueryOptions reads the catalog query parameters, falling back to the
// defaults the UI uses (page 1, 12 cards per page, no filters).
func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 12
	}

	availability := q.Get("availability")
	switch availability {
	case "available", "unavailable":
	default:
		availability = "all"
	}

	offer := q.Get("offer")
	switch offer {
	case "onOffer", "notOnOffer":
	default:
		offer = "all"
	}

	return QueryOptions{
		Page:         page,
		Limit:        limit,
		Search:       q.Get("search"),
		Availability: availability,
		Offer:        offer,
	}
}

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
