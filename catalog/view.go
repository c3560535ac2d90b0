package catalog

import (
	"nadir/models"
	"nadir/utils"
)

// Summary is the header block of the catalog: counts over the full
// listing, before any filter is applied.
type Summary struct {
	Total      int `json:"total"`
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
	OnOffer    int `json:"onOffer"`
	NotOnOffer int `json:"notOnOffer"`
}

// Page is one catalog page after filtering and pagination.
type Page struct {
	Products   []models.Product `json:"products"`
	Summary    Summary          `json:"summary"`
	PageNumber int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	Matched    int              `json:"matched"`
	StartIndex int              `json:"startIndex"`
	EndIndex   int              `json:"endIndex"`
}

// Filter applies search, availability and offer filters. Search matches
// name or description case-insensitively.
func Filter(products []models.Product, q utils.QueryOptions) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q.Search != "" &&
			!utils.ContainsIgnoreCase(p.Name, q.Search) &&
			!utils.ContainsIgnoreCase(p.Description, q.Search) {
			continue
		}
		if q.Availability == "available" && !p.Available {
			continue
		}
		if q.Availability == "unavailable" && p.Available {
			continue
		}
		if q.Offer == "onOffer" && !p.OnOffer {
			continue
		}
		if q.Offer == "notOnOffer" && p.OnOffer {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Summarize counts the full listing for the catalog header.
func Summarize(products []models.Product) Summary {
	s := Summary{Total: len(products)}
	for _, p := range products {
		if p.Available {
			s.InStock++
		} else {
			s.OutOfStock++
		}
		if p.OnOffer {
			s.OnOffer++
		} else {
			s.NotOnOffer++
		}
	}
	return s
}

// Build assembles one page of the catalog. Pages past the end come back
// empty rather than erroring, mirroring how the UI clamps page buttons.
func Build(products []models.Product, q utils.QueryOptions) Page {
	filtered := Filter(products, q)

	totalPages := (len(filtered) + q.Limit - 1) / q.Limit
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Products:   filtered[start:end],
		Summary:    Summarize(products),
		PageNumber: q.Page,
		PageSize:   q.Limit,
		TotalPages: totalPages,
		Matched:    len(filtered),
		StartIndex: start,
		EndIndex:   end,
	}
}
