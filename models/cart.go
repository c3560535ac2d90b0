package models

import "time"

// CartLine pairs a product snapshot with a quantity. A cart holds at most
// one line per product id; quantity is always >= 1.
type CartLine struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// LineTotal is unit price times quantity, with unpriced products counting 0.
func (l CartLine) LineTotal() float64 {
	return l.Product.UnitPrice() * float64(l.Quantity)
}

// CartView is the cart as served to the UI: lines in insertion order plus
// the derived aggregates.
type CartView struct {
	Lines         []CartLine `json:"lines"`
	TotalItems    int        `json:"totalItems"`
	TotalProducts int        `json:"totalProducts"`
	TotalPrice    float64    `json:"totalPrice"`
}
