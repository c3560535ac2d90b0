package models

// Product is a catalog entry as the directory serves it, after boundary
// normalization: availability flags are strict booleans and category is a
// plain name. Price is nil for contact-for-price items.
type Product struct {
	ProductID         string   `json:"productId"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	Image             string   `json:"image,omitempty"`
	Available         bool     `json:"available"`
	OnOffer           bool     `json:"onOffer"`
	Category          string   `json:"category"`
	ManufacturingDate string   `json:"manufacturingDate,omitempty"`
	ExpiryDate        string   `json:"expiryDate,omitempty"`
}

// UnitPrice returns the price to charge per unit, 0 when unpriced.
func (p Product) UnitPrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
