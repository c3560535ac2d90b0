package directory

import (
	"encoding/json"
	"strings"

	"nadir/models"
)

// productPayload is a product as the upstream actually serializes it.
// Availability flags arrive as bool, "true", or 1 depending on how the
// record was written; category is either a name or an embedded object.
type productPayload struct {
	MongoID           string          `json:"_id"`
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             *float64        `json:"price"`
	Image             string          `json:"image"`
	Available         json.RawMessage `json:"available"`
	OnOffer           json.RawMessage `json:"onOffer"`
	Category          json.RawMessage `json:"category"`
	ManufacturingDate string          `json:"manufacturingDate"`
	ExpiryDate        string          `json:"expiryDate"`
}

func (p productPayload) normalize() models.Product {
	id := p.MongoID
	if id == "" {
		id = p.ID
	}

	price := p.Price
	if price != nil && *price < 0 {
		price = nil
	}

	return models.Product{
		ProductID:         id,
		Name:              p.Name,
		Description:       p.Description,
		Price:             price,
		Image:             p.Image,
		Available:         truthy(p.Available),
		OnOffer:           truthy(p.OnOffer),
		Category:          categoryName(p.Category),
		ManufacturingDate: p.ManufacturingDate,
		ExpiryDate:        p.ExpiryDate,
	}
}

// truthy accepts exactly the encodings the upstream emits for "yes":
// true, "true", and 1. Everything else, including absence, is false.
func truthy(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "true" || s == `"true"` || s == "1"
}

func categoryName(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "Uncategorized"
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil && name != "" {
		return name
	}

	var ref struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &ref); err == nil && ref.Name != "" {
		return ref.Name
	}
	return "Uncategorized"
}
