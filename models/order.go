package models

// OrderClient is the shipping record collected at checkout.
type OrderClient struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

// OrderLine is one purchased product inside an order payload.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is the one-shot payload submitted to the order API. It is
// assembled from cart contents at checkout and discarded after submission.
type Order struct {
	Client        OrderClient `json:"client"`
	Products      []OrderLine `json:"products"`
	TotalPrice    float64     `json:"totalPrice"`
	PaymentMethod string      `json:"paymentMethod"`
}

// CheckoutRequest is what the checkout form posts to this service.
type CheckoutRequest struct {
	Name          string `json:"name"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Contact       string `json:"contact"`
	PaymentMethod string `json:"paymentMethod"`
}
