package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"nadir/cart"
	"nadir/middleware"
	"nadir/models"
	"nadir/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// orderKeyNamespace seeds deterministic idempotency keys: the same session
// resubmitting the same payload produces the same key, so a retry after a
// timeout lands on the upstream as a replay rather than a second order.
var orderKeyNamespace = uuid.MustParse("8a9d5a6e-31c2-4c6b-9a7e-5b3f22d90b41")

// Handlers runs the checkout flow: validate the customer record, assemble
// the order from the cart, submit it, and clear the cart only on success.
type Handlers struct {
	Registry *cart.Registry
	Orders   *OrderAPI
}

func NewHandlers(registry *cart.Registry, orders *OrderAPI) *Handlers {
	return &Handlers{Registry: registry, Orders: orders}
}

// SubmitOrder posts the session's cart as a single order. On rejection the
// cart is left untouched and the server's message is surfaced so the form
// can be resubmitted.
func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var form models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Println("SubmitOrder decode error:", err)
		utils.RespondWithMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if field, ok := missingField(form); ok {
		utils.RespondWithMessage(w, http.StatusBadRequest, field+" is required")
		return
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = "COD"
	}

	store := h.Registry.Get(middleware.SessionID(r))
	lines := store.Lines()
	if len(lines) == 0 {
		utils.RespondWithMessage(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	order := buildOrder(form, lines, store.TotalPrice())
	key := idempotencyKey(middleware.SessionID(r), order)

	if err := h.Orders.Submit(ctx, order, key); err != nil {
		var rejection *SubmitError
		if errors.As(err, &rejection) {
			log.Println("SubmitOrder rejected:", rejection.Message)
			utils.RespondWithMessage(w, rejection.Status, rejection.Message)
			return
		}
		log.Println("SubmitOrder transport error:", err)
		utils.RespondWithMessage(w, http.StatusBadGateway, "Failed to submit order. Please try again.")
		return
	}

	store.Clear()
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":     "confirmed",
		"totalPrice": order.TotalPrice,
	})
}

func missingField(form models.CheckoutRequest) (string, bool) {
	switch {
	case form.Name == "":
		return "name", true
	case form.City == "":
		return "city", true
	case form.Address == "":
		return "address", true
	case form.Contact == "":
		return "contact", true
	}
	return "", false
}

func buildOrder(form models.CheckoutRequest, lines []models.CartLine, totalPrice float64) models.Order {
	products := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		products = append(products, models.OrderLine{
			ProductID: l.Product.ProductID,
			Name:      l.Product.Name,
			Price:     l.Product.UnitPrice(),
			Quantity:  l.Quantity,
		})
	}
	return models.Order{
		Client: models.OrderClient{
			Name:    form.Name,
			City:    form.City,
			Address: form.Address,
			Contact: form.Contact,
		},
		Products:      products,
		TotalPrice:    totalPrice,
		PaymentMethod: form.PaymentMethod,
	}
}

func idempotencyKey(sessionID string, order models.Order) string {
	payload, _ := json.Marshal(order)
	return uuid.NewSHA1(orderKeyNamespace, append([]byte(sessionID+":"), payload...)).String()
}
