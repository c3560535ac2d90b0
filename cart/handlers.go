package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"nadir/directory"
	"nadir/middleware"
	"nadir/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers exposes the cart store over HTTP. The registry is the only
// writer of cart state; handlers translate requests into store calls.
type Handlers struct {
	Registry *Registry
	Dir      *directory.Client
}

func NewHandlers(registry *Registry, dir *directory.Client) *Handlers {
	return &Handlers{Registry: registry, Dir: dir}
}

type addPayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updatePayload struct {
	Quantity int `json:"quantity"`
}

// AddToCart fetches the product snapshot from the directory and adds it to
// the session's cart. Unavailable products are refused here; the store
// itself never checks stock.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload addPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if payload.Quantity < 1 {
		payload.Quantity = 1
	}

	product, err := h.Dir.Get(ctx, payload.ProductID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Println("AddToCart directory error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to load product")
		return
	}
	if !product.Available {
		utils.RespondWithError(w, http.StatusConflict, "Product is out of stock")
		return
	}

	store := h.Registry.Get(middleware.SessionID(r))
	store.Add(product, payload.Quantity)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status": "added",
		"cart":   store.View(),
	})
}

// GetCart returns the session's lines plus all derived totals.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store := h.Registry.Get(middleware.SessionID(r))
	utils.RespondWithJSON(w, http.StatusOK, store.View())
}

// UpdateCartItem sets a line's quantity exactly; below 1 removes the line.
func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateCartItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	store := h.Registry.Get(middleware.SessionID(r))
	store.UpdateQuantity(ps.ByName("productid"), payload.Quantity)

	utils.RespondWithJSON(w, http.StatusOK, store.View())
}

// RemoveCartItem deletes the line if present; absent lines are a no-op.
func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store := h.Registry.Get(middleware.SessionID(r))
	store.Remove(ps.ByName("productid"))

	utils.RespondWithJSON(w, http.StatusOK, store.View())
}

// ClearCart empties the session's cart unconditionally.
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store := h.Registry.Get(middleware.SessionID(r))
	store.Clear()

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "cleared"})
}
