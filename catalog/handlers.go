package catalog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"nadir/directory"
	"nadir/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the catalog read surface. It holds no state of its own;
// everything is a transformation over what the directory returns.
type Handlers struct {
	Dir *directory.Client
}

func NewHandlers(dir *directory.Client) *Handlers {
	return &Handlers{Dir: dir}
}

// GetCatalog returns one filtered, paginated catalog page.
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := h.Dir.List(ctx)
	if err != nil {
		log.Println("GetCatalog list error:", err)
		utils.RespondWithMessage(w, http.StatusBadGateway, "Failed to load products. Please try again.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Build(products, utils.ParseQueryOptions(r)))
}

// GetProduct returns a single product, distinguishing "not found" from
// upstream transport failure so the UI can render the right state.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	product, err := h.Dir.Get(ctx, ps.ByName("productid"))
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			utils.RespondWithMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Println("GetProduct error:", err)
		utils.RespondWithMessage(w, http.StatusBadGateway, "Failed to load product details. Please try again.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}
