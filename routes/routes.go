package routes

import (
	"nadir/cart"
	"nadir/cartstream"
	"nadir/catalog"
	"nadir/checkout"
	"nadir/middleware"
	"nadir/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddCatalogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *catalog.Handlers) {
	router.GET("/api/catalog", rl.Limit(h.GetCatalog))
	router.GET("/api/catalog/:productid", rl.Limit(h.GetProduct))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *cart.Handlers) {
	router.GET("/api/cart", middleware.Session(h.GetCart))
	router.POST("/api/cart", rl.Limit(middleware.Session(h.AddToCart)))
	router.PUT("/api/cart/:productid", rl.Limit(middleware.Session(h.UpdateCartItem)))
	router.DELETE("/api/cart/:productid", rl.Limit(middleware.Session(h.RemoveCartItem)))
	router.DELETE("/api/cart", rl.Limit(middleware.Session(h.ClearCart)))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *checkout.Handlers) {
	router.POST("/api/checkout", rl.Limit(middleware.Session(h.SubmitOrder)))
}

func AddStreamRoutes(router *httprouter.Router, hub *cartstream.Hub) {
	router.GET("/ws/cart", middleware.Session(cartstream.WebSocketHandler(hub)))
}
