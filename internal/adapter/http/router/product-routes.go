package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/handler"
	"github.com/go-chi/chi/v5"
)

// SetupProductRoutes mounts listings plus likes and comments. "mine" and
// "seller" are static segments, so chi matches them before {id}.
func SetupProductRoutes(mux chi.Router, h *handler.ProductHandler, authenticate func(http.Handler) http.Handler) {
	mux.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.HandleListProducts)
		r.Get("/seller/{sellerId}", h.HandleListBySeller)
		r.Get("/{id}", h.HandleGetProduct)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/mine", h.HandleListMine)
			r.Post("/", h.HandleCreateProduct)
			r.Put("/{id}", h.HandleUpdateProduct)
			r.Delete("/{id}", h.HandleDeleteProduct)
			r.Patch("/{id}/sold", h.HandleToggleSold)
			r.Post("/{id}/like", h.HandleToggleLike)
			r.Post("/{id}/comments", h.HandleAddComment)
			r.Post("/{id}/comments/{commentId}/reply", h.HandleAddReply)
		})
	})
}
