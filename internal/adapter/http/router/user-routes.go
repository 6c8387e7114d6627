package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/handler"
	"github.com/go-chi/chi/v5"
)

// SetupUserRoutes mounts the account routes. All of them require a token.
func SetupUserRoutes(mux chi.Router, h *handler.UserHandler, authenticate func(http.Handler) http.Handler) {
	mux.Route("/api/user", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", h.HandleMe)
		r.Put("/settings", h.HandleUpdateSettings)
		r.Put("/avatar", h.HandleUpdateAvatar)
		r.Get("/liked-products", h.HandleLikedProducts)
	})
}
