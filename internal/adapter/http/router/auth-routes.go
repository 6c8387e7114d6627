package router

import (
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/handler"
	"github.com/go-chi/chi/v5"
)

func SetupAuthRoutes(mux chi.Router, h *handler.AuthHandler) {
	mux.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
	})
}
