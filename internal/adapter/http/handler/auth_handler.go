package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
)

type AuthHandler struct {
	auth AuthService
	responder
}

func NewAuthHandler(auth AuthService, m *metrics.MetricsManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, responder: responder{logger: log.Named("AuthHandler"), metrics: m}}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Register", err)
		return
	}
	res, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "Register", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Login", err)
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}
