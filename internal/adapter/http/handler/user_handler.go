package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
)

type UserHandler struct {
	users UserService
	responder
}

func NewUserHandler(users UserService, m *metrics.MetricsManager, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, responder: responder{logger: log.Named("UserHandler"), metrics: m}}
}

type settingsRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "Me", err)
		return
	}
	profile, err := h.users.Me(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserResponse(profile)})
}

func (h *UserHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "UpdateSettings", err)
		return
	}
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "UpdateSettings", err)
		return
	}
	settings, err := h.users.UpdateSettings(r.Context(), userID, req.Phone, req.Address)
	if err != nil {
		h.fail(w, r, "UpdateSettings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"settings": toSettingsResponse(settings)})
}

// HandleUpdateAvatar takes a multipart "avatar" file. Without one the avatar is unchanged.
func (h *UserHandler) HandleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "UpdateAvatar", err)
		return
	}
	f, err := readForm(w, r, "avatar")
	if err != nil {
		h.fail(w, r, "UpdateAvatar", err)
		return
	}
	avatar, err := h.users.UpdateAvatar(r.Context(), userID, f.file)
	if err != nil {
		h.fail(w, r, "UpdateAvatar", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"avatar": avatar})
}

func (h *UserHandler) HandleLikedProducts(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "LikedProducts", err)
		return
	}
	products, err := h.users.LikedProducts(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "LikedProducts", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}
