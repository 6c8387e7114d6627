package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const msgServerError = "Server error"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// statusFor maps a domain error kind to its HTTP status and error_type label.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, "storage"
	case errors.Is(err, domain.ErrRepository):
		return http.StatusInternalServerError, "repository"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// responder is embedded by every handler for uniform error replies.
type responder struct {
	logger  *logger.Logger
	metrics *metrics.MetricsManager
}

// fail writes err as {"msg": ...}. Only domain.Error messages reach the client.
func (rs responder) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, errType := statusFor(err)
	rs.metrics.RecordError(r.Method, errType)

	if status == http.StatusInternalServerError {
		rs.logger.Error(op+" failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err))
		writeMsg(w, status, msgServerError)
		return
	}

	msg := http.StatusText(status)
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Msg
	}
	rs.logger.Debug(op+" rejected", zap.Int("status", status), zap.String("msg", msg))
	writeMsg(w, status, msg)
}
