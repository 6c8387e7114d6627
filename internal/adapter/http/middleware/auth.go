package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.uber.org/zap"
)

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

type TokenParser interface {
	Parse(token string) (string, error)
}

type UserAuthenticator interface {
	Authenticate(ctx context.Context, userID string) (*domain.User, error)
}

// Authenticate resolves "Authorization: Bearer <jwt>" to a user. Every failure is a 401.
func Authenticate(tokens TokenParser, users UserAuthenticator, log *logger.Logger) func(http.Handler) http.Handler {
	l := log.Named("AuthMiddleware")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeMsg(w, http.StatusUnauthorized, msgNoToken)
				return
			}
			scheme, raw, ok := strings.Cut(header, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				writeMsg(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				l.Debug("Rejected token", zap.String("path", r.URL.Path), zap.Error(err))
				writeMsg(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}
			user, err := users.Authenticate(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					l.Error("Failed to load user for token", zap.String("user_id", userID), zap.Error(err))
				}
				writeMsg(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
