package router

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/storage/local"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps is everything the HTTP surface needs. Metrics may be nil.
type Deps struct {
	Auth       *handler.AuthHandler
	Products   *handler.ProductHandler
	Users      *handler.UserHandler
	Tokens     middleware.TokenParser
	Identity   middleware.UserAuthenticator
	Metrics    *metrics.MetricsManager
	UploadsDir string
	RateLimit  int // requests per minute per client IP, 0 disables
	TrustProxy bool // honour X-Forwarded-For / X-Real-IP from a fronting proxy
	Logger     *logger.Logger
}

// New builds the chi router and wraps it for tracing.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.NewRateLimiter(d.RateLimit, time.Minute).Middleware)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OLX API Running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if d.UploadsDir != "" {
		r.Handle(local.PublicPrefix+"/*", http.StripPrefix(local.PublicPrefix+"/", http.FileServer(http.Dir(d.UploadsDir))))
	}

	authenticate := middleware.Authenticate(d.Tokens, d.Identity, d.Logger)
	SetupAuthRoutes(r, d.Auth)
	SetupProductRoutes(r, d.Products, authenticate)
	SetupUserRoutes(r, d.Users, authenticate)

	return otelhttp.NewHandler(r, "marketplace-http",
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}
