package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProducts implements only what these tests reach; other methods panic.
type stubProducts struct {
	handler.ProductService
	ownedFor string
}

func (s *stubProducts) ListOwned(_ context.Context, f domain.OwnedFilter) (*usecase.OwnedProducts, error) {
	s.ownedFor = f.SellerID
	return &usecase.OwnedProducts{Products: []*domain.Product{}}, nil
}

func (s *stubProducts) ListBySeller(context.Context, string) ([]*domain.Product, error) {
	return []*domain.Product{}, nil
}

type stubIdentity struct{}

func (stubIdentity) Authenticate(_ context.Context, id string) (*domain.User, error) {
	if id != "u1" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: id}, nil
}

type testServer struct {
	handler  http.Handler
	products *stubProducts
	tokens   *token.Manager
}

func newTestServer(t *testing.T, rateLimit int, uploadsDir string) testServer {
	return newTestServerWith(t, rateLimit, uploadsDir, false)
}

func newTestServerWith(t *testing.T, rateLimit int, uploadsDir string, trustProxy bool) testServer {
	t.Helper()
	log := logger.NewNop()
	products := &stubProducts{}
	tokens := token.NewManager("router-secret", time.Hour)
	h := New(Deps{
		Auth:       handler.NewAuthHandler(nil, nil, log),
		Products:   handler.NewProductHandler(products, nil, nil, log),
		Users:      handler.NewUserHandler(nil, nil, log),
		Tokens:     tokens,
		Identity:   stubIdentity{},
		UploadsDir: uploadsDir,
		RateLimit:  rateLimit,
		TrustProxy: trustProxy,
		Logger:     log,
	})
	return testServer{handler: h, products: products, tokens: tokens}
}

func (s testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ServiceRoutes(t *testing.T) {
	s := newTestServer(t, 0, "")

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OLX API Running", rec.Body.String())

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, 0, "")
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/products/mine"},
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/p1"},
		{http.MethodDelete, "/api/products/p1"},
		{http.MethodPatch, "/api/products/p1/sold"},
		{http.MethodPost, "/api/products/p1/like"},
		{http.MethodPost, "/api/products/p1/comments"},
		{http.MethodPost, "/api/products/p1/comments/c1/reply"},
		{http.MethodGet, "/api/user/me"},
		{http.MethodPut, "/api/user/settings"},
		{http.MethodPut, "/api/user/avatar"},
		{http.MethodGet, "/api/user/liked-products"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := s.serve(httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"msg":"No token, authorization denied"}`, rec.Body.String())
		})
	}
}

func TestRouter_MineResolvesBeforeID(t *testing.T) {
	s := newTestServer(t, 0, "")
	tok, err := s.tokens.Generate("u1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/products/mine", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := s.serve(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[],"total":0}`, rec.Body.String())
	assert.Equal(t, "u1", s.products.ownedFor)
}

func TestRouter_TokenForDeletedUser(t *testing.T) {
	s := newTestServer(t, 0, "")
	tok, err := s.tokens.Generate("ghost")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/products/mine", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := s.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"msg":"Token is not valid"}`, rec.Body.String())
}

func TestRouter_ServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1700000000000-bike.png"), []byte("pngdata"), 0o644))
	s := newTestServer(t, 0, dir)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/uploads/1700000000000-bike.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pngdata", rec.Body.String())

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	s := newTestServer(t, 2, "")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products/seller/s1", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		codes = append(codes, s.serve(req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_RateLimitIgnoresForwardedHeadersByDefault(t *testing.T) {
	s := newTestServer(t, 2, "")

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/products/seller/s1", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		codes = append(codes, s.serve(req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_RateLimitUsesForwardedAddressBehindProxy(t *testing.T) {
	s := newTestServerWith(t, 1, "", true)

	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/products/seller/s1", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Real-IP", forwarded)
		codes = append(codes, s.serve(req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t, 0, "")
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := s.serve(req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
