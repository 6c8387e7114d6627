package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
)

// ProductHandler serves listings and the engagement routes nested under them.
type ProductHandler struct {
	products   ProductService
	engagement EngagementService
	responder
}

func NewProductHandler(products ProductService, engagement EngagementService, m *metrics.MetricsManager, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products:   products,
		engagement: engagement,
		responder:  responder{logger: log.Named("ProductHandler"), metrics: m},
	}
}

type commentRequest struct {
	Text string `json:"text"`
}

func parsePriceBound(q string) (*float64, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	v, err := parseFinite(q)
	if err != nil {
		return nil, domain.InvalidInput("Invalid price filter")
	}
	return &v, nil
}

// HandleListProducts serves GET /products?sortBy&order&category&min&max&search.
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		Ascending: strings.EqualFold(q.Get("order"), "asc"),
	}
	var err error
	if filter.MinPrice, err = parsePriceBound(q.Get("min")); err != nil {
		h.fail(w, r, "ListProducts", err)
		return
	}
	if filter.MaxPrice, err = parsePriceBound(q.Get("max")); err != nil {
		h.fail(w, r, "ListProducts", err)
		return
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "ListProducts", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}

// HandleListMine serves GET /products/mine?search&page&limit. Bad numbers fall back to defaults.
func (h *ProductHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "ListMine", err)
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	owned, err := h.products.ListOwned(r.Context(), domain.OwnedFilter{
		SellerID: userID,
		Search:   q.Get("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.fail(w, r, "ListMine", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": toProductList(owned.Products),
		"total":    owned.Total,
	})
}

func (h *ProductHandler) HandleListBySeller(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListBySeller(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		h.fail(w, r, "ListBySeller", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "GetProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDetail(detail))
}

func (h *ProductHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "CreateProduct", err)
		return
	}
	f, err := readForm(w, r, "image")
	if err != nil {
		h.fail(w, r, "CreateProduct", err)
		return
	}
	price, err := f.price()
	if err != nil {
		h.fail(w, r, "CreateProduct", err)
		return
	}
	title, _ := f.get("title")
	description, _ := f.get("description")
	category, _ := f.get("category")

	p, err := h.products.Create(r.Context(), usecase.CreateProductInput{
		SellerID:    userID,
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Image:       f.file,
	})
	if err != nil {
		h.fail(w, r, "CreateProduct", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "UpdateProduct", err)
		return
	}
	f, err := readForm(w, r, "image")
	if err != nil {
		h.fail(w, r, "UpdateProduct", err)
		return
	}
	price, err := f.price()
	if err != nil {
		h.fail(w, r, "UpdateProduct", err)
		return
	}

	p, err := h.products.Update(r.Context(), usecase.UpdateProductInput{
		ID:          chi.URLParam(r, "id"),
		CallerID:    userID,
		Title:       f.optional("title"),
		Description: f.optional("description"),
		Price:       price,
		Category:    f.optional("category"),
		Image:       f.file,
	})
	if err != nil {
		h.fail(w, r, "UpdateProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "DeleteProduct", err)
		return
	}
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.fail(w, r, "DeleteProduct", err)
		return
	}
	writeMsg(w, http.StatusOK, "Product deleted")
}

func (h *ProductHandler) HandleToggleSold(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "ToggleSold", err)
		return
	}
	sold, err := h.products.ToggleSold(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.fail(w, r, "ToggleSold", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sold": sold})
}

func (h *ProductHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "ToggleLike", err)
		return
	}
	res, err := h.engagement.ToggleLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.fail(w, r, "ToggleLike", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"liked": res.Liked, "likesCount": res.LikesCount})
}

func (h *ProductHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "AddComment", err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "AddComment", err)
		return
	}
	c, err := h.engagement.AddComment(r.Context(), chi.URLParam(r, "id"), userID, req.Text)
	if err != nil {
		h.fail(w, r, "AddComment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

func (h *ProductHandler) HandleAddReply(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.fail(w, r, "AddReply", err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "AddReply", err)
		return
	}
	c, err := h.engagement.AddReply(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), userID, req.Text)
	if err != nil {
		h.fail(w, r, "AddReply", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}
