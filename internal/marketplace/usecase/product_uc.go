package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	"go.uber.org/zap"
)

type CreateProductInput struct {
	SellerID    string
	Title       string
	Description string
	Price       *float64
	Category    string
	Image       *Upload
}

type UpdateProductInput struct {
	ID          string
	CallerID    string
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Image       *Upload
}

type OwnedProducts struct {
	Products []*domain.Product
	Total    int64
}

type ProductUsecase struct {
	products domain.ProductRepository
	comments domain.CommentRepository
	users    domain.UserRepository
	images   *MediaUsecase
	cache    productCache
	events   eventBus
	notifier domain.ListingNotifier
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
}

// ProductDeps groups the optional collaborators. Nil fields disable the feature.
type ProductDeps struct {
	Cache     domain.CacheRepository
	Publisher domain.EventPublisher
	Notifier  domain.ListingNotifier
	Metrics   *metrics.MetricsManager
}

func NewProductUsecase(
	products domain.ProductRepository,
	comments domain.CommentRepository,
	users domain.UserRepository,
	images *MediaUsecase,
	deps ProductDeps,
	log *logger.Logger,
) *ProductUsecase {
	l := log.Named("ProductUsecase")
	return &ProductUsecase{
		products: products,
		comments: comments,
		users:    users,
		images:   images,
		cache:    productCache{repo: deps.Cache, logger: l},
		events:   eventBus{publisher: deps.Publisher, logger: l},
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		logger:   l,
	}
}

// loadOwned fetches a listing and checks that callerID is its seller.
func (uc *ProductUsecase) loadOwned(ctx context.Context, id, callerID string) (*domain.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(callerID) {
		uc.logger.Warn("Non-owner tried to mutate product", zap.String("product_id", id), zap.String("caller_id", callerID))
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

// checkPrice rejects NaN and infinities, which JSON cannot encode, and negatives.
func checkPrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.InvalidInput("Price must be a number")
	}
	if v < 0 {
		return domain.InvalidInput("Price must not be negative")
	}
	return nil
}

// List returns unsold listings matching filter, each with its seller summary.
func (uc *ProductUsecase) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductUsecase.List")
	defer span.End()

	filter.Normalize()
	for _, bound := range []*float64{filter.MinPrice, filter.MaxPrice} {
		if bound != nil && (math.IsNaN(*bound) || math.IsInf(*bound, 0)) {
			return nil, domain.InvalidInput("Invalid price filter")
		}
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return []*domain.Product{}, nil
	}
	products, err := uc.products.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("ProductUsecase.List: %w", err)
	}
	if err := attachSellers(ctx, uc.users, products); err != nil {
		return nil, fmt.Errorf("ProductUsecase.List: %w", err)
	}
	return products, nil
}

func (uc *ProductUsecase) ListOwned(ctx context.Context, filter domain.OwnedFilter) (*OwnedProducts, error) {
	filter.Normalize()
	products, total, err := uc.products.ListOwned(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list owned products", zap.String("seller_id", filter.SellerID), zap.Error(err))
		return nil, fmt.Errorf("ProductUsecase.ListOwned: %w", err)
	}
	return &OwnedProducts{Products: products, Total: total}, nil
}

func (uc *ProductUsecase) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	products, err := uc.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("ProductUsecase.ListBySeller: %w", err)
	}
	return products, nil
}

// GetByID returns the listing with its seller and resolved comment thread.
func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (*domain.ProductDetail, error) {
	ctx, span := tracer.Start(ctx, "ProductUsecase.GetByID")
	defer span.End()

	if cached := uc.cache.get(ctx, id); cached != nil {
		uc.logger.Debug("Product served from cache", zap.String("product_id", id))
		return cached, nil
	}

	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.logger.Error("Failed to get product", zap.String("product_id", id), zap.Error(err))
		}
		return nil, fmt.Errorf("ProductUsecase.GetByID: %w", err)
	}
	if err := attachSellers(ctx, uc.users, []*domain.Product{p}); err != nil {
		return nil, fmt.Errorf("ProductUsecase.GetByID: %w", err)
	}

	comments, err := uc.comments.ListByIDs(ctx, p.Comments)
	if err != nil {
		return nil, fmt.Errorf("ProductUsecase.GetByID: comments: %w", err)
	}
	if err := attachAuthors(ctx, uc.users, comments); err != nil {
		return nil, fmt.Errorf("ProductUsecase.GetByID: authors: %w", err)
	}

	detail := &domain.ProductDetail{Product: p, Comments: comments}
	uc.cache.set(ctx, detail)
	return detail, nil
}

func (uc *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductUsecase.Create")
	defer span.End()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.InvalidInput("Title is required")
	}
	if in.Price == nil {
		return nil, domain.InvalidInput("Price is required")
	}
	if err := checkPrice(*in.Price); err != nil {
		return nil, err
	}

	var imageURL string
	if in.Image != nil {
		url, err := uc.images.Ingest(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		Category:    strings.TrimSpace(in.Category),
		Image:       imageURL,
		SellerID:    in.SellerID,
		Likes:       []string{},
		Comments:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		uc.logger.Error("Failed to create product", zap.String("seller_id", in.SellerID), zap.Error(err))
		return nil, fmt.Errorf("ProductUsecase.Create: %w", err)
	}

	uc.metrics.IncProductsCreated()
	uc.logger.Info("Product created", zap.String("product_id", p.ID), zap.String("seller_id", p.SellerID))
	uc.events.publish(ctx, SubjectProductCreated, ProductEvent{
		ProductID: p.ID, SellerID: p.SellerID, Title: p.Title, Price: p.Price, OccurredAt: now,
	})
	uc.notifySeller(p)
	return p, nil
}

// notifySeller emails the seller in the background; failures are only logged.
func (uc *ProductUsecase) notifySeller(p *domain.Product) {
	if uc.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		seller, err := uc.users.GetByID(ctx, p.SellerID)
		if err != nil {
			uc.logger.Warn("Cannot notify seller, user lookup failed", zap.String("seller_id", p.SellerID), zap.Error(err))
			return
		}
		if seller.Email == "" {
			return
		}
		if err := uc.notifier.SendListingCreatedEmail(seller.Email, p.Title); err != nil {
			uc.logger.Warn("Failed to send listing created email", zap.String("product_id", p.ID), zap.Error(err))
			return
		}
		uc.logger.Info("Listing created email sent", zap.String("product_id", p.ID))
	}()
}

// Update changes only the supplied fields. The image is replaced only when a new one is uploaded.
func (uc *ProductUsecase) Update(ctx context.Context, in UpdateProductInput) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductUsecase.Update")
	defer span.End()

	current, err := uc.loadOwned(ctx, in.ID, in.CallerID)
	if err != nil {
		return nil, fmt.Errorf("ProductUsecase.Update: %w", err)
	}

	patch := domain.ProductPatch{Description: in.Description, Category: in.Category}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.InvalidInput("Title must not be empty")
		}
		patch.Title = &title
	}
	if in.Price != nil {
		if err := checkPrice(*in.Price); err != nil {
			return nil, err
		}
		patch.Price = in.Price
	}
	if in.Image != nil {
		url, err := uc.images.Ingest(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		patch.Image = &url
	}

	updated := current
	if !patch.IsEmpty() {
		updated, err = uc.products.Update(ctx, in.ID, patch)
		if err != nil {
			uc.logger.Error("Failed to update product", zap.String("product_id", in.ID), zap.Error(err))
			return nil, fmt.Errorf("ProductUsecase.Update: %w", err)
		}
		uc.cache.invalidate(ctx, in.ID)
		uc.events.publish(ctx, SubjectProductUpdated, ProductEvent{
			ProductID: updated.ID, SellerID: updated.SellerID, ActorID: in.CallerID,
			Title: updated.Title, Price: updated.Price, OccurredAt: time.Now().UTC(),
		})
	}
	return updated, nil
}

func (uc *ProductUsecase) Delete(ctx context.Context, id, callerID string) error {
	ctx, span := tracer.Start(ctx, "ProductUsecase.Delete")
	defer span.End()

	p, err := uc.loadOwned(ctx, id, callerID)
	if err != nil {
		return fmt.Errorf("ProductUsecase.Delete: %w", err)
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete product", zap.String("product_id", id), zap.Error(err))
		return fmt.Errorf("ProductUsecase.Delete: %w", err)
	}
	uc.cache.invalidate(ctx, id)
	uc.logger.Info("Product deleted", zap.String("product_id", id))
	uc.events.publish(ctx, SubjectProductDeleted, ProductEvent{
		ProductID: id, SellerID: p.SellerID, ActorID: callerID, OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ToggleSold flips the sold flag and returns the new value.
func (uc *ProductUsecase) ToggleSold(ctx context.Context, id, callerID string) (bool, error) {
	p, err := uc.loadOwned(ctx, id, callerID)
	if err != nil {
		return false, fmt.Errorf("ProductUsecase.ToggleSold: %w", err)
	}
	sold, err := uc.products.ToggleSold(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to toggle sold", zap.String("product_id", id), zap.Error(err))
		return false, fmt.Errorf("ProductUsecase.ToggleSold: %w", err)
	}
	uc.cache.invalidate(ctx, id)
	uc.events.publish(ctx, SubjectProductSoldToggled, ProductEvent{
		ProductID: id, SellerID: p.SellerID, ActorID: callerID, Sold: boolPtr(sold), OccurredAt: time.Now().UTC(),
	})
	return sold, nil
}
