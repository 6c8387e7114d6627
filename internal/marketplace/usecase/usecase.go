package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("marketplace-service/usecase")

// NATS subjects.
const (
	SubjectProductCreated     = "product.created"
	SubjectProductUpdated     = "product.updated"
	SubjectProductDeleted     = "product.deleted"
	SubjectProductSoldToggled = "product.sold_toggled"
	SubjectProductLiked       = "product.liked"
	SubjectCommentCreated     = "comment.created"
)

// ProductEvent is the payload of every product.* subject.
type ProductEvent struct {
	ProductID  string    `json:"product_id"`
	SellerID   string    `json:"seller_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Price      float64   `json:"price,omitempty"`
	Sold       *bool     `json:"sold,omitempty"`
	Liked      *bool     `json:"liked,omitempty"`
	LikesCount *int      `json:"likes_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CommentEvent struct {
	ProductID  string    `json:"product_id"`
	CommentID  string    `json:"comment_id"`
	AuthorID   string    `json:"author_id"`
	IsReply    bool      `json:"is_reply"`
	OccurredAt time.Time `json:"occurred_at"`
}

const productCacheTTL = 10 * time.Minute

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// productCache is a nil-safe cache-aside helper for listing details.
type productCache struct {
	repo   domain.CacheRepository
	logger *logger.Logger
}

func (c productCache) get(ctx context.Context, id string) *domain.ProductDetail {
	if c.repo == nil {
		return nil
	}
	key := productCacheKey(id)
	raw, err := c.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.logger.Warn("Failed to read product from cache", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var detail domain.ProductDetail
	if err := json.Unmarshal(raw, &detail); err != nil || detail.Product == nil {
		c.logger.Error("Corrupted product cache entry, dropping it", zap.String("key", key), zap.Error(err))
		if delErr := c.repo.Delete(ctx, key); delErr != nil {
			c.logger.Warn("Failed to delete corrupted cache entry", zap.String("key", key), zap.Error(delErr))
		}
		return nil
	}
	return &detail
}

func (c productCache) set(ctx context.Context, detail *domain.ProductDetail) {
	if c.repo == nil || detail == nil || detail.Product == nil {
		return
	}
	key := productCacheKey(detail.Product.ID)
	raw, err := json.Marshal(detail)
	if err != nil {
		c.logger.Warn("Failed to marshal product for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.repo.Set(ctx, key, raw, productCacheTTL); err != nil {
		c.logger.Warn("Failed to write product to cache", zap.String("key", key), zap.Error(err))
	}
}

func (c productCache) invalidate(ctx context.Context, id string) {
	if c.repo == nil {
		return
	}
	key := productCacheKey(id)
	if err := c.repo.Delete(ctx, key); err != nil {
		c.logger.Warn("Failed to invalidate product cache", zap.String("key", key), zap.Error(err))
	}
}

// eventBus publishes best-effort: failures are logged, never returned.
type eventBus struct {
	publisher domain.EventPublisher
	logger    *logger.Logger
}

func (b eventBus) publish(ctx context.Context, subject string, payload interface{}) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, subject, payload); err != nil {
		b.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// userIndex loads users by id once and hands out projections.
type userIndex map[string]*domain.User

func loadUsers(ctx context.Context, repo domain.UserRepository, ids []string) (userIndex, error) {
	idx := userIndex{}
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return idx, nil
	}
	users, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx, nil
}

func (idx userIndex) seller(id string) *domain.SellerSummary {
	u, ok := idx[id]
	if !ok {
		return nil
	}
	return &domain.SellerSummary{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

func (idx userIndex) author(id string) *domain.AuthorSummary {
	u, ok := idx[id]
	if !ok {
		return nil
	}
	return &domain.AuthorSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

func attachSellers(ctx context.Context, repo domain.UserRepository, products []*domain.Product) error {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.SellerID)
	}
	idx, err := loadUsers(ctx, repo, ids)
	if err != nil {
		return err
	}
	for _, p := range products {
		p.Seller = idx.seller(p.SellerID)
	}
	return nil
}

func attachAuthors(ctx context.Context, repo domain.UserRepository, comments []*domain.Comment) error {
	var ids []string
	for _, c := range comments {
		ids = append(ids, c.UserID)
		for _, r := range c.Replies {
			ids = append(ids, r.UserID)
		}
	}
	idx, err := loadUsers(ctx, repo, ids)
	if err != nil {
		return err
	}
	for _, c := range comments {
		c.Author = idx.author(c.UserID)
		for i := range c.Replies {
			c.Replies[i].Author = idx.author(c.Replies[i].UserID)
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
