package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	"go.uber.org/zap"
)

const maxCommentLength = 2000

// EngagementUsecase handles likes, comments and replies on listings.
type EngagementUsecase struct {
	products domain.ProductRepository
	comments domain.CommentRepository
	users    domain.UserRepository
	cache    productCache
	events   eventBus
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
}

func NewEngagementUsecase(
	products domain.ProductRepository,
	comments domain.CommentRepository,
	users domain.UserRepository,
	deps ProductDeps,
	log *logger.Logger,
) *EngagementUsecase {
	l := log.Named("EngagementUsecase")
	return &EngagementUsecase{
		products: products,
		comments: comments,
		users:    users,
		cache:    productCache{repo: deps.Cache, logger: l},
		events:   eventBus{publisher: deps.Publisher, logger: l},
		metrics:  deps.Metrics,
		logger:   l,
	}
}

func validateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.InvalidInput("Text is required")
	}
	if len([]rune(text)) > maxCommentLength {
		return "", domain.InvalidInput(fmt.Sprintf("Text must be at most %d characters", maxCommentLength))
	}
	return text, nil
}

// ToggleLike flips the caller's like on a listing. Sellers cannot like their own listings.
func (uc *EngagementUsecase) ToggleLike(ctx context.Context, productID, userID string) (*domain.LikeResult, error) {
	ctx, span := tracer.Start(ctx, "EngagementUsecase.ToggleLike")
	defer span.End()

	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("EngagementUsecase.ToggleLike: %w", err)
	}
	if p.IsOwnedBy(userID) {
		return nil, domain.ErrOwnProductLike
	}

	res, err := uc.products.ToggleLike(ctx, productID, userID)
	if err != nil {
		uc.logger.Error("Failed to toggle like", zap.String("product_id", productID), zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("EngagementUsecase.ToggleLike: %w", err)
	}

	uc.cache.invalidate(ctx, productID)
	uc.metrics.IncLikeToggled(res.Liked)
	uc.events.publish(ctx, SubjectProductLiked, ProductEvent{
		ProductID: productID, SellerID: p.SellerID, ActorID: userID,
		Liked: boolPtr(res.Liked), LikesCount: intPtr(res.LikesCount), OccurredAt: time.Now().UTC(),
	})
	return res, nil
}

// AddComment posts a comment and puts it at the head of the listing's thread.
func (uc *EngagementUsecase) AddComment(ctx context.Context, productID, authorID, text string) (*domain.Comment, error) {
	ctx, span := tracer.Start(ctx, "EngagementUsecase.AddComment")
	defer span.End()

	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}
	if _, err := uc.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("EngagementUsecase.AddComment: %w", err)
	}

	c := &domain.Comment{
		ProductID: productID,
		UserID:    authorID,
		Text:      text,
		Replies:   []domain.Reply{},
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		uc.logger.Error("Failed to create comment", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("EngagementUsecase.AddComment: %w", err)
	}
	if err := uc.products.PrependComment(ctx, productID, c.ID); err != nil {
		uc.logger.Error("Comment stored but not linked to product", zap.String("product_id", productID), zap.String("comment_id", c.ID), zap.Error(err))
		return nil, fmt.Errorf("EngagementUsecase.AddComment: %w", err)
	}
	if err := attachAuthors(ctx, uc.users, []*domain.Comment{c}); err != nil {
		uc.logger.Warn("Failed to resolve comment author", zap.String("comment_id", c.ID), zap.Error(err))
	}

	uc.cache.invalidate(ctx, productID)
	uc.metrics.IncCommentsCreated()
	uc.events.publish(ctx, SubjectCommentCreated, CommentEvent{
		ProductID: productID, CommentID: c.ID, AuthorID: authorID, OccurredAt: c.CreatedAt,
	})
	return c, nil
}

// AddReply appends a reply to a comment. The comment must belong to productID.
func (uc *EngagementUsecase) AddReply(ctx context.Context, productID, commentID, authorID, text string) (*domain.Comment, error) {
	ctx, span := tracer.Start(ctx, "EngagementUsecase.AddReply")
	defer span.End()

	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}
	if _, err := uc.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("EngagementUsecase.AddReply: %w", err)
	}
	parent, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("EngagementUsecase.AddReply: %w", err)
	}
	if parent.ProductID != productID {
		uc.logger.Warn("Reply target belongs to another product",
			zap.String("product_id", productID), zap.String("comment_id", commentID), zap.String("comment_product_id", parent.ProductID))
		return nil, domain.ErrCommentNotFound
	}

	reply := domain.Reply{UserID: authorID, Text: text, CreatedAt: time.Now().UTC()}
	updated, err := uc.comments.AppendReply(ctx, commentID, reply)
	if err != nil {
		uc.logger.Error("Failed to append reply", zap.String("comment_id", commentID), zap.Error(err))
		return nil, fmt.Errorf("EngagementUsecase.AddReply: %w", err)
	}
	if err := attachAuthors(ctx, uc.users, []*domain.Comment{updated}); err != nil {
		uc.logger.Warn("Failed to resolve reply authors", zap.String("comment_id", commentID), zap.Error(err))
	}

	uc.cache.invalidate(ctx, productID)
	uc.metrics.IncCommentsCreated()
	uc.events.publish(ctx, SubjectCommentCreated, CommentEvent{
		ProductID: productID, CommentID: commentID, AuthorID: authorID, IsReply: true, OccurredAt: reply.CreatedAt,
	})
	return updated, nil
}
