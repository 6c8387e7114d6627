package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEngagementFixture() (*EngagementUsecase, *MockProductRepository, *MockCommentRepository, *MockUserRepository, *MockCacheRepository, *MockPublisher) {
	products := new(MockProductRepository)
	comments := new(MockCommentRepository)
	users := new(MockUserRepository)
	cache := new(MockCacheRepository)
	publisher := new(MockPublisher)
	uc := NewEngagementUsecase(products, comments, users, ProductDeps{Cache: cache, Publisher: publisher}, logger.NewNop())
	return uc, products, comments, users, cache, publisher
}

func TestEngagementUsecase_ToggleLike(t *testing.T) {
	ctx := context.Background()
	listing := &domain.Product{ID: "p1", SellerID: "s1"}

	t.Run("TwiceRestoresOriginalState", func(t *testing.T) {
		uc, products, _, _, cache, publisher := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p1").Return(listing, nil).Twice()
		products.On("ToggleLike", mock.Anything, "p1", "u2").Return(&domain.LikeResult{Liked: true, LikesCount: 1}, nil).Once()
		products.On("ToggleLike", mock.Anything, "p1", "u2").Return(&domain.LikeResult{Liked: false, LikesCount: 0}, nil).Once()
		cache.On("Delete", mock.Anything, productCacheKey("p1")).Return(nil).Twice()
		publisher.On("Publish", mock.Anything, SubjectProductLiked, mock.AnythingOfType("usecase.ProductEvent")).Return(nil).Twice()

		first, err := uc.ToggleLike(ctx, "p1", "u2")
		require.NoError(t, err)
		second, err := uc.ToggleLike(ctx, "p1", "u2")
		require.NoError(t, err)

		assert.Equal(t, &domain.LikeResult{Liked: true, LikesCount: 1}, first)
		assert.Equal(t, &domain.LikeResult{Liked: false, LikesCount: 0}, second)
		products.AssertExpectations(t)
		cache.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("SellerCannotLikeOwnListing", func(t *testing.T) {
		uc, products, _, _, _, _ := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p1").Return(listing, nil).Once()

		_, err := uc.ToggleLike(ctx, "p1", "s1")

		assert.ErrorIs(t, err, domain.ErrOwnProductLike)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		products.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingListing", func(t *testing.T) {
		uc, products, _, _, _, _ := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p404").Return(nil, domain.ErrProductNotFound).Once()

		_, err := uc.ToggleLike(ctx, "p404", "u2")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEngagementUsecase_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("PrependsToThread", func(t *testing.T) {
		uc, products, comments, users, cache, publisher := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p1").Return(&domain.Product{ID: "p1", SellerID: "s1", Comments: []string{"c1"}}, nil).Once()
		comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ProductID == "p1" && c.UserID == "u2" && c.Text == "Is it available?" && c.Replies != nil
		})).Run(func(args mock.Arguments) { args.Get(1).(*domain.Comment).ID = "c2" }).Return(nil).Once()
		products.On("PrependComment", mock.Anything, "p1", "c2").Return(nil).Once()
		users.On("FindByIDs", mock.Anything, []string{"u2"}).Return([]*domain.User{{ID: "u2", Name: "Buyer", Avatar: "b.png"}}, nil).Once()
		cache.On("Delete", mock.Anything, productCacheKey("p1")).Return(nil).Once()
		publisher.On("Publish", mock.Anything, SubjectCommentCreated, mock.MatchedBy(func(e CommentEvent) bool {
			return e.ProductID == "p1" && e.CommentID == "c2" && e.AuthorID == "u2" && !e.IsReply
		})).Return(nil).Once()

		c, err := uc.AddComment(ctx, "p1", "u2", "  Is it available?  ")

		require.NoError(t, err)
		assert.Equal(t, "c2", c.ID)
		assert.Equal(t, &domain.AuthorSummary{ID: "u2", Name: "Buyer", Avatar: "b.png"}, c.Author)
		assert.Empty(t, c.Replies)
		products.AssertExpectations(t)
		comments.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("TextValidation", func(t *testing.T) {
		uc, products, _, _, _, _ := newEngagementFixture()

		_, errBlank := uc.AddComment(ctx, "p1", "u2", "   ")
		_, errLong := uc.AddComment(ctx, "p1", "u2", strings.Repeat("x", maxCommentLength+1))

		assert.ErrorIs(t, errBlank, domain.ErrInvalidInput)
		assert.ErrorIs(t, errLong, domain.ErrInvalidInput)
		products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("MissingListing", func(t *testing.T) {
		uc, products, comments, _, _, _ := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p404").Return(nil, domain.ErrProductNotFound).Once()

		_, err := uc.AddComment(ctx, "p404", "u2", "hi")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestEngagementUsecase_AddReply(t *testing.T) {
	ctx := context.Background()
	listing := &domain.Product{ID: "p1", SellerID: "s1"}

	t.Run("AppendsInOrder", func(t *testing.T) {
		uc, products, comments, users, cache, publisher := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p1").Return(listing, nil).Once()
		comments.On("GetByID", mock.Anything, "c1").
			Return(&domain.Comment{ID: "c1", ProductID: "p1", UserID: "u2", Replies: []domain.Reply{{UserID: "s1", Text: "first"}}}, nil).Once()
		comments.On("AppendReply", mock.Anything, "c1", mock.MatchedBy(func(r domain.Reply) bool {
			return r.UserID == "u2" && r.Text == "second" && !r.CreatedAt.IsZero()
		})).Return(&domain.Comment{ID: "c1", ProductID: "p1", UserID: "u2", Replies: []domain.Reply{
			{UserID: "s1", Text: "first"},
			{UserID: "u2", Text: "second"},
		}}, nil).Once()
		users.On("FindByIDs", mock.Anything, []string{"u2", "s1"}).Return([]*domain.User{
			{ID: "u2", Name: "Buyer"}, {ID: "s1", Name: "Seller"},
		}, nil).Once()
		cache.On("Delete", mock.Anything, productCacheKey("p1")).Return(nil).Once()
		publisher.On("Publish", mock.Anything, SubjectCommentCreated, mock.MatchedBy(func(e CommentEvent) bool {
			return e.IsReply && e.CommentID == "c1"
		})).Return(nil).Once()

		c, err := uc.AddReply(ctx, "p1", "c1", "u2", "second")

		require.NoError(t, err)
		require.Len(t, c.Replies, 2)
		assert.Equal(t, "first", c.Replies[0].Text)
		assert.Equal(t, "second", c.Replies[1].Text)
		assert.Equal(t, "Seller", c.Replies[0].Author.Name)
		assert.Equal(t, "Buyer", c.Replies[1].Author.Name)
		assert.Equal(t, "Buyer", c.Author.Name)
		publisher.AssertExpectations(t)
	})

	t.Run("CommentFromAnotherListingIsNotFound", func(t *testing.T) {
		uc, products, comments, _, _, _ := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p1").Return(listing, nil).Once()
		comments.On("GetByID", mock.Anything, "c9").Return(&domain.Comment{ID: "c9", ProductID: "p2"}, nil).Once()

		_, err := uc.AddReply(ctx, "p1", "c9", "u2", "hello")

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
		comments.AssertNotCalled(t, "AppendReply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingComment", func(t *testing.T) {
		uc, products, comments, _, _, _ := newEngagementFixture()
		products.On("GetByID", mock.Anything, "p1").Return(listing, nil).Once()
		comments.On("GetByID", mock.Anything, "c404").Return(nil, domain.ErrCommentNotFound).Once()

		_, err := uc.AddReply(ctx, "p1", "c404", "u2", "hello")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BlankText", func(t *testing.T) {
		uc, _, comments, _, _, _ := newEngagementFixture()

		_, err := uc.AddReply(ctx, "p1", "c1", "u2", "")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		comments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
