package handler

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	ListOwned(ctx context.Context, filter domain.OwnedFilter) (*usecase.OwnedProducts, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.ProductDetail, error)
	Create(ctx context.Context, in usecase.CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, in usecase.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, callerID string) error
	ToggleSold(ctx context.Context, id, callerID string) (bool, error)
}

type EngagementService interface {
	ToggleLike(ctx context.Context, productID, userID string) (*domain.LikeResult, error)
	AddComment(ctx context.Context, productID, authorID, text string) (*domain.Comment, error)
	AddReply(ctx context.Context, productID, commentID, authorID, text string) (*domain.Comment, error)
}

type UserService interface {
	Me(ctx context.Context, userID string) (*usecase.Profile, error)
	UpdateSettings(ctx context.Context, userID, phone, address string) (domain.UserSettings, error)
	UpdateAvatar(ctx context.Context, userID string, upload *usecase.Upload) (string, error)
	LikedProducts(ctx context.Context, userID string) ([]*domain.Product, error)
}

// callerID returns the authenticated user id. Routes using it sit behind the auth middleware.
func callerID(r *http.Request) (string, error) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", &domain.Error{Kind: domain.ErrUnauthorized, Msg: "No token, authorization denied"}
	}
	return id, nil
}
