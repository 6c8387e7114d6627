package handler

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductService) ListOwned(ctx context.Context, filter domain.OwnedFilter) (*usecase.OwnedProducts, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.OwnedProducts), args.Error(1)
}

func (m *MockProductService) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*domain.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductDetail), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in usecase.CreateProductInput) (*domain.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, in usecase.UpdateProductInput) (*domain.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id, callerID string) error {
	return m.Called(ctx, id, callerID).Error(0)
}

func (m *MockProductService) ToggleSold(ctx context.Context, id, callerID string) (bool, error) {
	args := m.Called(ctx, id, callerID)
	return args.Bool(0), args.Error(1)
}

type MockEngagementService struct{ mock.Mock }

func (m *MockEngagementService) ToggleLike(ctx context.Context, productID, userID string) (*domain.LikeResult, error) {
	args := m.Called(ctx, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LikeResult), args.Error(1)
}

func (m *MockEngagementService) AddComment(ctx context.Context, productID, authorID, text string) (*domain.Comment, error) {
	args := m.Called(ctx, productID, authorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockEngagementService) AddReply(ctx context.Context, productID, commentID, authorID, text string) (*domain.Comment, error) {
	args := m.Called(ctx, productID, commentID, authorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Me(ctx context.Context, userID string) (*usecase.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Profile), args.Error(1)
}

func (m *MockUserService) UpdateSettings(ctx context.Context, userID, phone, address string) (domain.UserSettings, error) {
	args := m.Called(ctx, userID, phone, address)
	return args.Get(0).(domain.UserSettings), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID string, upload *usecase.Upload) (string, error) {
	args := m.Called(ctx, userID, upload)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) LikedProducts(ctx context.Context, userID string) ([]*domain.Product, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}
