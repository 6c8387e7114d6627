package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"go.uber.org/zap"
)

// Profile is the current user with their liked listings resolved.
type Profile struct {
	User          *domain.User
	LikedProducts []*domain.Product
}

type UserUsecase struct {
	users    domain.UserRepository
	products domain.ProductRepository
	avatars  *MediaUsecase
	logger   *logger.Logger
}

func NewUserUsecase(users domain.UserRepository, products domain.ProductRepository, avatars *MediaUsecase, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		users:    users,
		products: products,
		avatars:  avatars,
		logger:   log.Named("UserUsecase"),
	}
}

// Authenticate loads the user behind a verified token.
func (uc *UserUsecase) Authenticate(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserUsecase.Authenticate: %w", err)
	}
	return user.Public(), nil
}

func (uc *UserUsecase) Me(ctx context.Context, userID string) (*Profile, error) {
	user, err := uc.Authenticate(ctx, userID)
	if err != nil {
		return nil, err
	}
	liked, err := uc.products.ListByIDs(ctx, user.LikedProducts)
	if err != nil {
		uc.logger.Error("Failed to resolve liked products", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("UserUsecase.Me: %w", err)
	}
	return &Profile{User: user, LikedProducts: liked}, nil
}

func (uc *UserUsecase) UpdateSettings(ctx context.Context, userID, phone, address string) (domain.UserSettings, error) {
	settings := domain.UserSettings{
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}
	if err := uc.users.UpdateSettings(ctx, userID, settings); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserSettings{}, domain.ErrUserNotFound
		}
		uc.logger.Error("Failed to update settings", zap.String("user_id", userID), zap.Error(err))
		return domain.UserSettings{}, fmt.Errorf("UserUsecase.UpdateSettings: %w", err)
	}
	return settings, nil
}

// UpdateAvatar stores a new avatar. Without an upload the current avatar is kept.
func (uc *UserUsecase) UpdateAvatar(ctx context.Context, userID string, upload *Upload) (string, error) {
	user, err := uc.Authenticate(ctx, userID)
	if err != nil {
		return "", err
	}
	if upload == nil {
		return user.Avatar, nil
	}

	url, err := uc.avatars.Ingest(ctx, upload)
	if err != nil {
		return "", err
	}
	if err := uc.users.UpdateAvatar(ctx, userID, url); err != nil {
		uc.logger.Error("Failed to save avatar", zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("UserUsecase.UpdateAvatar: %w", err)
	}
	uc.logger.Info("Avatar updated", zap.String("user_id", userID), zap.String("avatar", url))
	return url, nil
}

func (uc *UserUsecase) LikedProducts(ctx context.Context, userID string) ([]*domain.Product, error) {
	user, err := uc.Authenticate(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListByIDs(ctx, user.LikedProducts)
	if err != nil {
		return nil, fmt.Errorf("UserUsecase.LikedProducts: %w", err)
	}
	if err := attachSellers(ctx, uc.users, products); err != nil {
		return nil, fmt.Errorf("UserUsecase.LikedProducts: %w", err)
	}
	return products, nil
}
