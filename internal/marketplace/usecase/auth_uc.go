package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Generate(userID string) (string, error)
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthUsecase struct {
	users      domain.UserRepository
	tokens     TokenIssuer
	metrics    *metrics.MetricsManager
	logger     *logger.Logger
	bcryptCost int
}

func NewAuthUsecase(users domain.UserRepository, tokens TokenIssuer, m *metrics.MetricsManager, log *logger.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		metrics:    m,
		logger:     log.Named("AuthUsecase"),
		bcryptCost: bcrypt.DefaultCost,
	}
}

func validateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) {
		return domain.InvalidInput("Invalid email address")
	}
	if len(password) < minPasswordLength {
		return domain.InvalidInput(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if strings.IndexFunc(password, unicode.IsSpace) >= 0 {
		return domain.InvalidInput("Password must not contain spaces")
	}
	return nil
}

func (uc *AuthUsecase) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "AuthUsecase.Register")
	defer span.End()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, domain.InvalidInput("All fields required")
	}
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Error("Failed to look up email", zap.Error(err))
		return nil, fmt.Errorf("AuthUsecase.Register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("AuthUsecase.Register: hash password: %w", err)
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		uc.logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("AuthUsecase.Register: %w", err)
	}

	signed, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("AuthUsecase.Register: %w", err)
	}

	uc.metrics.IncUsersRegistered()
	uc.logger.Info("User registered", zap.String("user_id", user.ID))
	return &AuthResult{Token: signed, User: user.Public()}, nil
}

// Login fails with ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "AuthUsecase.Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		uc.logger.Error("Failed to load user for login", zap.Error(err))
		return nil, fmt.Errorf("AuthUsecase.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Debug("Password mismatch", zap.String("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("AuthUsecase.Login: %w", err)
	}
	return &AuthResult{Token: signed, User: user.Public()}, nil
}
