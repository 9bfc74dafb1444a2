package services

import (
	"context"
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
)

// UserSvcFacade manages application users and password authentication.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	DeactivateUser(ctx context.Context, userID string, deactivatedBy string) error

	// AuthenticateUser verifies username/password and returns the user.
	// Invalid credentials are apperrors.ErrNotFound to avoid leaking which
	// part was wrong.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
