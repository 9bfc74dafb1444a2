package repositories

import (
	"context"
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
)

// UserRepositoryFacade persists application users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	DeactivateUser(ctx context.Context, userID string, deactivatedBy string, now time.Time) error
}
