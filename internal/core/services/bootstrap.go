package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	"github.com/eskansoft/eskan_sales_app/internal/utils"
	"github.com/eskansoft/eskan_sales_app/pkg/config"
)

// seedUserID marks rows written by the startup seed rather than a person.
const seedUserID = "system"

// defaultPropertyTypes are the bundles an empty database starts with. Each
// gets the documented default rates; the commission rates stay zero until an
// admin fills them in.
var defaultPropertyTypes = []string{"apartment", "commercial", "administrative", "medical"}

// SeedDefaults prepares a fresh database for first use: the treasury row,
// one rate bundle per default property type, and the initial admin account.
// Every step is idempotent, so it runs on every startup and leaves existing
// rows untouched.
func SeedDefaults(ctx context.Context, repos *portsrepo.RepositoryProvider, cfg *config.Config) error {
	logger := loggerFromCtx(ctx)

	if _, err := repos.TreasuryRepo.GetOrCreateTreasury(ctx); err != nil {
		return fmt.Errorf("failed to initialize treasury: %w", err)
	}

	now := time.Now()
	for _, propertyType := range defaultPropertyTypes {
		if _, err := repos.RatesRepo.FindRatesByPropertyType(ctx, propertyType); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check rates for %s: %w", propertyType, err)
		}

		bundle := domain.PropertyTypeRates{
			RatesID:      uuid.NewString(),
			PropertyType: propertyType,
			Rates:        defaultRateSet(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seedUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: seedUserID,
			},
		}
		if err := repos.RatesRepo.SaveRates(ctx, bundle); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("failed to seed rates for %s: %w", propertyType, err)
		}
		logger.Info("Seeded default rate bundle", slog.String("property_type", propertyType))
	}

	return seedAdminUser(ctx, repos.UserRepo, cfg, now)
}

// seedAdminUser creates the configured admin account if no user with that
// username exists yet. Without it a fresh deployment has no way to mint an
// admin token, since user registration itself is admin-only.
func seedAdminUser(ctx context.Context, userRepo portsrepo.UserRepositoryFacade, cfg *config.Config, now time.Time) error {
	logger := loggerFromCtx(ctx)

	username := strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminUsername))
	if username == "" || cfg.BootstrapAdminPassword == "" {
		logger.Info("Bootstrap admin not configured, skipping")
		return nil
	}

	if _, err := userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for bootstrap admin: %w", err)
	}

	hash, err := utils.HashPassword(cfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     seedUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: seedUserID,
		},
	}
	if err := userRepo.SaveUser(ctx, user); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to seed bootstrap admin: %w", err)
	}

	logger.Warn("Created bootstrap admin account, change its password",
		slog.String("username", username))
	return nil
}
