package services

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
)

// RateSvcFacade resolves rate bundles and manages the property-type
// defaults.
type RateSvcFacade interface {
	// ResolveRates produces the full rate set for a sale: the property-type
	// bundle overlaid field-by-field with the caller's overrides. A property
	// type with no stored bundle is apperrors.ErrRateNotFound; an empty
	// property type uses the documented default rates as the base.
	ResolveRates(ctx context.Context, propertyType string, overrides *dto.RateOverrides) (domain.RateSet, error)

	CreateRates(ctx context.Context, req dto.CreateRatesRequest, creatorUserID string) (*domain.PropertyTypeRates, error)
	GetRatesByPropertyType(ctx context.Context, propertyType string) (*domain.PropertyTypeRates, error)
	ListRates(ctx context.Context) ([]domain.PropertyTypeRates, error)
	UpdateRates(ctx context.Context, propertyType string, req dto.UpdateRatesRequest, updaterUserID string) (*domain.PropertyTypeRates, error)
	DeleteRates(ctx context.Context, propertyType string) error
}
