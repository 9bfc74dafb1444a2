package repositories

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
)

// RatesRepositoryFacade persists the per-property-type default rate bundles.
type RatesRepositoryFacade interface {
	SaveRates(ctx context.Context, rates domain.PropertyTypeRates) error
	FindRatesByPropertyType(ctx context.Context, propertyType string) (*domain.PropertyTypeRates, error)
	ListRates(ctx context.Context) ([]domain.PropertyTypeRates, error)
	UpdateRates(ctx context.Context, rates domain.PropertyTypeRates) error
	DeleteRates(ctx context.Context, propertyType string) error
}
