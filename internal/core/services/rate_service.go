package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
)

// Documented default rates, applied for fields neither the property-type
// bundle nor the per-sale overrides supply.
var (
	defaultVATRate           = decimal.RequireFromString("0.14")
	defaultSalesTaxRate      = decimal.RequireFromString("0.05")
	defaultAnnualTaxRate     = decimal.RequireFromString("0.225")
	defaultManagerCommission = decimal.RequireFromString("0.003")
)

// rateService resolves rate bundles and manages the property-type defaults.
type rateService struct {
	ratesRepo portsrepo.RatesRepositoryFacade
}

// NewRateService creates a new rate service.
func NewRateService(ratesRepo portsrepo.RatesRepositoryFacade) portssvc.RateSvcFacade {
	return &rateService{ratesRepo: ratesRepo}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// defaultRateSet returns the documented fallback rates: VAT 14%, sales tax
// 5%, annual tax 22.5%, sales-manager commission 0.3%, everything else 0.
func defaultRateSet() domain.RateSet {
	return domain.RateSet{
		VATRate:                defaultVATRate,
		SalesTaxRate:           defaultSalesTaxRate,
		AnnualTaxRate:          defaultAnnualTaxRate,
		SalesManagerCommission: defaultManagerCommission,
	}
}

// applyOverrides overlays the non-nil override fields onto base.
func applyOverrides(base domain.RateSet, o *dto.RateOverrides) domain.RateSet {
	if o == nil {
		return base
	}
	if o.CompanyCommissionRate != nil {
		base.CompanyCommissionRate = *o.CompanyCommissionRate
	}
	if o.SalespersonCommissionRate != nil {
		base.SalespersonCommissionRate = *o.SalespersonCommissionRate
	}
	if o.SalespersonIncentiveRate != nil {
		base.SalespersonIncentiveRate = *o.SalespersonIncentiveRate
	}
	if o.AdditionalIncentiveTax != nil {
		base.AdditionalIncentiveTax = *o.AdditionalIncentiveTax
	}
	if o.VATRate != nil {
		base.VATRate = *o.VATRate
	}
	if o.SalesTaxRate != nil {
		base.SalesTaxRate = *o.SalesTaxRate
	}
	if o.AnnualTaxRate != nil {
		base.AnnualTaxRate = *o.AnnualTaxRate
	}
	if o.SalespersonTaxRate != nil {
		base.SalespersonTaxRate = *o.SalespersonTaxRate
	}
	if o.SalesManagerTaxRate != nil {
		base.SalesManagerTaxRate = *o.SalesManagerTaxRate
	}
	if o.SalesManagerCommission != nil {
		base.SalesManagerCommission = *o.SalesManagerCommission
	}
	return base
}

// ResolveRates produces the full rate set for a sale. With a property type
// the stored bundle is the base and a missing bundle is a hard error; with
// an empty property type (preview with explicit rates) the documented
// defaults are the base. Overrides win field-by-field. All values are
// ratios; percent conversion never happens here.
func (s *rateService) ResolveRates(ctx context.Context, propertyType string, overrides *dto.RateOverrides) (domain.RateSet, error) {
	base := defaultRateSet()
	if propertyType != "" {
		stored, err := s.ratesRepo.FindRatesByPropertyType(ctx, propertyType)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.RateSet{}, fmt.Errorf("%w: %s", apperrors.ErrRateNotFound, propertyType)
			}
			return domain.RateSet{}, fmt.Errorf("failed to look up rates for %s: %w", propertyType, err)
		}
		base = stored.Rates
	}
	return applyOverrides(base, overrides), nil
}

func (s *rateService) CreateRates(ctx context.Context, req dto.CreateRatesRequest, creatorUserID string) (*domain.PropertyTypeRates, error) {
	logger := loggerFromCtx(ctx)

	rates := defaultRateSet()
	rates.CompanyCommissionRate = req.CompanyCommissionRate
	rates = applyOverrides(rates, &dto.RateOverrides{
		SalespersonCommissionRate: req.SalespersonCommissionRate,
		SalespersonIncentiveRate:  req.SalespersonIncentiveRate,
		AdditionalIncentiveTax:    req.AdditionalIncentiveTax,
		VATRate:                   req.VATRate,
		SalesTaxRate:              req.SalesTaxRate,
		AnnualTaxRate:             req.AnnualTaxRate,
		SalespersonTaxRate:        req.SalespersonTaxRate,
		SalesManagerTaxRate:       req.SalesManagerTaxRate,
		SalesManagerCommission:    req.SalesManagerCommission,
	})

	now := time.Now()
	bundle := domain.PropertyTypeRates{
		RatesID:      uuid.NewString(),
		PropertyType: req.PropertyType,
		Rates:        rates,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ratesRepo.SaveRates(ctx, bundle); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: rates for %s", apperrors.ErrDuplicate, req.PropertyType)
		}
		logger.Error("Failed to save property type rates", "error", err)
		return nil, fmt.Errorf("failed to save rates: %w", err)
	}
	return &bundle, nil
}

func (s *rateService) GetRatesByPropertyType(ctx context.Context, propertyType string) (*domain.PropertyTypeRates, error) {
	return s.ratesRepo.FindRatesByPropertyType(ctx, propertyType)
}

func (s *rateService) ListRates(ctx context.Context) ([]domain.PropertyTypeRates, error) {
	return s.ratesRepo.ListRates(ctx)
}

func (s *rateService) UpdateRates(ctx context.Context, propertyType string, req dto.UpdateRatesRequest, updaterUserID string) (*domain.PropertyTypeRates, error) {
	existing, err := s.ratesRepo.FindRatesByPropertyType(ctx, propertyType)
	if err != nil {
		return nil, err
	}

	existing.Rates = applyOverrides(existing.Rates, &dto.RateOverrides{
		CompanyCommissionRate:     req.CompanyCommissionRate,
		SalespersonCommissionRate: req.SalespersonCommissionRate,
		SalespersonIncentiveRate:  req.SalespersonIncentiveRate,
		AdditionalIncentiveTax:    req.AdditionalIncentiveTax,
		VATRate:                   req.VATRate,
		SalesTaxRate:              req.SalesTaxRate,
		AnnualTaxRate:             req.AnnualTaxRate,
		SalespersonTaxRate:        req.SalespersonTaxRate,
		SalesManagerTaxRate:       req.SalesManagerTaxRate,
		SalesManagerCommission:    req.SalesManagerCommission,
	})
	existing.LastUpdatedAt = time.Now()
	existing.LastUpdatedBy = updaterUserID

	if err := s.ratesRepo.UpdateRates(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update rates for %s: %w", propertyType, err)
	}
	return existing, nil
}

func (s *rateService) DeleteRates(ctx context.Context, propertyType string) error {
	return s.ratesRepo.DeleteRates(ctx, propertyType)
}
