package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
)

// PgxRatesRepository persists per-property-type rate bundles.
type PgxRatesRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRatesRepository creates a new repository for rate bundles.
func NewPgxRatesRepository(pool *pgxpool.Pool) portsrepo.RatesRepositoryFacade {
	return &PgxRatesRepository{pool: pool}
}

var _ portsrepo.RatesRepositoryFacade = (*PgxRatesRepository)(nil)

const ratesColumns = `
	rates_id, property_type,
	company_commission_rate, salesperson_commission_rate,
	salesperson_incentive_rate, additional_incentive_tax_rate,
	vat_rate, sales_tax_rate, annual_tax_rate,
	salesperson_tax_rate, sales_manager_tax_rate, sales_manager_commission_rate,
	created_at, created_by, last_updated_at, last_updated_by
`

func ratesArgs(r domain.PropertyTypeRates) []any {
	return []any{
		r.RatesID, r.PropertyType,
		r.Rates.CompanyCommissionRate, r.Rates.SalespersonCommissionRate,
		r.Rates.SalespersonIncentiveRate, r.Rates.AdditionalIncentiveTax,
		r.Rates.VATRate, r.Rates.SalesTaxRate, r.Rates.AnnualTaxRate,
		r.Rates.SalespersonTaxRate, r.Rates.SalesManagerTaxRate, r.Rates.SalesManagerCommission,
		r.CreatedAt, r.CreatedBy, r.LastUpdatedAt, r.LastUpdatedBy,
	}
}

func scanRates(row pgx.Row) (*domain.PropertyTypeRates, error) {
	var r domain.PropertyTypeRates
	err := row.Scan(
		&r.RatesID, &r.PropertyType,
		&r.Rates.CompanyCommissionRate, &r.Rates.SalespersonCommissionRate,
		&r.Rates.SalespersonIncentiveRate, &r.Rates.AdditionalIncentiveTax,
		&r.Rates.VATRate, &r.Rates.SalesTaxRate, &r.Rates.AnnualTaxRate,
		&r.Rates.SalespersonTaxRate, &r.Rates.SalesManagerTaxRate, &r.Rates.SalesManagerCommission,
		&r.CreatedAt, &r.CreatedBy, &r.LastUpdatedAt, &r.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &r, nil
}

func (r *PgxRatesRepository) SaveRates(ctx context.Context, rates domain.PropertyTypeRates) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO property_type_rates (`+ratesColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`, ratesArgs(rates)...)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgxRatesRepository) FindRatesByPropertyType(ctx context.Context, propertyType string) (*domain.PropertyTypeRates, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+ratesColumns+` FROM property_type_rates WHERE property_type = $1;
	`, propertyType)
	rates, err := scanRates(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rates for property type %s: %w", propertyType, err)
	}
	return rates, nil
}

func (r *PgxRatesRepository) ListRates(ctx context.Context) ([]domain.PropertyTypeRates, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ratesColumns+` FROM property_type_rates ORDER BY property_type;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", mapPgError(err))
	}
	defer rows.Close()

	bundles := []domain.PropertyTypeRates{}
	for rows.Next() {
		bundle, err := scanRates(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rates: %w", err)
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, rows.Err()
}

func (r *PgxRatesRepository) UpdateRates(ctx context.Context, rates domain.PropertyTypeRates) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE property_type_rates SET
			company_commission_rate = $2, salesperson_commission_rate = $3,
			salesperson_incentive_rate = $4, additional_incentive_tax_rate = $5,
			vat_rate = $6, sales_tax_rate = $7, annual_tax_rate = $8,
			salesperson_tax_rate = $9, sales_manager_tax_rate = $10,
			sales_manager_commission_rate = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE property_type = $1;
	`,
		rates.PropertyType,
		rates.Rates.CompanyCommissionRate, rates.Rates.SalespersonCommissionRate,
		rates.Rates.SalespersonIncentiveRate, rates.Rates.AdditionalIncentiveTax,
		rates.Rates.VATRate, rates.Rates.SalesTaxRate, rates.Rates.AnnualTaxRate,
		rates.Rates.SalespersonTaxRate, rates.Rates.SalesManagerTaxRate,
		rates.Rates.SalesManagerCommission,
		rates.LastUpdatedAt, rates.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRatesRepository) DeleteRates(ctx context.Context, propertyType string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM property_type_rates WHERE property_type = $1;
	`, propertyType)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
