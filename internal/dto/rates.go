package dto

import (
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRatesRequest defines a new default rate bundle for a property type.
// All rates are ratios. Fields left out default per the documented policy:
// VAT 0.14, sales tax 0.05, annual tax 0.225, manager commission 0.003,
// everything else 0.
type CreateRatesRequest struct {
	PropertyType              string           `json:"propertyType" binding:"required"`
	CompanyCommissionRate     decimal.Decimal  `json:"companyCommissionRate" binding:"required,ratio"`
	SalespersonCommissionRate *decimal.Decimal `json:"salespersonCommissionRate" binding:"omitempty,ratio"`
	SalespersonIncentiveRate  *decimal.Decimal `json:"salespersonIncentiveRate" binding:"omitempty,ratio"`
	AdditionalIncentiveTax    *decimal.Decimal `json:"additionalIncentiveTaxRate" binding:"omitempty,ratio"`
	VATRate                   *decimal.Decimal `json:"vatRate" binding:"omitempty,ratio"`
	SalesTaxRate              *decimal.Decimal `json:"salesTaxRate" binding:"omitempty,ratio"`
	AnnualTaxRate             *decimal.Decimal `json:"annualTaxRate" binding:"omitempty,ratio"`
	SalespersonTaxRate        *decimal.Decimal `json:"salespersonTaxRate" binding:"omitempty,ratio"`
	SalesManagerTaxRate       *decimal.Decimal `json:"salesManagerTaxRate" binding:"omitempty,ratio"`
	SalesManagerCommission    *decimal.Decimal `json:"salesManagerCommissionRate" binding:"omitempty,ratio"`
}

// UpdateRatesRequest edits an existing bundle field-by-field.
type UpdateRatesRequest struct {
	CompanyCommissionRate     *decimal.Decimal `json:"companyCommissionRate" binding:"omitempty,ratio"`
	SalespersonCommissionRate *decimal.Decimal `json:"salespersonCommissionRate" binding:"omitempty,ratio"`
	SalespersonIncentiveRate  *decimal.Decimal `json:"salespersonIncentiveRate" binding:"omitempty,ratio"`
	AdditionalIncentiveTax    *decimal.Decimal `json:"additionalIncentiveTaxRate" binding:"omitempty,ratio"`
	VATRate                   *decimal.Decimal `json:"vatRate" binding:"omitempty,ratio"`
	SalesTaxRate              *decimal.Decimal `json:"salesTaxRate" binding:"omitempty,ratio"`
	AnnualTaxRate             *decimal.Decimal `json:"annualTaxRate" binding:"omitempty,ratio"`
	SalespersonTaxRate        *decimal.Decimal `json:"salespersonTaxRate" binding:"omitempty,ratio"`
	SalesManagerTaxRate       *decimal.Decimal `json:"salesManagerTaxRate" binding:"omitempty,ratio"`
	SalesManagerCommission    *decimal.Decimal `json:"salesManagerCommissionRate" binding:"omitempty,ratio"`
}

// RatesResponse defines the data returned for a property-type rate bundle.
type RatesResponse struct {
	RatesID      string         `json:"ratesID"`
	PropertyType string         `json:"propertyType"`
	Rates        domain.RateSet `json:"rates"`
}

// ToRatesResponse converts a domain.PropertyTypeRates to its DTO.
func ToRatesResponse(r *domain.PropertyTypeRates) RatesResponse {
	return RatesResponse{
		RatesID:      r.RatesID,
		PropertyType: r.PropertyType,
		Rates:        r.Rates,
	}
}

// ToRatesResponses converts a slice of rate bundles.
func ToRatesResponses(rs []domain.PropertyTypeRates) []RatesResponse {
	out := make([]RatesResponse, 0, len(rs))
	for i := range rs {
		out = append(out, ToRatesResponse(&rs[i]))
	}
	return out
}
