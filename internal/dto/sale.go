package dto

import (
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateOverrides carries per-sale rate overrides. Every field is optional and
// expressed as a ratio (0.05 = 5%); a set field wins over the property-type
// default for that field only.
type RateOverrides struct {
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

// CreateSaleRequest defines the data needed to record a new sale.
// UnitPrice is a fixed-point decimal; SaleDate uses YYYY-MM-DD.
type CreateSaleRequest struct {
	ClientName       string          `json:"clientName" binding:"required"`
	SaleDate         string          `json:"saleDate" binding:"required"`
	UnitCode         string          `json:"unitCode" binding:"required"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"required"`
	PropertyType     string          `json:"propertyType" binding:"required"`
	ProjectName      string          `json:"projectName"`
	SalespersonName  string          `json:"salespersonName"`
	SalesManagerName string          `json:"salesManagerName"`
	Notes            string          `json:"notes"`
	Rates            *RateOverrides  `json:"rates"`
}

// UpdateSaleRequest defines the data allowed for updating a sale.
// Pointers distinguish zero-value updates from fields not provided. Changing
// the price, the property type, or any rate triggers a full recalculation
// and a treasury re-posting.
type UpdateSaleRequest struct {
	ClientName       *string          `json:"clientName"`
	SaleDate         *string          `json:"saleDate"`
	UnitCode         *string          `json:"unitCode"`
	UnitPrice        *decimal.Decimal `json:"unitPrice"`
	PropertyType     *string          `json:"propertyType"`
	ProjectName      *string          `json:"projectName"`
	SalespersonName  *string          `json:"salespersonName"`
	SalesManagerName *string          `json:"salesManagerName"`
	Notes            *string          `json:"notes"`
	Rates            *RateOverrides   `json:"rates"`
}

// PreviewRequest asks for a calculation breakdown without persisting
// anything. Rates come either explicitly or from PropertyType; when
// RatesArePercent is set the explicit values are converted from human
// percentages to ratios once, at this boundary.
type PreviewRequest struct {
	UnitPrice       decimal.Decimal `json:"unitPrice" binding:"required"`
	PropertyType    string          `json:"propertyType"`
	Rates           *RateOverrides  `json:"rates"`
	RatesArePercent bool            `json:"ratesArePercent"`
}

// SaleResponse defines the data returned for a sale, including the stored
// rate snapshot and the full calculated breakdown.
type SaleResponse struct {
	SaleID           string            `json:"saleID"`
	ClientName       string            `json:"clientName"`
	SaleDate         string            `json:"saleDate"`
	UnitCode         string            `json:"unitCode"`
	UnitPrice        decimal.Decimal   `json:"unitPrice"`
	PropertyType     string            `json:"propertyType"`
	ProjectName      string            `json:"projectName,omitempty"`
	SalespersonName  string            `json:"salespersonName,omitempty"`
	SalesManagerName string            `json:"salesManagerName,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Rates            domain.RateSet    `json:"rates"`
	Amounts          domain.AmountSet  `json:"amounts"`
	TransactionID    string            `json:"transactionID,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	LastUpdatedAt    time.Time         `json:"lastUpdatedAt"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:           s.SaleID,
		ClientName:       s.ClientName,
		SaleDate:         s.SaleDate.Format("2006-01-02"),
		UnitCode:         s.UnitCode,
		UnitPrice:        s.UnitPrice,
		PropertyType:     s.PropertyType,
		ProjectName:      s.ProjectName,
		SalespersonName:  s.SalespersonName,
		SalesManagerName: s.SalesManagerName,
		Notes:            s.Notes,
		Rates:            s.Rates,
		Amounts:          s.Amounts,
		TransactionID:    s.TransactionID,
		CreatedAt:        s.CreatedAt,
		LastUpdatedAt:    s.LastUpdatedAt,
	}
}

// ToSaleResponses converts a slice of sales.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, ToSaleResponse(&sales[i]))
	}
	return out
}
