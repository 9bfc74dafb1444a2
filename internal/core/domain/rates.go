package domain

import "github.com/shopspring/decimal"

// RateSet is the full bundle of named rates applied to a sale. Every field is
// a ratio (0.05 means 5%), never a human percentage; conversion from percent
// happens once at the API boundary and never inside the engine.
type RateSet struct {
	CompanyCommissionRate     decimal.Decimal `json:"companyCommissionRate"`
	SalespersonCommissionRate decimal.Decimal `json:"salespersonCommissionRate"`
	SalespersonIncentiveRate  decimal.Decimal `json:"salespersonIncentiveRate"`
	AdditionalIncentiveTax    decimal.Decimal `json:"additionalIncentiveTaxRate"`
	VATRate                   decimal.Decimal `json:"vatRate"`
	SalesTaxRate              decimal.Decimal `json:"salesTaxRate"`
	AnnualTaxRate             decimal.Decimal `json:"annualTaxRate"`
	SalespersonTaxRate        decimal.Decimal `json:"salespersonTaxRate"`
	SalesManagerTaxRate       decimal.Decimal `json:"salesManagerTaxRate"`
	SalesManagerCommission    decimal.Decimal `json:"salesManagerCommissionRate"`
}

// AmountSet is the calculated money breakdown for one sale. All fields carry
// exactly two decimal places.
type AmountSet struct {
	CompanyCommissionAmount     decimal.Decimal `json:"companyCommissionAmount"`
	SalespersonCommissionAmount decimal.Decimal `json:"salespersonCommissionAmount"`
	SalespersonIncentiveAmount  decimal.Decimal `json:"salespersonIncentiveAmount"`
	SalesManagerCommissionAmt   decimal.Decimal `json:"salesManagerCommissionAmount"`
	VATAmount                   decimal.Decimal `json:"vatAmount"`
	SalesTaxAmount              decimal.Decimal `json:"salesTaxAmount"`
	AnnualTaxAmount             decimal.Decimal `json:"annualTaxAmount"`
	SalespersonTaxAmount        decimal.Decimal `json:"salespersonTaxAmount"`
	SalesManagerTaxAmount       decimal.Decimal `json:"salesManagerTaxAmount"`
	NetCompanyIncome            decimal.Decimal `json:"netCompanyIncome"`
	NetSalespersonIncome        decimal.Decimal `json:"netSalespersonIncome"`
	NetSalesManagerIncome       decimal.Decimal `json:"netSalesManagerIncome"`
}

// PropertyTypeRates is the default rate bundle for one property type. It only
// seeds a sale's rate snapshot; the snapshot is what historical calculations
// replay against.
type PropertyTypeRates struct {
	RatesID      string  `json:"ratesID"` // Primary Key (UUID)
	PropertyType string  `json:"propertyType"`
	Rates        RateSet `json:"rates"`
	AuditFields
}
