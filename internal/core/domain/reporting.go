package domain

import "github.com/shopspring/decimal"

// SummaryReport aggregates sales and treasury figures for the dashboard.
type SummaryReport struct {
	SalesCount             int64           `json:"salesCount"`
	TotalUnitPriceVolume   decimal.Decimal `json:"totalUnitPriceVolume"`
	TotalCompanyCommission decimal.Decimal `json:"totalCompanyCommission"`
	TotalNetCompanyIncome  decimal.Decimal `json:"totalNetCompanyIncome"`
	TransactionCount       int64           `json:"transactionCount"`
	CurrentBalance         decimal.Decimal `json:"currentBalance"`
}

// MonthlySalesReport holds per-month sales aggregates for one calendar year.
type MonthlySalesReport struct {
	Month            string          `json:"month"` // YYYY-MM
	SalesCount       int64           `json:"salesCount"`
	NetCompanyIncome decimal.Decimal `json:"netCompanyIncome"`
}
