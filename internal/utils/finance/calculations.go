// Package finance holds the pure sale calculation engine: it turns a unit
// price and a rate bundle into the full commission/tax/net-income breakdown.
// It performs no I/O and uses exact decimal arithmetic throughout.
package finance

import (
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

// Calculate computes the full amount breakdown for a sale.
//
// Each commission and tax amount is the half-up rounding, to two decimal
// places, of its full unrounded expression; nothing is rounded mid-chain.
// The three net incomes are then derived from the rounded amounts, so the
// company decomposition
//
//	net company = company commission − vat − sales tax − annual tax
//	              − manager commission − manager tax
//	              − salesperson commission − salesperson incentive
//
// holds exactly to the cent. Negative net company income is a valid result
// (a loss-making sale) and is not clamped.
//
// The caller is responsible for rejecting non-positive unit prices before
// invoking the engine. AdditionalIncentiveTax is carried on the snapshot for
// reproducibility but does not enter the canonical formula.
func Calculate(unitPrice decimal.Decimal, rates domain.RateSet) domain.AmountSet {
	companyCommission := unitPrice.Mul(rates.CompanyCommissionRate)
	salespersonCommission := unitPrice.Mul(rates.SalespersonCommissionRate)
	salespersonIncentive := unitPrice.Mul(rates.SalespersonIncentiveRate)
	managerCommission := unitPrice.Mul(rates.SalesManagerCommission)

	vat := companyCommission.Mul(rates.VATRate)
	salesTax := companyCommission.Mul(rates.SalesTaxRate)
	annualTax := companyCommission.Mul(rates.AnnualTaxRate)
	salespersonTax := salespersonCommission.Add(salespersonIncentive).Mul(rates.SalespersonTaxRate)
	managerTax := managerCommission.Mul(rates.SalesManagerTaxRate)

	amounts := domain.AmountSet{
		CompanyCommissionAmount:     round(companyCommission),
		SalespersonCommissionAmount: round(salespersonCommission),
		SalespersonIncentiveAmount:  round(salespersonIncentive),
		SalesManagerCommissionAmt:   round(managerCommission),
		VATAmount:                   round(vat),
		SalesTaxAmount:              round(salesTax),
		AnnualTaxAmount:             round(annualTax),
		SalespersonTaxAmount:        round(salespersonTax),
		SalesManagerTaxAmount:       round(managerTax),
	}

	amounts.NetCompanyIncome = amounts.CompanyCommissionAmount.
		Sub(amounts.VATAmount).
		Sub(amounts.SalesTaxAmount).
		Sub(amounts.AnnualTaxAmount).
		Sub(amounts.SalesManagerCommissionAmt).
		Sub(amounts.SalesManagerTaxAmount).
		Sub(amounts.SalespersonCommissionAmount).
		Sub(amounts.SalespersonIncentiveAmount)

	amounts.NetSalespersonIncome = amounts.SalespersonCommissionAmount.
		Add(amounts.SalespersonIncentiveAmount).
		Sub(amounts.SalespersonTaxAmount)

	amounts.NetSalesManagerIncome = amounts.SalesManagerCommissionAmt.
		Sub(amounts.SalesManagerTaxAmount)

	return amounts
}

// round applies the system-wide money rounding policy: half-up to two
// decimal places. Commission and tax bases are non-negative, so
// decimal.Round (half away from zero) is half-up here; the derived net
// incomes are exact differences of already-rounded values and need no
// further rounding.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
