package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateAllZeroRates(t *testing.T) {
	amounts := Calculate(d("1000000"), domain.RateSet{})

	// With every rate at zero the whole breakdown must be zero.
	assert.True(t, amounts.CompanyCommissionAmount.IsZero(), "company commission should be zero")
	assert.True(t, amounts.SalespersonCommissionAmount.IsZero(), "salesperson commission should be zero")
	assert.True(t, amounts.SalespersonIncentiveAmount.IsZero(), "salesperson incentive should be zero")
	assert.True(t, amounts.SalesManagerCommissionAmt.IsZero(), "manager commission should be zero")
	assert.True(t, amounts.VATAmount.IsZero(), "vat should be zero")
	assert.True(t, amounts.SalesTaxAmount.IsZero(), "sales tax should be zero")
	assert.True(t, amounts.AnnualTaxAmount.IsZero(), "annual tax should be zero")
	assert.True(t, amounts.SalespersonTaxAmount.IsZero(), "salesperson tax should be zero")
	assert.True(t, amounts.SalesManagerTaxAmount.IsZero(), "manager tax should be zero")
	assert.True(t, amounts.NetCompanyIncome.IsZero(), "net company income should be zero")
	assert.True(t, amounts.NetSalespersonIncome.IsZero(), "net salesperson income should be zero")
	assert.True(t, amounts.NetSalesManagerIncome.IsZero(), "net manager income should be zero")
}

func TestCalculateLossMakingSale(t *testing.T) {
	// A heavily taxed sale where the company nets a loss. The loss must come
	// out exactly and must not be clamped to zero.
	rates := domain.RateSet{
		CompanyCommissionRate:     d("0.05"),
		SalespersonCommissionRate: d("0.02"),
		SalespersonIncentiveRate:  d("0.01"),
		VATRate:                   d("0.14"),
		SalesTaxRate:              d("0.05"),
		AnnualTaxRate:             d("0.225"),
		SalespersonTaxRate:        d("0.10"),
		SalesManagerTaxRate:       d("0.10"),
	}

	amounts := Calculate(d("1000000"), rates)

	assert.True(t, amounts.CompanyCommissionAmount.Equal(d("50000.00")))
	assert.True(t, amounts.SalespersonCommissionAmount.Equal(d("20000.00")))
	assert.True(t, amounts.SalespersonIncentiveAmount.Equal(d("10000.00")))
	assert.True(t, amounts.VATAmount.Equal(d("7000.00")))
	assert.True(t, amounts.SalesTaxAmount.Equal(d("2500.00")))
	assert.True(t, amounts.AnnualTaxAmount.Equal(d("11250.00")))
	assert.True(t, amounts.SalespersonTaxAmount.Equal(d("3000.00")))
	assert.True(t, amounts.NetCompanyIncome.Equal(d("-750.00")),
		"expected a 750.00 loss, got %s", amounts.NetCompanyIncome)
	assert.True(t, amounts.NetSalespersonIncome.Equal(d("27000.00")))
}

func TestCalculateDecompositionInvariant(t *testing.T) {
	// The net company income must reconcile exactly, to the cent, against
	// the rounded components, including for awkward prices that round.
	rates := domain.RateSet{
		CompanyCommissionRate:     d("0.025"),
		SalespersonCommissionRate: d("0.0125"),
		SalespersonIncentiveRate:  d("0.005"),
		VATRate:                   d("0.14"),
		SalesTaxRate:              d("0.05"),
		AnnualTaxRate:             d("0.225"),
		SalespersonTaxRate:        d("0.10"),
		SalesManagerTaxRate:       d("0.10"),
		SalesManagerCommission:    d("0.003"),
	}

	for _, price := range []string{"123456.78", "999999.99", "1", "3333.33", "750001.01"} {
		amounts := Calculate(d(price), rates)

		recomposed := amounts.CompanyCommissionAmount.
			Sub(amounts.VATAmount).
			Sub(amounts.SalesTaxAmount).
			Sub(amounts.AnnualTaxAmount).
			Sub(amounts.SalesManagerCommissionAmt).
			Sub(amounts.SalesManagerTaxAmount).
			Sub(amounts.SalespersonCommissionAmount).
			Sub(amounts.SalespersonIncentiveAmount)

		require.True(t, amounts.NetCompanyIncome.Equal(recomposed),
			"decomposition drift for price %s: net %s vs recomposed %s",
			price, amounts.NetCompanyIncome, recomposed)
	}
}

func TestCalculateRoundsHalfUp(t *testing.T) {
	// 333.33 * 0.05 = 16.6665, which must round up to 16.67.
	rates := domain.RateSet{CompanyCommissionRate: d("0.05")}
	amounts := Calculate(d("333.33"), rates)
	assert.True(t, amounts.CompanyCommissionAmount.Equal(d("16.67")),
		"expected 16.67, got %s", amounts.CompanyCommissionAmount)
}

func TestCalculateTwoDecimalPlaces(t *testing.T) {
	rates := domain.RateSet{
		CompanyCommissionRate: d("0.033333"),
		VATRate:               d("0.14"),
	}
	amounts := Calculate(d("98765.43"), rates)

	assert.LessOrEqual(t, int(amounts.CompanyCommissionAmount.Exponent()*-1), 2)
	assert.LessOrEqual(t, int(amounts.VATAmount.Exponent()*-1), 2)
	assert.LessOrEqual(t, int(amounts.NetCompanyIncome.Exponent()*-1), 2)
}

func TestCalculateSalespersonTaxOnCombinedEarnings(t *testing.T) {
	// Salesperson tax applies to commission plus incentive, not each alone.
	rates := domain.RateSet{
		SalespersonCommissionRate: d("0.02"),
		SalespersonIncentiveRate:  d("0.01"),
		SalespersonTaxRate:        d("0.10"),
	}
	amounts := Calculate(d("500000"), rates)

	assert.True(t, amounts.SalespersonTaxAmount.Equal(d("1500.00")))
	assert.True(t, amounts.NetSalespersonIncome.Equal(d("13500.00")))
}
