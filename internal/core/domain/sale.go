package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents one real-estate transaction together with the rate snapshot
// it was priced with and the resulting amount breakdown.
//
// The snapshot fields are stored even when they match the property-type
// defaults so that historical calculations stay reproducible after the
// defaults change. Amount fields are never edited directly; they are always
// the output of a recalculation over (UnitPrice, Rates).
type Sale struct {
	SaleID           string          `json:"saleID"` // Primary Key (UUID)
	ClientName       string          `json:"clientName"`
	SaleDate         time.Time       `json:"saleDate"`
	UnitCode         string          `json:"unitCode"` // Globally unique
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	PropertyType     string          `json:"propertyType"`
	ProjectName      string          `json:"projectName"`     // Nullable
	SalespersonName  string          `json:"salespersonName"` // Nullable
	SalesManagerName string          `json:"salesManagerName"`
	Notes            string          `json:"notes"`

	Rates   RateSet   `json:"rates"`
	Amounts AmountSet `json:"amounts"`

	// TransactionID links the paired treasury transaction, empty when the
	// sale posted no transaction (net company income <= 0).
	TransactionID string `json:"transactionID,omitempty"`
	AuditFields
}
