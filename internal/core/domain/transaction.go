package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType categorizes a treasury transaction.
type TransactionType string

const (
	TxnSale       TransactionType = "SALE"
	TxnDeposit    TransactionType = "DEPOSIT"
	TxnExpense    TransactionType = "EXPENSE"
	TxnAdjustment TransactionType = "ADJUSTMENT"
)

// RelatedEntityType identifies what a transaction was posted for.
type RelatedEntityType string

const (
	RelatedSale   RelatedEntityType = "sale"
	RelatedManual RelatedEntityType = "manual"
)

// Transaction is a signed ledger entry against the treasury balance.
// Positive amounts are income, negative amounts are expense. The invariant
// maintained by the services is that the treasury balance always equals the
// sum of all transaction amounts.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"` // Signed; two decimal places
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transactionDate"`
	RelatedSaleID   string            `json:"relatedSaleID,omitempty"` // 1:1 with Sale when set
	RelatedEntity   RelatedEntityType `json:"relatedEntityType"`
	AuditFields
}
