package dto

import (
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TreasuryResponse defines the data returned for the treasury singleton.
type TreasuryResponse struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// ToTreasuryResponse converts a domain.Treasury to TreasuryResponse DTO.
func ToTreasuryResponse(t *domain.Treasury) TreasuryResponse {
	return TreasuryResponse{
		CurrentBalance: t.CurrentBalance,
		LastUpdated:    t.LastUpdated,
	}
}

// AdjustBalanceRequest adds to or subtracts from the treasury balance.
// Amount must be positive; the endpoint determines the direction.
type AdjustBalanceRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// SetBalanceRequest overwrites the treasury balance. Reason is mandatory so
// the adjustment transaction stays auditable.
type SetBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" binding:"required"`
}

// CreateTransactionRequest records a manual treasury transaction. Amount is
// signed: positive for income (DEPOSIT), negative for expense (EXPENSE).
type CreateTransactionRequest struct {
	Type            domain.TransactionType `json:"type" binding:"required,oneof=DEPOSIT EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Description     string                 `json:"description"`
	TransactionDate *string                `json:"transactionDate"` // YYYY-MM-DD, default today
}

// UpdateTransactionRequest edits a manual transaction. Sale-linked
// transactions are rejected; they only change through their sale.
type UpdateTransactionRequest struct {
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=DEPOSIT EXPENSE"`
	Amount      *decimal.Decimal        `json:"amount"`
	Description *string                 `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	Type            domain.TransactionType   `json:"type"`
	Amount          decimal.Decimal          `json:"amount"`
	Description     string                   `json:"description"`
	TransactionDate time.Time                `json:"transactionDate"`
	RelatedSaleID   string                   `json:"relatedSaleID,omitempty"`
	RelatedEntity   domain.RelatedEntityType `json:"relatedEntityType"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		Type:            t.Type,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		RelatedSaleID:   t.RelatedSaleID,
		RelatedEntity:   t.RelatedEntity,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return out
}
