package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treasury is the company's single running cash balance. Exactly one row
// exists; it is created lazily with a zero balance on first access, and every
// mutation stamps LastUpdated.
type Treasury struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
