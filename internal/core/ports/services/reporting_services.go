package services

import (
	"context"
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
)

// ReportingSvcFacade serves the read-only dashboard aggregates.
type ReportingSvcFacade interface {
	GetSummary(ctx context.Context, from *time.Time, to *time.Time) (*domain.SummaryReport, error)
	GetMonthlySales(ctx context.Context, year int) ([]domain.MonthlySalesReport, error)
}
