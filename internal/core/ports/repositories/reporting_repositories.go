package repositories

import (
	"context"
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
)

// ReportingRepositoryFacade runs the read-only aggregation queries backing
// the dashboard endpoints.
type ReportingRepositoryFacade interface {
	// GetSalesSummary aggregates sales and the transaction count between
	// from and to (either may be nil, meaning unbounded); both use the same
	// window. The treasury balance is filled in by the service.
	GetSalesSummary(ctx context.Context, from *time.Time, to *time.Time) (*domain.SummaryReport, error)
	GetMonthlySales(ctx context.Context, year int) ([]domain.MonthlySalesReport, error)
}
