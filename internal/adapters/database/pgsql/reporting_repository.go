package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
)

// PgxReportingRepository runs the read-only aggregations behind the dashboard.
type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportingRepository creates a new repository for reporting queries.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetSalesSummary(ctx context.Context, from *time.Time, to *time.Time) (*domain.SummaryReport, error) {
	var report domain.SummaryReport
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(unit_price), 0),
			COALESCE(SUM(company_commission_amount), 0),
			COALESCE(SUM(net_company_income), 0),
			(SELECT COUNT(*) FROM transactions
			 WHERE ($1::timestamptz IS NULL OR transaction_date >= $1)
			   AND ($2::timestamptz IS NULL OR transaction_date <= $2))
		FROM sales
		WHERE ($1::timestamptz IS NULL OR sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR sale_date <= $2);
	`, from, to).Scan(
		&report.SalesCount,
		&report.TotalUnitPriceVolume,
		&report.TotalCompanyCommission,
		&report.TotalNetCompanyIncome,
		&report.TransactionCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales summary: %w", mapPgError(err))
	}
	return &report, nil
}

func (r *PgxReportingRepository) GetMonthlySales(ctx context.Context, year int) ([]domain.MonthlySalesReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			to_char(sale_date, 'YYYY-MM'),
			COUNT(*),
			COALESCE(SUM(net_company_income), 0)
		FROM sales
		WHERE EXTRACT(YEAR FROM sale_date) = $1
		GROUP BY 1
		ORDER BY 1;
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sales: %w", mapPgError(err))
	}
	defer rows.Close()

	reports := []domain.MonthlySalesReport{}
	for rows.Next() {
		var m domain.MonthlySalesReport
		if err := rows.Scan(&m.Month, &m.SalesCount, &m.NetCompanyIncome); err != nil {
			return nil, fmt.Errorf("failed to scan monthly report: %w", err)
		}
		reports = append(reports, m)
	}
	return reports, rows.Err()
}
