package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
)

// reportingService serves the dashboard aggregates and cross-checks the
// ledger conservation invariant while it is at it.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	treasuryRepo  portsrepo.TreasuryRepositoryFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepositoryFacade,
	treasuryRepo portsrepo.TreasuryRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		treasuryRepo:  treasuryRepo,
		txnRepo:       txnRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetSummary(ctx context.Context, from *time.Time, to *time.Time) (*domain.SummaryReport, error) {
	logger := loggerFromCtx(ctx)

	summary, err := s.reportingRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	treasury, err := s.treasuryRepo.GetOrCreateTreasury(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load treasury: %w", err)
	}
	summary.CurrentBalance = treasury.CurrentBalance

	// Conservation check: the balance must equal the sum of all posted
	// transaction amounts. Drift means a write bypassed the units of work.
	postedSum, err := s.txnRepo.SumTransactionAmounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}
	if !postedSum.Equal(treasury.CurrentBalance) {
		logger.Error("Treasury balance drifted from transaction sum",
			slog.String("balance", treasury.CurrentBalance.String()),
			slog.String("transaction_sum", postedSum.String()),
		)
	}

	return summary, nil
}

func (s *reportingService) GetMonthlySales(ctx context.Context, year int) ([]domain.MonthlySalesReport, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	return s.reportingRepo.GetMonthlySales(ctx, year)
}
