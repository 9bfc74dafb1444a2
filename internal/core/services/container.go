package services

import (
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/pkg/config"
)

// NewContainer creates the service container with properly initialized
// dependencies. The rate service has no service dependencies and is built
// first; the sale service consumes it for snapshot resolution.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	retry := RetryPolicy{
		MaxAttempts: cfg.TreasuryMaxRetries,
		Backoff:     cfg.TreasuryRetryBackoff,
	}
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}

	container := &portssvc.ServiceContainer{}
	container.Rates = NewRateService(repos.RatesRepo)
	container.Sale = NewSaleService(repos.SaleRepo, container.Rates, retry)
	container.Treasury = NewTreasuryService(repos.TreasuryRepo, retry)
	container.Transaction = NewTransactionService(repos.TransactionRepo, retry)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TreasuryRepo, repos.TransactionRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	return container
}
