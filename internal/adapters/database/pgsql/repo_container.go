package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		SaleRepo:        NewPgxSaleRepository(pool),
		TransactionRepo: NewPgxTransactionRepository(pool),
		TreasuryRepo:    NewPgxTreasuryRepository(pool),
		RatesRepo:       NewPgxRatesRepository(pool),
		UserRepo:        NewPgxUserRepository(pool),
		ReportingRepo:   NewPgxReportingRepository(pool),
	}
}
