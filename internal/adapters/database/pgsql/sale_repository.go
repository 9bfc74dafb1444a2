package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
)

// PgxSaleRepository persists sales. The *Unit methods run the sale row, the
// paired transaction row, and the treasury balance delta inside one database
// transaction, so the triad commits or rolls back as a whole.
type PgxSaleRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSaleRepository creates a new repository for sale data.
func NewPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{pool: pool}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `
	sale_id, client_name, sale_date, unit_code, unit_price, property_type,
	project_name, salesperson_name, sales_manager_name, notes,
	company_commission_rate, salesperson_commission_rate,
	salesperson_incentive_rate, additional_incentive_tax_rate,
	vat_rate, sales_tax_rate, annual_tax_rate,
	salesperson_tax_rate, sales_manager_tax_rate, sales_manager_commission_rate,
	company_commission_amount, salesperson_commission_amount,
	salesperson_incentive_amount, sales_manager_commission_amount,
	vat_amount, sales_tax_amount, annual_tax_amount,
	salesperson_tax_amount, sales_manager_tax_amount,
	net_company_income, net_salesperson_income, net_sales_manager_income,
	transaction_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func saleArgs(s domain.Sale) []any {
	return []any{
		s.SaleID, s.ClientName, s.SaleDate, s.UnitCode, s.UnitPrice, s.PropertyType,
		s.ProjectName, s.SalespersonName, s.SalesManagerName, s.Notes,
		s.Rates.CompanyCommissionRate, s.Rates.SalespersonCommissionRate,
		s.Rates.SalespersonIncentiveRate, s.Rates.AdditionalIncentiveTax,
		s.Rates.VATRate, s.Rates.SalesTaxRate, s.Rates.AnnualTaxRate,
		s.Rates.SalespersonTaxRate, s.Rates.SalesManagerTaxRate, s.Rates.SalesManagerCommission,
		s.Amounts.CompanyCommissionAmount, s.Amounts.SalespersonCommissionAmount,
		s.Amounts.SalespersonIncentiveAmount, s.Amounts.SalesManagerCommissionAmt,
		s.Amounts.VATAmount, s.Amounts.SalesTaxAmount, s.Amounts.AnnualTaxAmount,
		s.Amounts.SalespersonTaxAmount, s.Amounts.SalesManagerTaxAmount,
		s.Amounts.NetCompanyIncome, s.Amounts.NetSalespersonIncome, s.Amounts.NetSalesManagerIncome,
		nullableString(s.TransactionID),
		s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
	}
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var s domain.Sale
	var transactionID *string
	err := row.Scan(
		&s.SaleID, &s.ClientName, &s.SaleDate, &s.UnitCode, &s.UnitPrice, &s.PropertyType,
		&s.ProjectName, &s.SalespersonName, &s.SalesManagerName, &s.Notes,
		&s.Rates.CompanyCommissionRate, &s.Rates.SalespersonCommissionRate,
		&s.Rates.SalespersonIncentiveRate, &s.Rates.AdditionalIncentiveTax,
		&s.Rates.VATRate, &s.Rates.SalesTaxRate, &s.Rates.AnnualTaxRate,
		&s.Rates.SalespersonTaxRate, &s.Rates.SalesManagerTaxRate, &s.Rates.SalesManagerCommission,
		&s.Amounts.CompanyCommissionAmount, &s.Amounts.SalespersonCommissionAmount,
		&s.Amounts.SalespersonIncentiveAmount, &s.Amounts.SalesManagerCommissionAmt,
		&s.Amounts.VATAmount, &s.Amounts.SalesTaxAmount, &s.Amounts.AnnualTaxAmount,
		&s.Amounts.SalespersonTaxAmount, &s.Amounts.SalesManagerTaxAmount,
		&s.Amounts.NetCompanyIncome, &s.Amounts.NetSalespersonIncome, &s.Amounts.NetSalesManagerIncome,
		&transactionID,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	if transactionID != nil {
		s.TransactionID = *transactionID
	}
	return &s, nil
}

var salePlaceholders = placeholders(37)

// placeholders renders "$1, $2, ..., $n".
func placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		out += fmt.Sprintf("$%d", i)
	}
	return out
}

// CreateSaleUnit inserts the sale, its optional paired transaction, and the
// treasury delta as one unit of work.
func (r *PgxSaleRepository) CreateSaleUnit(ctx context.Context, sale domain.Sale, txn *domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// The transaction row goes first: the sale row carries the FK to it.
	if txn != nil {
		if err := insertTransaction(ctx, tx, *txn); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES (`+salePlaceholders+`);
	`, saleArgs(sale)...)
	if err != nil {
		return mapPgError(err)
	}

	if txn != nil || !balanceDelta.IsZero() {
		if _, err := applyTreasuryDelta(ctx, tx, balanceDelta, time.Now()); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sale %s: %w", sale.SaleID, mapPgError(err))
	}
	return nil
}

// UpdateSaleUnit rewrites the sale, reconciles the paired transaction, and
// applies the net treasury delta as one unit of work.
func (r *PgxSaleRepository) UpdateSaleUnit(ctx context.Context, sale domain.Sale, txn *domain.Transaction, removeTxnID string, balanceDelta decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if txn != nil {
		// Upsert keyed by transaction_id: an edit either rewrites the
		// existing paired entry in place or posts a fresh one.
		_, err = tx.Exec(ctx, `
			INSERT INTO transactions (`+transactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (transaction_id) DO UPDATE
			SET amount = EXCLUDED.amount,
			    description = EXCLUDED.description,
			    transaction_date = EXCLUDED.transaction_date,
			    last_updated_at = EXCLUDED.last_updated_at,
			    last_updated_by = EXCLUDED.last_updated_by;
		`,
			txn.TransactionID, txn.Type, txn.Amount, txn.Description, txn.TransactionDate,
			nullableString(txn.RelatedSaleID), txn.RelatedEntity,
			txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
		)
		if err != nil {
			return mapPgError(err)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE sales SET
			client_name = $2, sale_date = $3, unit_code = $4, unit_price = $5,
			property_type = $6, project_name = $7, salesperson_name = $8,
			sales_manager_name = $9, notes = $10,
			company_commission_rate = $11, salesperson_commission_rate = $12,
			salesperson_incentive_rate = $13, additional_incentive_tax_rate = $14,
			vat_rate = $15, sales_tax_rate = $16, annual_tax_rate = $17,
			salesperson_tax_rate = $18, sales_manager_tax_rate = $19,
			sales_manager_commission_rate = $20,
			company_commission_amount = $21, salesperson_commission_amount = $22,
			salesperson_incentive_amount = $23, sales_manager_commission_amount = $24,
			vat_amount = $25, sales_tax_amount = $26, annual_tax_amount = $27,
			salesperson_tax_amount = $28, sales_manager_tax_amount = $29,
			net_company_income = $30, net_salesperson_income = $31,
			net_sales_manager_income = $32,
			transaction_id = $33,
			last_updated_at = $34, last_updated_by = $35
		WHERE sale_id = $1;
	`,
		sale.SaleID, sale.ClientName, sale.SaleDate, sale.UnitCode, sale.UnitPrice,
		sale.PropertyType, sale.ProjectName, sale.SalespersonName,
		sale.SalesManagerName, sale.Notes,
		sale.Rates.CompanyCommissionRate, sale.Rates.SalespersonCommissionRate,
		sale.Rates.SalespersonIncentiveRate, sale.Rates.AdditionalIncentiveTax,
		sale.Rates.VATRate, sale.Rates.SalesTaxRate, sale.Rates.AnnualTaxRate,
		sale.Rates.SalespersonTaxRate, sale.Rates.SalesManagerTaxRate,
		sale.Rates.SalesManagerCommission,
		sale.Amounts.CompanyCommissionAmount, sale.Amounts.SalespersonCommissionAmount,
		sale.Amounts.SalespersonIncentiveAmount, sale.Amounts.SalesManagerCommissionAmt,
		sale.Amounts.VATAmount, sale.Amounts.SalesTaxAmount, sale.Amounts.AnnualTaxAmount,
		sale.Amounts.SalespersonTaxAmount, sale.Amounts.SalesManagerTaxAmount,
		sale.Amounts.NetCompanyIncome, sale.Amounts.NetSalespersonIncome,
		sale.Amounts.NetSalesManagerIncome,
		nullableString(sale.TransactionID),
		sale.LastUpdatedAt, sale.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if removeTxnID != "" {
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, removeTxnID); err != nil {
			return mapPgError(err)
		}
	}

	if _, err := applyTreasuryDelta(ctx, tx, balanceDelta, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit update of sale %s: %w", sale.SaleID, mapPgError(err))
	}
	return nil
}

// DeleteSaleUnit removes the sale, its paired transaction, and reverses the
// treasury effect as one unit of work.
func (r *PgxSaleRepository) DeleteSaleUnit(ctx context.Context, saleID string, txnID string, balanceDelta decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if txnID != "" {
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txnID); err != nil {
			return mapPgError(err)
		}
	}

	if _, err := applyTreasuryDelta(ctx, tx, balanceDelta, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of sale %s: %w", saleID, mapPgError(err))
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1;`, saleID)
	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	return sale, nil
}

func (r *PgxSaleRepository) FindSaleByUnitCode(ctx context.Context, unitCode string) (*domain.Sale, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE unit_code = $1;`, unitCode)
	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by unit code %s: %w", unitCode, err)
	}
	return sale, nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", mapPgError(err))
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, *sale)
	}
	return sales, rows.Err()
}
