package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portsrepo "github.com/eskansoft/eskan_sales_app/internal/core/ports/repositories"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/eskansoft/eskan_sales_app/internal/utils/finance"
	"github.com/eskansoft/eskan_sales_app/internal/utils/numeric"
)

const saleDateLayout = "2006-01-02"

// saleService orchestrates the sale lifecycle: resolve rates, run the
// calculation engine, and persist the sale, its paired transaction, and the
// treasury delta as one unit of work.
type saleService struct {
	saleRepo portsrepo.SaleRepositoryFacade
	rateSvc  portssvc.RateSvcFacade
	retry    RetryPolicy
}

// NewSaleService creates a new sale service.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, rateSvc portssvc.RateSvcFacade, retry RetryPolicy) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo: saleRepo,
		rateSvc:  rateSvc,
		retry:    retry,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// saleTransactionDescription builds the ledger entry text for a sale. This
// description is the only audit trail a transaction carries, so it names the
// client and the unit code.
func saleTransactionDescription(clientName, unitCode string) string {
	return fmt.Sprintf("Property sale - %s - unit code %s", clientName, unitCode)
}

func parseSaleDate(value string) (time.Time, error) {
	d, err := time.Parse(saleDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, value)
	}
	return d, nil
}

// CreateSale validates the request, resolves rates, computes the amount
// breakdown, and persists the sale. A paired SALE transaction is posted and
// the treasury credited only when the net company income is positive; a
// loss-making sale is recorded on the sale alone.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	logger := loggerFromCtx(ctx)

	if strings.TrimSpace(req.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.UnitCode) == "" {
		return nil, fmt.Errorf("%w: unit code is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.PropertyType) == "" {
		return nil, fmt.Errorf("%w: property type is required", apperrors.ErrValidation)
	}
	if !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidPrice, req.UnitPrice)
	}
	saleDate, err := parseSaleDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnitCodeAvailable(ctx, req.UnitCode, ""); err != nil {
		return nil, err
	}

	rates, err := s.rateSvc.ResolveRates(ctx, req.PropertyType, req.Rates)
	if err != nil {
		return nil, err
	}
	amounts := finance.Calculate(req.UnitPrice, rates)

	now := time.Now()
	sale := domain.Sale{
		SaleID:           uuid.NewString(),
		ClientName:       req.ClientName,
		SaleDate:         saleDate,
		UnitCode:         req.UnitCode,
		UnitPrice:        req.UnitPrice.Round(2),
		PropertyType:     req.PropertyType,
		ProjectName:      req.ProjectName,
		SalespersonName:  req.SalespersonName,
		SalesManagerName: req.SalesManagerName,
		Notes:            req.Notes,
		Rates:            rates,
		Amounts:          amounts,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var txn *domain.Transaction
	balanceDelta := decimal.Zero
	if amounts.NetCompanyIncome.IsPositive() {
		txn = s.buildSaleTransaction(&sale, now, creatorUserID)
		sale.TransactionID = txn.TransactionID
		balanceDelta = amounts.NetCompanyIncome
	}

	err = retryOnConflict(ctx, s.retry, func() error {
		return s.saleRepo.CreateSaleUnit(ctx, sale, txn, balanceDelta)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Unique index race on unit_code; same outcome as the pre-check.
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateUnitCode, req.UnitCode)
		}
		logger.Error("Failed to persist sale unit", slog.String("unit_code", req.UnitCode), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("unit_code", sale.UnitCode),
		slog.String("net_company_income", amounts.NetCompanyIncome.String()),
		slog.Bool("transaction_posted", txn != nil),
	)
	return &sale, nil
}

// UpdateSale recomputes the sale from its (possibly changed) inputs and
// reconciles the treasury: the old posted delta is reversed and the new one
// applied inside the same database transaction, so no reader observes the
// intermediate state.
func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, updaterUserID string) (*domain.Sale, error) {
	logger := loggerFromCtx(ctx)

	existing, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale := *existing

	if req.ClientName != nil {
		if strings.TrimSpace(*req.ClientName) == "" {
			return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
		}
		sale.ClientName = *req.ClientName
	}
	if req.SaleDate != nil {
		saleDate, err := parseSaleDate(*req.SaleDate)
		if err != nil {
			return nil, err
		}
		sale.SaleDate = saleDate
	}
	if req.UnitCode != nil && *req.UnitCode != sale.UnitCode {
		if err := s.ensureUnitCodeAvailable(ctx, *req.UnitCode, sale.SaleID); err != nil {
			return nil, err
		}
		sale.UnitCode = *req.UnitCode
	}
	if req.UnitPrice != nil {
		if !req.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidPrice, req.UnitPrice)
		}
		sale.UnitPrice = req.UnitPrice.Round(2)
	}
	if req.PropertyType != nil {
		if strings.TrimSpace(*req.PropertyType) == "" {
			return nil, fmt.Errorf("%w: property type is required", apperrors.ErrValidation)
		}
		sale.PropertyType = *req.PropertyType
	}
	if req.ProjectName != nil {
		sale.ProjectName = *req.ProjectName
	}
	if req.SalespersonName != nil {
		sale.SalespersonName = *req.SalespersonName
	}
	if req.SalesManagerName != nil {
		sale.SalesManagerName = *req.SalesManagerName
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
	}

	// Re-resolve the snapshot when the property type or any rate changed;
	// otherwise the stored snapshot keeps pricing the sale.
	if req.PropertyType != nil || req.Rates != nil {
		rates, err := s.rateSvc.ResolveRates(ctx, sale.PropertyType, req.Rates)
		if err != nil {
			return nil, err
		}
		sale.Rates = rates
	}
	sale.Amounts = finance.Calculate(sale.UnitPrice, sale.Rates)

	// Old treasury effect: the previously posted net income, zero when the
	// sale never posted a transaction.
	oldDelta := decimal.Zero
	if existing.TransactionID != "" {
		oldDelta = existing.Amounts.NetCompanyIncome
	}
	newDelta := decimal.Zero
	if sale.Amounts.NetCompanyIncome.IsPositive() {
		newDelta = sale.Amounts.NetCompanyIncome
	}

	now := time.Now()
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = updaterUserID

	var txn *domain.Transaction
	removeTxnID := ""
	switch {
	case newDelta.IsPositive() && existing.TransactionID != "":
		// Update the paired transaction in place.
		txn = s.buildSaleTransaction(&sale, now, updaterUserID)
		txn.TransactionID = existing.TransactionID
		sale.TransactionID = existing.TransactionID
	case newDelta.IsPositive():
		txn = s.buildSaleTransaction(&sale, now, updaterUserID)
		sale.TransactionID = txn.TransactionID
	case existing.TransactionID != "":
		// The edit turned a profitable sale into a loss; retire its entry.
		removeTxnID = existing.TransactionID
		sale.TransactionID = ""
	}

	balanceDelta := newDelta.Sub(oldDelta)
	err = retryOnConflict(ctx, s.retry, func() error {
		return s.saleRepo.UpdateSaleUnit(ctx, sale, txn, removeTxnID, balanceDelta)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateUnitCode, sale.UnitCode)
		}
		logger.Error("Failed to update sale unit", slog.String("sale_id", saleID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Sale updated",
		slog.String("sale_id", sale.SaleID),
		slog.String("balance_delta", balanceDelta.String()),
	)
	return &sale, nil
}

// DeleteSale reverses the sale's treasury effect (when one was posted) and
// removes the sale together with its paired transaction.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, deleterUserID string) error {
	logger := loggerFromCtx(ctx)

	existing, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return err
	}

	balanceDelta := decimal.Zero
	if existing.TransactionID != "" {
		balanceDelta = existing.Amounts.NetCompanyIncome.Neg()
	}

	err = retryOnConflict(ctx, s.retry, func() error {
		return s.saleRepo.DeleteSaleUnit(ctx, existing.SaleID, existing.TransactionID, balanceDelta)
	})
	if err != nil {
		logger.Error("Failed to delete sale unit", slog.String("sale_id", saleID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Sale deleted",
		slog.String("sale_id", saleID),
		slog.String("deleted_by", deleterUserID),
		slog.String("balance_delta", balanceDelta.String()),
	)
	return nil
}

func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

func (s *saleService) ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.saleRepo.ListSales(ctx, limit, offset)
}

// PreviewCalculation resolves rates and runs the engine without touching the
// store. When the request marks its explicit rates as percentages they are
// converted to ratios here, at the boundary, and nowhere else.
func (s *saleService) PreviewCalculation(ctx context.Context, req dto.PreviewRequest) (*domain.AmountSet, error) {
	if !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidPrice, req.UnitPrice)
	}

	overrides := req.Rates
	if req.RatesArePercent && overrides != nil {
		converted := convertOverridesToRatios(*overrides)
		overrides = &converted
	}

	rates, err := s.rateSvc.ResolveRates(ctx, req.PropertyType, overrides)
	if err != nil {
		return nil, err
	}
	amounts := finance.Calculate(req.UnitPrice, rates)
	return &amounts, nil
}

// ensureUnitCodeAvailable fails with ErrDuplicateUnitCode when another sale
// (excluding excludeSaleID) already uses unitCode.
func (s *saleService) ensureUnitCodeAvailable(ctx context.Context, unitCode string, excludeSaleID string) error {
	found, err := s.saleRepo.FindSaleByUnitCode(ctx, unitCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check unit code %s: %w", unitCode, err)
	}
	if found.SaleID == excludeSaleID {
		return nil
	}
	return fmt.Errorf("%w: %s", apperrors.ErrDuplicateUnitCode, unitCode)
}

func (s *saleService) buildSaleTransaction(sale *domain.Sale, now time.Time, userID string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            domain.TxnSale,
		Amount:          sale.Amounts.NetCompanyIncome,
		Description:     saleTransactionDescription(sale.ClientName, sale.UnitCode),
		TransactionDate: now,
		RelatedSaleID:   sale.SaleID,
		RelatedEntity:   domain.RelatedSale,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// convertOverridesToRatios divides every supplied override by 100.
func convertOverridesToRatios(o dto.RateOverrides) dto.RateOverrides {
	conv := func(d *decimal.Decimal) *decimal.Decimal {
		if d == nil {
			return nil
		}
		r := numeric.RatioFromPercent(*d)
		return &r
	}
	return dto.RateOverrides{
		CompanyCommissionRate:     conv(o.CompanyCommissionRate),
		SalespersonCommissionRate: conv(o.SalespersonCommissionRate),
		SalespersonIncentiveRate:  conv(o.SalespersonIncentiveRate),
		AdditionalIncentiveTax:    conv(o.AdditionalIncentiveTax),
		VATRate:                   conv(o.VATRate),
		SalesTaxRate:              conv(o.SalesTaxRate),
		AnnualTaxRate:             conv(o.AnnualTaxRate),
		SalespersonTaxRate:        conv(o.SalespersonTaxRate),
		SalesManagerTaxRate:       conv(o.SalesManagerTaxRate),
		SalesManagerCommission:    conv(o.SalesManagerCommission),
	}
}
