package services

import (
	"context"

	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
)

// SaleSvcFacade orchestrates sale creation, mutation, and previewing.
// Create/Update/Delete each run as one unit of work over the sale row, its
// paired transaction, and the treasury balance.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error)
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, updaterUserID string) (*domain.Sale, error)
	DeleteSale(ctx context.Context, saleID string, deleterUserID string) error
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error)

	// PreviewCalculation returns the amount breakdown for a hypothetical
	// sale without persisting anything.
	PreviewCalculation(ctx context.Context, req dto.PreviewRequest) (*domain.AmountSet, error)
}
