package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/eskansoft/eskan_sales_app/internal/middleware"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSaleByID)
		sales.POST("/preview", h.previewCalculation)

		mutate := sales.Group("", middleware.RequireRole(domain.Role.CanManageSales))
		{
			mutate.POST("", h.createSale)
			mutate.PUT("/:id", h.updateSale)
			mutate.DELETE("/:id", h.deleteSale)
		}
	}
}

func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("unit_code", req.UnitCode))
	logger.Info("Received request to create sale")

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateUnitCode):
			logger.Warn("Attempted to create sale with duplicate unit code")
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Unit code '%s' is already sold", req.UnitCode)})
		case errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("No rate bundle for property type", slog.String("property_type", req.PropertyType))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("No rates configured for property type '%s'", req.PropertyType)})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConcurrencyConflict):
			logger.Warn("Concurrency conflict creating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Treasury is busy, please retry"})
		default:
			logger.Error("Failed to create sale in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		}
		return
	}

	logger.Info("Sale created successfully", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

func (h *saleHandler) updateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("sale_id", saleID), slog.String("updater_user_id", updaterUserID))
	logger.Info("Received request to update sale")

	sale, err := h.saleService.UpdateSale(c.Request.Context(), saleID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Sale not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		case errors.Is(err, apperrors.ErrDuplicateUnitCode):
			logger.Warn("Attempted to update sale to duplicate unit code")
			c.JSON(http.StatusConflict, gin.H{"error": "Unit code is already sold"})
		case errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("No rate bundle for property type")
			c.JSON(http.StatusBadRequest, gin.H{"error": "No rates configured for the requested property type"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConcurrencyConflict):
			logger.Warn("Concurrency conflict updating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Treasury is busy, please retry"})
		default:
			logger.Error("Failed to update sale in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale"})
		}
		return
	}

	logger.Info("Sale updated successfully")
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Deleter user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("sale_id", saleID), slog.String("deleter_user_id", deleterUserID))
	logger.Info("Received request to delete sale")

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID, deleterUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Sale not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		case errors.Is(err, apperrors.ErrConcurrencyConflict):
			logger.Warn("Concurrency conflict deleting sale", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Treasury is busy, please retry"})
		default:
			logger.Error("Failed to delete sale in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		}
		return
	}

	logger.Info("Sale deleted successfully")
	c.Status(http.StatusNoContent)
}

func (h *saleHandler) getSaleByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sale not found", slog.String("sale_id", saleID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		} else {
			logger.Error("Failed to get sale from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := paginationParams(c)

	sales, err := h.saleService.ListSales(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list sales from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

func (h *saleHandler) previewCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewCalculation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amounts, err := h.saleService.PreviewCalculation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("No rate bundle for preview", slog.String("property_type", req.PropertyType))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("No rates configured for property type '%s'", req.PropertyType)})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error in preview", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to preview calculation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview calculation"})
		}
		return
	}

	c.JSON(http.StatusOK, amounts)
}

// paginationParams reads limit/offset query params with sane bounds.
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
