package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/eskansoft/eskan_sales_app/internal/middleware"
)

// ratesHandler handles HTTP requests for property-type rate bundles.
type ratesHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRatesHandler(rs portssvc.RateSvcFacade) *ratesHandler {
	return &ratesHandler{rateService: rs}
}

// registerRatesRoutes registers routes related to rate bundles. Mutations
// are admin-only: changing defaults affects every future sale.
func registerRatesRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRatesHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:propertyType", h.getRatesByPropertyType)

		admin := rates.Group("", middleware.RequireRole(domain.Role.CanManageUsers))
		{
			admin.POST("", h.createRates)
			admin.PUT("/:propertyType", h.updateRates)
			admin.DELETE("/:propertyType", h.deleteRates)
		}
	}
}

func (h *ratesHandler) createRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("property_type", req.PropertyType))
	logger.Info("Received request to create rate bundle")

	rates, err := h.rateService.CreateRates(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Attempted to create duplicate rate bundle")
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Rates for property type '%s' already exist", req.PropertyType)})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating rate bundle", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create rate bundle in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rates"})
		}
		return
	}

	logger.Info("Rate bundle created successfully", slog.String("rates_id", rates.RatesID))
	c.JSON(http.StatusCreated, dto.ToRatesResponse(rates))
}

func (h *ratesHandler) getRatesByPropertyType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyType := c.Param("propertyType")

	rates, err := h.rateService.GetRatesByPropertyType(c.Request.Context(), propertyType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrRateNotFound) {
			logger.Warn("Rate bundle not found", slog.String("property_type", propertyType))
			c.JSON(http.StatusNotFound, gin.H{"error": "Rates not found"})
		} else {
			logger.Error("Failed to get rate bundle from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRatesResponse(rates))
}

func (h *ratesHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bundles, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list rate bundles from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRatesResponses(bundles))
}

func (h *ratesHandler) updateRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyType := c.Param("propertyType")

	var req dto.UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("property_type", propertyType), slog.String("updater_user_id", updaterUserID))
	logger.Info("Received request to update rate bundle")

	rates, err := h.rateService.UpdateRates(c.Request.Context(), propertyType, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("Rate bundle not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Rates not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating rate bundle", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update rate bundle in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rates"})
		}
		return
	}

	logger.Info("Rate bundle updated successfully")
	c.JSON(http.StatusOK, dto.ToRatesResponse(rates))
}

func (h *ratesHandler) deleteRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	propertyType := c.Param("propertyType")

	logger = logger.With(slog.String("property_type", propertyType))
	logger.Info("Received request to delete rate bundle")

	if err := h.rateService.DeleteRates(c.Request.Context(), propertyType); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrRateNotFound) {
			logger.Warn("Rate bundle not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Rates not found"})
		} else {
			logger.Error("Failed to delete rate bundle in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rates"})
		}
		return
	}

	logger.Info("Rate bundle deleted successfully")
	c.Status(http.StatusNoContent)
}
