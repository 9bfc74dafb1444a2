package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eskansoft/eskan_sales_app/internal/apperrors"
	"github.com/eskansoft/eskan_sales_app/internal/core/domain"
	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/dto"
	"github.com/eskansoft/eskan_sales_app/internal/middleware"
)

// treasuryHandler handles HTTP requests for the treasury singleton.
//
// The add/subtract endpoints go through the transaction service rather than
// the raw balance mutators, so every manual balance movement leaves a ledger
// entry and the balance stays equal to the sum of posted amounts.
type treasuryHandler struct {
	treasuryService    portssvc.TreasurySvcFacade
	transactionService portssvc.TransactionSvcFacade
}

func newTreasuryHandler(ts portssvc.TreasurySvcFacade, txs portssvc.TransactionSvcFacade) *treasuryHandler {
	return &treasuryHandler{treasuryService: ts, transactionService: txs}
}

// registerTreasuryRoutes registers routes related to the treasury.
func registerTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newTreasuryHandler(treasuryService, transactionService)

	treasury := rg.Group("/treasury")
	{
		treasury.GET("", h.getTreasury)

		mutate := treasury.Group("", middleware.RequireRole(domain.Role.CanManageSales))
		{
			mutate.POST("/add", h.addFunds)
			mutate.POST("/subtract", h.subtractFunds)
			mutate.POST("/set", h.setBalance)
		}
	}
}

func (h *treasuryHandler) getTreasury(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	treasury, err := h.treasuryService.GetTreasury(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get treasury from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve treasury"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTreasuryResponse(treasury))
}

func (h *treasuryHandler) addFunds(c *gin.Context) {
	h.postManualMovement(c, domain.TxnDeposit)
}

func (h *treasuryHandler) subtractFunds(c *gin.Context) {
	h.postManualMovement(c, domain.TxnExpense)
}

// postManualMovement posts a DEPOSIT or EXPENSE for the request amount. The
// request amount is always positive; the type fixes the sign.
func (h *treasuryHandler) postManualMovement(c *gin.Context, txnType domain.TransactionType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for treasury movement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	amount := req.Amount
	if txnType == domain.TxnExpense {
		amount = amount.Neg()
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("type", string(txnType)))
	logger.Info("Received request to move treasury funds", slog.String("amount", amount.String()))

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), dto.CreateTransactionRequest{
		Type:        txnType,
		Amount:      amount,
		Description: req.Description,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting treasury movement", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConcurrencyConflict):
			logger.Warn("Concurrency conflict posting treasury movement")
			c.JSON(http.StatusConflict, gin.H{"error": "Treasury is busy, please retry"})
		default:
			logger.Error("Failed to post treasury movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update treasury"})
		}
		return
	}

	logger.Info("Treasury movement posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *treasuryHandler) setBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to set treasury balance", slog.String("amount", req.Amount.String()))

	treasury, err := h.treasuryService.Set(c.Request.Context(), req.Amount, req.Reason, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error setting balance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConcurrencyConflict):
			logger.Warn("Concurrency conflict setting balance")
			c.JSON(http.StatusConflict, gin.H{"error": "Treasury is busy, please retry"})
		default:
			logger.Error("Failed to set treasury balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set treasury balance"})
		}
		return
	}

	logger.Info("Treasury balance set successfully")
	c.JSON(http.StatusOK, dto.ToTreasuryResponse(treasury))
}
