package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visit2sat/banking-ledger/internal/apperrors"
	portssvc "github.com/visit2sat/banking-ledger/internal/core/ports/services"
	"github.com/visit2sat/banking-ledger/internal/dto"
	"github.com/visit2sat/banking-ledger/internal/middleware"
)

// transactionHandler handles HTTP requests for movement processing and the
// journal query surface.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers the journal routes. Movement
// processing is rate limited; rateLimitMiddleware may be nil in tests.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, rateLimitMiddleware gin.HandlerFunc) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		if rateLimitMiddleware != nil {
			transactions.POST("", rateLimitMiddleware, h.createTransaction)
		} else {
			transactions.POST("", h.createTransaction)
		}
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}

	// Per-account history views live under the accounts resource.
	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/transactions", h.listAccountTransactions)
		accounts.GET("/:id/mini-statement", h.miniStatement)
	}
}

// createTransaction processes a deposit, withdrawal or transfer.
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received movement request", slog.String("kind", string(req.Kind)), slog.String("amount", req.Amount.String()))

	txn, err := h.transactionService.ProcessTransaction(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrInvalidRequest), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected movement request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Movement references missing account", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Warn("Insufficient funds for movement", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction retrieves a single journal entry.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions retrieves the whole journal, newest first.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// listAccountTransactions retrieves the full history for one account.
func (h *transactionHandler) listAccountTransactions(c *gin.Context) {
	h.listForAccount(c, 0)
}

// miniStatement retrieves an abbreviated history for one account.
func (h *transactionHandler) miniStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MiniStatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for miniStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	h.listForAccount(c, params.Limit)
}

func (h *transactionHandler) listForAccount(c *gin.Context, limit int) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	txns, err := h.transactionService.ListTransactionsByAccountID(c.Request.Context(), accountID, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for history view", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list account transactions from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}

// deleteTransaction removes a non-completed journal entry. Balances are
// never reversed by deletion.
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transaction not found for deletion", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			logger.Warn("Attempted to delete completed transaction", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete completed transaction"})
		default:
			logger.Error("Failed to delete transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
