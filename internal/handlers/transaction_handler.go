package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// TransactionHandler serves the unified income and expense feed.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetUserTransactions handles listing the user's transactions
// @Summary     Get transactions
// @Description Get the user's incomes and expenses merged into one list, newest first.
// @Description An unknown type yields an empty list.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Only income or only expense"
// @Success     200 {array}  models.Transaction "Transactions sorted by date descending"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Failed to load transactions"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var kind *models.Kind
	if v, ok := c.GetQuery("type"); ok && v != "" {
		k := models.Kind(v)
		kind = &k
	}

	transactions, err := h.transactionService.GetUserTransactions(c.Request.Context(), userID, kind)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrTransactionsLoad, err))
		return
	}

	c.JSON(http.StatusOK, transactions)
}
