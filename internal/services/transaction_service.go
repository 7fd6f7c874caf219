package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// transactionService merges incomes and expenses into the unified feed.
// It never writes.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// categorySummary resolves only the category columns a transaction carries.
// Soft-deleted categories are included so old records keep their label.
func categorySummary(db *gorm.DB) *gorm.DB {
	return db.Unscoped().Select("id", "title", "icon", "color")
}

// includes reports whether the collection of the given kind is part of the
// result for filter. A nil filter selects everything; an unknown one selects nothing.
func includes(filter *models.Kind, kind models.Kind) bool {
	return filter == nil || *filter == kind
}

// GetUserTransactions returns the user's incomes and expenses projected onto
// Transaction, sorted by date descending with id descending as tie-break.
func (s *transactionService) GetUserTransactions(ctx context.Context, userID string, kind *models.Kind) ([]models.Transaction, error) {
	var (
		incomes  []models.Income
		expenses []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	if includes(kind, models.KindIncome) {
		g.Go(func() error {
			return s.db.WithContext(gctx).
				Preload("Category", categorySummary).
				Where("user_id = ?", userID).
				Find(&incomes).Error
		})
	}
	if includes(kind, models.KindExpense) {
		g.Go(func() error {
			return s.db.WithContext(gctx).
				Preload("Category", categorySummary).
				Where("user_id = ?", userID).
				Find(&expenses).Error
		})
	}
	if err := g.Wait(); err != nil {
		logger.Get().Errorw("failed to load transactions", "error", err, "user_id", userID)
		return nil, apperrors.Wrap(apperrors.ErrTransactionsLoad, err)
	}

	transactions := make([]models.Transaction, 0, len(incomes)+len(expenses))
	for i := range incomes {
		transactions = append(transactions, incomes[i].Transaction())
	}
	for i := range expenses {
		transactions = append(transactions, expenses[i].Transaction())
	}

	sortTransactions(transactions)
	return transactions, nil
}

// sortTransactions orders newest first. Equal dates fall back to id
// descending; ids are UUIDv7 so the most recently created record wins.
func sortTransactions(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		a, b := transactions[i], transactions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID > b.ID
	})
}
