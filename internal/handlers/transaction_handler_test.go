package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	getUserTransactionsFn func(ctx context.Context, userID string, kind *models.Kind) ([]models.Transaction, error)
}

func (m *mockTransactionService) GetUserTransactions(ctx context.Context, userID string, kind *models.Kind) ([]models.Transaction, error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(ctx, userID, kind)
	}
	return []models.Transaction{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/transactions", injectUserID(testUserID), handler.GetUserTransactions)
	return r
}

func TestTransactionHandler_GetUserTransactions(t *testing.T) {
	t.Run("returns 200 with a bare array", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getUserTransactionsFn: func(_ context.Context, userID string, kind *models.Kind) ([]models.Transaction, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				if kind != nil {
					t.Errorf("expected no filter, got %s", *kind)
				}
				return []models.Transaction{
					{
						ID:       "b",
						Title:    "Rent",
						Amount:   decimal.NewFromInt(500),
						Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
						Category: &models.CategorySummary{ID: "c1", Title: "Housing", Color: "#8E24AA"},
						Kind:     models.KindExpense,
					},
					{
						ID:     "a",
						Title:  "Salary",
						Amount: decimal.NewFromInt(1000),
						Date:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
						Kind:   models.KindIncome,
					},
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body []map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("expected JSON array: %v\nbody: %s", err, rec.Body.String())
		}
		if len(body) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(body))
		}
		if body[0]["title"] != "Rent" || body[0]["kind"] != "expense" || body[0]["amount"] != "500" {
			t.Errorf("unexpected first transaction: %v", body[0])
		}
		if body[0]["date"] != "2024-01-15T00:00:00Z" {
			t.Errorf("unexpected date: %v", body[0]["date"])
		}
		cat := body[0]["category"].(map[string]interface{})
		if cat["title"] != "Housing" || cat["color"] != "#8E24AA" {
			t.Errorf("unexpected category: %v", cat)
		}
		if body[1]["kind"] != "income" || body[1]["category"] != nil {
			t.Errorf("unexpected second transaction: %v", body[1])
		}
	})

	t.Run("passes type filter", func(t *testing.T) {
		tests := []struct {
			query    string
			expected *models.Kind
		}{
			{"", nil},
			{"?type=", nil},
			{"?type=income", kindOf(models.KindIncome)},
			{"?type=expense", kindOf(models.KindExpense)},
			{"?type=transfer", kindOf("transfer")},
		}
		for _, tt := range tests {
			t.Run("query"+tt.query, func(t *testing.T) {
				var got *models.Kind
				txSvc := &mockTransactionService{
					getUserTransactionsFn: func(_ context.Context, _ string, kind *models.Kind) ([]models.Transaction, error) {
						got = kind
						return []models.Transaction{}, nil
					},
				}
				r := setupTransactionRouter(NewTransactionHandler(txSvc))

				rec := doRequest(r, "GET", "/transactions"+tt.query, "")

				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d", rec.Code)
				}
				if (got == nil) != (tt.expected == nil) || (got != nil && *got != *tt.expected) {
					t.Errorf("expected filter %v, got %v", tt.expected, got)
				}
			})
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("returns 500 with stable message", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
		}{
			{"service error", apperrors.Wrap(apperrors.ErrTransactionsLoad, fmt.Errorf("connection refused"))},
			{"unexpected error", fmt.Errorf("connection refused")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				txSvc := &mockTransactionService{
					getUserTransactionsFn: func(_ context.Context, _ string, _ *models.Kind) ([]models.Transaction, error) {
						return nil, tt.err
					},
				}
				r := setupTransactionRouter(NewTransactionHandler(txSvc))

				rec := doRequest(r, "GET", "/transactions", "")

				if rec.Code != http.StatusInternalServerError {
					t.Fatalf("expected 500, got %d", rec.Code)
				}
				result := parseJSON(t, rec)
				assertErrorCode(t, result, "TRANSACTIONS_LOAD_FAILED")
				if result["message"] != "Failed to load transactions" {
					t.Errorf("unexpected message: %v", result["message"])
				}
			})
		}
	})

	t.Run("returns 401 without user", func(t *testing.T) {
		r := gin.New()
		r.GET("/transactions", NewTransactionHandler(&mockTransactionService{}).GetUserTransactions)

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func kindOf(k models.Kind) *models.Kind { return &k }
