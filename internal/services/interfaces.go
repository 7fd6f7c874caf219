package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryUpdate holds the optional fields of a category update.
// Nil fields are left unchanged.
type CategoryUpdate struct {
	Title *string
	Icon  *string
	Color *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, title string, kind models.Kind, icon, color string) (*models.Category, error)
	GetUserCategories(userID string, kind *models.Kind, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	SeedDefaults() (int, error)
}

// RecordInput holds the fields needed to create an income or expense.
// A zero Date means "now".
type RecordInput struct {
	Title      string
	Amount     decimal.Decimal
	CategoryID string
	Date       time.Time
	Note       string
}

// RecordUpdate holds the optional fields of an income or expense update.
// Nil fields are left unchanged.
type RecordUpdate struct {
	Title      *string
	Amount     *decimal.Decimal
	CategoryID *string
	Date       *time.Time
	Note       *string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, input RecordInput) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, update RecordUpdate) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID string, input RecordInput) (*models.Income, error)
	GetUserIncomes(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID string) (*models.Income, error)
	UpdateIncome(userID, incomeID string, update RecordUpdate) (*models.Income, error)
	DeleteIncome(userID, incomeID string) error
}

// TransactionServicer merges incomes and expenses into a single feed.
type TransactionServicer interface {
	// GetUserTransactions returns the user's incomes and expenses as
	// transactions, newest first. A nil kind selects both collections.
	GetUserTransactions(ctx context.Context, userID string, kind *models.Kind) ([]models.Transaction, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
