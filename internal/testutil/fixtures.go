package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given kind owned by userID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, kind models.Kind) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: &userID,
		Title:  fmt.Sprintf("Test Category %d", nextID()),
		Kind:   kind,
		Color:  "#336699",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateDefaultCategory creates a shared default category of the given kind.
func CreateDefaultCategory(t *testing.T, db *gorm.DB, kind models.Kind) *models.Category {
	t.Helper()

	category := &models.Category{
		Title:     fmt.Sprintf("Default Category %d", nextID()),
		Kind:      kind,
		IsDefault: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create default category: %v", err)
	}
	return category
}

func newMoneyRecord(userID, categoryID, title string, amount int64, date time.Time) models.MoneyRecord {
	return models.MoneyRecord{
		UserID:     userID,
		Title:      title,
		Amount:     decimal.NewFromInt(amount),
		CategoryID: categoryID,
		Date:       date,
	}
}

// CreateTestExpense creates an expense in the given category.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID, title string, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{MoneyRecord: newMoneyRecord(userID, categoryID, title, amount, date)}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income in the given category.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, categoryID, title string, amount int64, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{MoneyRecord: newMoneyRecord(userID, categoryID, title, amount, date)}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
