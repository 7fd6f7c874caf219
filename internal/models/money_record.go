package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyRecord holds the columns shared by incomes and expenses.
type MoneyRecord struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title      string          `gorm:"not null" json:"title"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CategoryID string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Note       string          `json:"note"`
}

// Expense is money going out.
type Expense struct {
	MoneyRecord
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Transaction projects the expense onto the unified feed.
func (e *Expense) Transaction() Transaction {
	return newTransaction(&e.MoneyRecord, e.Category, KindExpense)
}

// Income is money coming in.
type Income struct {
	MoneyRecord
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Transaction projects the income onto the unified feed.
func (i *Income) Transaction() Transaction {
	return newTransaction(&i.MoneyRecord, i.Category, KindIncome)
}
