package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is the part of a category shown alongside a transaction.
type CategorySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Transaction is a read-only view over an income or an expense. It is never
// persisted; Kind records which collection the row came from.
type Transaction struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Amount   decimal.Decimal  `json:"amount"`
	Date     time.Time        `json:"date"`
	Category *CategorySummary `json:"category"`
	Note     string           `json:"note"`
	Kind     Kind             `json:"kind"`
}

func newTransaction(r *MoneyRecord, category *Category, kind Kind) Transaction {
	tx := Transaction{
		ID:     r.ID,
		Title:  r.Title,
		Amount: r.Amount,
		Date:   r.Date,
		Note:   r.Note,
		Kind:   kind,
	}
	if category != nil {
		tx.Category = &CategorySummary{
			ID:    category.ID,
			Title: category.Title,
			Icon:  category.Icon,
			Color: category.Color,
		}
	}
	return tx
}
