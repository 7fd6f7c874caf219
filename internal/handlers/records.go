package handlers

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/services"
)

// CreateRecordRequest is the payload for creating an income or an expense.
// Amount accepts a JSON number or a decimal string. Date accepts RFC3339 or
// YYYY-MM-DD and defaults to now.
type CreateRecordRequest struct {
	Title      string          `json:"title" binding:"required,min=1,max=200"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50"`
	CategoryID string          `json:"category_id" binding:"required,uuid_id"`
	Date       string          `json:"date" example:"2024-01-15"`
	Note       string          `json:"note" binding:"max=500"`
}

// UpdateRecordRequest is the payload for a partial income or expense update.
type UpdateRecordRequest struct {
	Title      *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string"`
	CategoryID *string          `json:"category_id" binding:"omitempty,uuid_id"`
	Date       *string          `json:"date"`
	Note       *string          `json:"note" binding:"omitempty,max=500"`
}

func (r CreateRecordRequest) toInput() (services.RecordInput, error) {
	date, err := parseFlexibleTime(r.Date)
	if err != nil {
		return services.RecordInput{}, err
	}
	return services.RecordInput{
		Title:      r.Title,
		Amount:     r.Amount,
		CategoryID: r.CategoryID,
		Date:       date,
		Note:       r.Note,
	}, nil
}

func (r UpdateRecordRequest) toUpdate() (services.RecordUpdate, error) {
	update := services.RecordUpdate{
		Title:      r.Title,
		Amount:     r.Amount,
		CategoryID: r.CategoryID,
		Note:       r.Note,
	}
	if r.Date != nil {
		date, err := parseFlexibleTime(*r.Date)
		if err != nil {
			return services.RecordUpdate{}, err
		}
		update.Date = &date
	}
	return update, nil
}
