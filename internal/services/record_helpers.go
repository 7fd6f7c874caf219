package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

// Helpers shared by the income and expense services. Both collections have
// the same shape and rules; only the table and the required category kind differ.

// withCategory preloads the full category, including soft-deleted ones, so
// records created before a category was removed still carry its label.
func withCategory(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

// resolveRecordCategory loads the category a record of the given kind wants
// to reference and checks that the user may use it.
func resolveRecordCategory(db *gorm.DB, userID, categoryID string, kind models.Kind) (*models.Category, error) {
	if !uuid.IsValid(categoryID) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "Invalid category id")
	}

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "Category not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !category.VisibleTo(userID) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "Category does not belong to user")
	}
	if category.Kind != kind {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "Choose an "+string(kind)+" category")
	}
	return &category, nil
}

// newMoneyRecord validates input and builds the shared columns of a new record.
func newMoneyRecord(db *gorm.DB, userID string, input RecordInput, kind models.Kind) (models.MoneyRecord, *models.Category, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.CategoryID == "" {
		return models.MoneyRecord{}, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "All fields required")
	}
	if !input.Amount.IsPositive() {
		return models.MoneyRecord{}, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	category, err := resolveRecordCategory(db, userID, input.CategoryID, kind)
	if err != nil {
		return models.MoneyRecord{}, nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	return models.MoneyRecord{
		UserID:     userID,
		Title:      title,
		Amount:     input.Amount,
		CategoryID: category.ID,
		Date:       date,
		Note:       strings.TrimSpace(input.Note),
	}, category, nil
}

// recordUpdates turns a partial update into a column map, re-validating a
// changed category with the same rules as creation.
func recordUpdates(db *gorm.DB, userID string, update RecordUpdate, kind models.Kind) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		updates["title"] = title
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *update.Amount
	}
	if update.CategoryID != nil {
		category, err := resolveRecordCategory(db, userID, *update.CategoryID, kind)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = category.ID
	}
	if update.Date != nil {
		if update.Date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date cannot be empty")
		}
		updates["date"] = *update.Date
	}
	if update.Note != nil {
		updates["note"] = strings.TrimSpace(*update.Note)
	}

	return updates, nil
}
