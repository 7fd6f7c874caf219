package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records an income against one of the user's income categories.
func (s *incomeService) CreateIncome(userID string, input RecordInput) (*models.Income, error) {
	record, category, err := newMoneyRecord(s.db, userID, input, models.KindIncome)
	if err != nil {
		return nil, err
	}

	income := &models.Income{MoneyRecord: record}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	income.Category = category

	return income, nil
}

// GetUserIncomes retrieves the user's incomes, newest first.
func (s *incomeService) GetUserIncomes(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Preload("Category", withCategory).
		Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("id DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves a single income owned by the user
func (s *incomeService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Preload("Category", withCategory).Where("id = ?", incomeID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if income.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &income, nil
}

// UpdateIncome applies a partial update and returns the stored income.
func (s *incomeService) UpdateIncome(userID, incomeID string, update RecordUpdate) (*models.Income, error) {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	updates, err := recordUpdates(s.db, userID, update, models.KindIncome)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return income, nil
	}

	if err := s.db.Model(&models.Income{}).Where("id = ?", income.ID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetIncomeByID(userID, incomeID)
}

// DeleteIncome soft-deletes an income owned by the user.
func (s *incomeService) DeleteIncome(userID, incomeID string) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Income{}, "id = ?", income.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
