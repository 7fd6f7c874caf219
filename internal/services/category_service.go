package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// defaultCategories are shared by every user and cannot be edited through the API.
var defaultCategories = []models.Category{
	{Title: "Salary", Kind: models.KindIncome, Icon: "briefcase", Color: "#2E7D32"},
	{Title: "Freelance", Kind: models.KindIncome, Icon: "laptop", Color: "#388E3C"},
	{Title: "Investments", Kind: models.KindIncome, Icon: "trending-up", Color: "#43A047"},
	{Title: "Gifts", Kind: models.KindIncome, Icon: "gift", Color: "#66BB6A"},
	{Title: "Other", Kind: models.KindIncome, Icon: "plus-circle", Color: "#81C784"},
	{Title: "Food", Kind: models.KindExpense, Icon: "utensils", Color: "#E53935"},
	{Title: "Housing", Kind: models.KindExpense, Icon: "home", Color: "#8E24AA"},
	{Title: "Transport", Kind: models.KindExpense, Icon: "car", Color: "#1E88E5"},
	{Title: "Utilities", Kind: models.KindExpense, Icon: "zap", Color: "#FDD835"},
	{Title: "Health", Kind: models.KindExpense, Icon: "heart", Color: "#D81B60"},
	{Title: "Entertainment", Kind: models.KindExpense, Icon: "film", Color: "#FB8C00"},
	{Title: "Shopping", Kind: models.KindExpense, Icon: "shopping-bag", Color: "#6D4C41"},
	{Title: "Other", Kind: models.KindExpense, Icon: "more-horizontal", Color: "#757575"},
}

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// visibleTo scopes a category query to the user's own categories and the shared defaults.
func visibleTo(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(user_id = ? OR user_id IS NULL)", userID)
	}
}

// titleTaken reports whether the owner already has a category with this title
// and kind. A nil owner checks the shared defaults.
func (s *categoryService) titleTaken(userID *string, title string, kind models.Kind, excludeID string) (bool, error) {
	q := s.db.Model(&models.Category{}).Where("title = ? AND kind = ?", title, kind)
	if userID == nil {
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ?", *userID)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateCategory creates a new category owned by the user
func (s *categoryService) CreateCategory(
	userID string,
	title string,
	kind models.Kind,
	icon string,
	color string,
) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title and type required")
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}

	taken, err := s.titleTaken(&userID, title, kind, "")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if taken {
		return nil, apperrors.ErrCategoryExists
	}

	category := &models.Category{
		UserID: &userID,
		Title:  title,
		Kind:   kind,
		Icon:   icon,
		Color:  color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves the user's categories plus the shared defaults,
// ordered by title. A non-nil kind restricts the result to that kind.
func (s *categoryService) GetUserCategories(userID string, kind *models.Kind, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Scopes(visibleTo(userID))
	if kind != nil {
		base = base.Where("kind = ?", *kind)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).
		Order("title ASC").Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category the user may see
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Scopes(visibleTo(userID)).Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// getMutableCategory loads a category the user is allowed to change.
func (s *categoryService) getMutableCategory(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.IsDefault || category.UserID == nil {
		return nil, apperrors.ErrDefaultCategoryImmutable
	}
	if !category.OwnedBy(userID) {
		return nil, apperrors.ErrForbidden
	}
	return &category, nil
}

// UpdateCategory updates title, icon and color. The kind is fixed at creation
// so existing incomes and expenses keep matching their category.
func (s *categoryService) UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error) {
	category, err := s.getMutableCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		if title != category.Title {
			taken, err := s.titleTaken(&userID, title, category.Kind, category.ID)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if taken {
				return nil, apperrors.ErrCategoryExists
			}
		}
		updates["title"] = title
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category. Incomes and expenses keep their
// category_id reference so historical records still resolve a label.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.getMutableCategory(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults inserts any missing default categories and returns how many
// were created. Running it repeatedly is safe.
func (s *categoryService) SeedDefaults() (int, error) {
	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txSvc := &categoryService{db: tx}
		for _, def := range defaultCategories {
			taken, err := txSvc.titleTaken(nil, def.Title, def.Kind, "")
			if err != nil {
				return err
			}
			if taken {
				continue
			}
			category := def
			category.IsDefault = true
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("default categories seeded", "created", created)
	return created, nil
}
