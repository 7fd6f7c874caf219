package models

// Kind distinguishes income from expense. It applies to categories, to the
// money records that reference them and to derived transactions.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Category labels incomes or expenses. A nil UserID marks a system default
// shared by every user; defaults cannot be changed through the user API.
type Category struct {
	Base
	UserID    *string `gorm:"type:uuid;index" json:"user_id"`
	Title     string  `gorm:"not null" json:"title"`
	Kind      Kind    `gorm:"not null;index" json:"kind"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	IsDefault bool    `gorm:"not null;default:false" json:"is_default"`
}

// OwnedBy reports whether the category belongs to userID.
func (c *Category) OwnedBy(userID string) bool {
	return c.UserID != nil && *c.UserID == userID
}

// VisibleTo reports whether userID may reference the category.
func (c *Category) VisibleTo(userID string) bool {
	return c.UserID == nil || c.OwnedBy(userID)
}
