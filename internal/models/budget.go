package models

// Budget is a monthly spending target for one category. One row per
// family/category/year/month.
type Budget struct {
	Base
	FamilyID   uint  `gorm:"not null;uniqueIndex:idx_budgets_family_category_period" json:"family_id"`
	CategoryID uint  `gorm:"not null;uniqueIndex:idx_budgets_family_category_period" json:"category_id"`
	Year       int   `gorm:"not null;uniqueIndex:idx_budgets_family_category_period" json:"year"`
	Month      int   `gorm:"not null;uniqueIndex:idx_budgets_family_category_period" json:"month"`
	Amount     int64 `gorm:"type:bigint;not null" json:"amount"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
