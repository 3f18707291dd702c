package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. Names are unique per family.
// Expense categories flagged as insurance savings count toward long-term
// savings in addition to regular spend.
type Category struct {
	Base
	FamilyID          uint         `gorm:"not null;uniqueIndex:idx_categories_family_name" json:"family_id"`
	Name              string       `gorm:"size:50;not null;uniqueIndex:idx_categories_family_name" json:"name"`
	Type              CategoryType `gorm:"not null" json:"type"`
	IsInsuranceSaving bool         `gorm:"default:false" json:"is_insurance_saving"`
	Icon              string       `gorm:"size:50" json:"icon"`
}
