package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry in the family
// ledger. Amounts are whole currency units (no minor units).
//
// The category's type is not required to match the transaction type at the
// storage layer; callers are expected to pair them correctly.
type Transaction struct {
	Base
	FamilyID        uint            `gorm:"not null;index" json:"family_id"`
	MemberID        *uint           `json:"member_id,omitempty"`
	Type            TransactionType `gorm:"not null" json:"type"`
	CategoryID      uint            `gorm:"not null" json:"category_id"`
	Amount          int64           `gorm:"type:bigint;not null" json:"amount"`
	PaymentMethodID *uint           `json:"payment_method_id,omitempty"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	Description     string          `gorm:"size:200" json:"description"`
	IsRecurring     bool            `gorm:"default:false" json:"is_recurring"`

	// Relationships
	Member        *FamilyMember  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// IsInsuranceSaving reports whether this transaction is an expense in an
// insurance-saving category. Requires Category to be loaded.
func (t *Transaction) IsInsuranceSaving() bool {
	return t.Type == TransactionTypeExpense && t.Category != nil && t.Category.IsInsuranceSaving
}
