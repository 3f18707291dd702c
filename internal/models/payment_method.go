package models

// PaymentMethodType represents the kind of payment method
type PaymentMethodType string

const (
	PaymentMethodCash   PaymentMethodType = "cash"
	PaymentMethodCredit PaymentMethodType = "credit"
	PaymentMethodIC     PaymentMethodType = "ic"
	PaymentMethodQR     PaymentMethodType = "qr"
	PaymentMethodBank   PaymentMethodType = "bank"
	PaymentMethodOther  PaymentMethodType = "other"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod struct {
	Base
	FamilyID uint              `gorm:"not null" json:"family_id"`
	Name     string            `gorm:"size:50;not null" json:"name"`
	Type     PaymentMethodType `gorm:"not null" json:"type"`
}
