package models

import "time"

// Family is the tenant boundary. Every financial record is owned by exactly
// one family, and every query is scoped by family ID.
type Family struct {
	Base
	Name       string    `gorm:"not null" json:"name"`
	CurrencyID *uint     `json:"currency_id,omitempty"`
	Currency   *Currency `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
}

// ConvertToBase converts an amount in the family currency to the base currency.
func (f *Family) ConvertToBase(amount float64) float64 {
	if f.Currency == nil {
		return amount
	}
	return amount * f.Currency.ExchangeRate
}

// ConvertFromBase converts a base-currency amount to the family currency.
func (f *Family) ConvertFromBase(amount float64) float64 {
	if f.Currency == nil || f.Currency.ExchangeRate == 0 {
		return amount
	}
	return amount / f.Currency.ExchangeRate
}

// FamilyMember links a user to a family. A user has at most one membership.
type FamilyMember struct {
	Base
	UserID   uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FamilyID uint   `gorm:"not null" json:"family_id"`
	Nickname string `gorm:"size:50;not null" json:"nickname"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Family Family `gorm:"foreignKey:FamilyID" json:"-"`
}

// FamilyInvite is a single-use join code for a family.
type FamilyInvite struct {
	Base
	FamilyID    uint       `gorm:"not null" json:"family_id"`
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	CreatedByID *uint      `json:"created_by_id,omitempty"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	IsUsed      bool       `gorm:"default:false" json:"is_used"`
	UsedByID    *uint      `json:"used_by_id,omitempty"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

// Valid reports whether the invite can still be redeemed at the given time.
func (i *FamilyInvite) Valid(now time.Time) bool {
	return !i.IsUsed && now.Before(i.ExpiresAt)
}
