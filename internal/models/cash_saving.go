package models

import "time"

// CashSaving records money manually set aside, separate from the
// income/expense ledger.
type CashSaving struct {
	Base
	FamilyID    uint      `gorm:"not null;index" json:"family_id"`
	MemberID    *uint     `json:"member_id,omitempty"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"size:200" json:"description"`

	Member *FamilyMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
