package models

// User represents an authenticated account. A user belongs to at most one
// family through a FamilyMember record.
type User struct {
	Base
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Password         string `gorm:"not null" json:"-"`
	DisplayName      string `json:"display_name"`
	IsActive         bool   `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string `json:"-"`
}
