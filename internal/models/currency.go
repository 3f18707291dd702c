package models

// Currency holds a display currency and its static exchange-rate multiplier
// against the base currency (JPY). Rates are configuration data, not market
// data; there is no revaluation of stored amounts.
type Currency struct {
	Base
	Code         string  `gorm:"size:3;uniqueIndex;not null" json:"code"`
	Name         string  `gorm:"not null" json:"name"`
	Symbol       string  `gorm:"size:5" json:"symbol"`
	ExchangeRate float64 `gorm:"default:1.0" json:"exchange_rate"`
}
