package models

import "time"

// Frequency represents how often a recurring template fires
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringTemplate describes a transaction that is generated automatically
// on a schedule. LastGenerated is the cursor: the date the template last
// materialized a transaction. Templates are deactivated, never deleted, when
// they should stop firing.
type RecurringTemplate struct {
	Base
	FamilyID        uint            `gorm:"not null;index" json:"family_id"`
	MemberID        *uint           `json:"member_id,omitempty"`
	TransactionType TransactionType `gorm:"not null" json:"transaction_type"`
	CategoryID      uint            `gorm:"not null" json:"category_id"`
	Amount          int64           `gorm:"type:bigint;not null" json:"amount"`
	PaymentMethodID *uint           `json:"payment_method_id,omitempty"`
	Description     string          `gorm:"size:200" json:"description"`
	Frequency       Frequency       `gorm:"not null" json:"frequency"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	DayOfMonth      *int            `json:"day_of_month,omitempty"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	LastGenerated   *time.Time      `json:"last_generated,omitempty"`

	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// Cursor returns the date the schedule advances from: the last generated
// date, or the start date if the template has never fired.
func (t *RecurringTemplate) Cursor() time.Time {
	if t.LastGenerated != nil {
		return *t.LastGenerated
	}
	return t.StartDate
}

// NextOccurrence returns the next date the template is due after the given
// cursor date.
//
// Monthly schedules advance one calendar month with the day clamped to the
// end of the target month, then snap to the day-of-month anchor if one is
// configured. When the target month is shorter than the anchor the day is
// set to 28, not the month's true last day.
func (t *RecurringTemplate) NextOccurrence(from time.Time) time.Time {
	switch t.Frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		next := addCalendarMonths(from, 1)
		if t.DayOfMonth != nil {
			day := *t.DayOfMonth
			if day > daysInMonth(next.Year(), next.Month()) {
				day = 28
			}
			next = time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, next.Location())
		}
		return next
	case FrequencyYearly:
		return addCalendarYears(from, 1)
	}
	return from
}

// IsDue reports whether the template should generate a transaction on the
// given day. A template whose cursor is today or later is never due, which
// guards against firing twice within the same day.
func (t *RecurringTemplate) IsDue(today time.Time) bool {
	if !t.IsActive {
		return false
	}
	if today.Before(t.StartDate) {
		return false
	}
	if t.EndDate != nil && today.After(*t.EndDate) {
		return false
	}
	if t.LastGenerated != nil && !t.LastGenerated.Before(today) {
		return false
	}
	return !today.Before(t.NextOccurrence(t.Cursor()))
}

// addCalendarMonths adds n calendar months, clamping the day to the end of
// the target month instead of overflowing into the following month.
func addCalendarMonths(d time.Time, n int) time.Time {
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, n, 0)
	day := d.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, d.Location())
}

// addCalendarYears adds n years, clamping Feb 29 to Feb 28 in non-leap years.
func addCalendarYears(d time.Time, n int) time.Time {
	year := d.Year() + n
	day := d.Day()
	if last := daysInMonth(year, d.Month()); day > last {
		day = last
	}
	return time.Date(year, d.Month(), day, 0, 0, 0, 0, d.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
