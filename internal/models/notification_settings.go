package models

import (
	"strings"
	"time"
)

// NotificationSettings configures the "you haven't logged anything lately"
// email reminder for a family. Recipient addresses are stored one per line.
type NotificationSettings struct {
	Base
	FamilyID             uint       `gorm:"uniqueIndex;not null" json:"family_id"`
	EnableNotifications  bool       `json:"enable_notifications"`
	DaysWithoutLog       int        `json:"days_without_log"`
	NotificationEmails   string     `json:"notification_emails"`
	LastNotificationSent *time.Time `json:"last_notification_sent,omitempty"`

	Family Family `gorm:"foreignKey:FamilyID" json:"-"`
}

// EmailList returns the configured recipient addresses, trimmed, skipping
// blank lines.
func (s *NotificationSettings) EmailList() []string {
	var emails []string
	for _, line := range strings.Split(s.NotificationEmails, "\n") {
		if email := strings.TrimSpace(line); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}
