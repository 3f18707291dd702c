package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/logger"
	"kakeibo/internal/mailer"
	"kakeibo/internal/models"
)

// notificationService sends log reminder emails to families that have not
// recorded a transaction recently.
type notificationService struct {
	db     *gorm.DB
	mailer mailer.Mailer
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB, m mailer.Mailer) NotificationServicer {
	return &notificationService{db: db, mailer: m}
}

// SendReminders checks every family with reminders enabled and emails the
// configured recipients when the family has gone too long without logging a
// transaction. A family already notified within the last 24 hours is
// skipped. Returns the number of reminders sent; per-family failures are
// logged and do not stop the batch.
func (s *notificationService) SendReminders(ctx context.Context, now time.Time) (int, error) {
	var settings []models.NotificationSettings
	if err := s.db.Where("enable_notifications = ?", true).
		Find(&settings).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sent atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range settings {
		cfg := settings[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := s.remindFamily(cfg, now)
			if err != nil {
				logger.Get().Errorw("log reminder failed",
					"family_id", cfg.FamilyID,
					"error", err)
				return nil
			}
			if ok {
				sent.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(sent.Load()), err
	}
	return int(sent.Load()), nil
}

// remindFamily reports whether a reminder was sent for one family.
func (s *notificationService) remindFamily(cfg models.NotificationSettings, now time.Time) (bool, error) {
	recipients := cfg.EmailList()
	if len(recipients) == 0 {
		return false, nil
	}
	if cfg.LastNotificationSent != nil && now.Sub(*cfg.LastNotificationSent) < 24*time.Hour {
		return false, nil
	}

	days, err := s.daysSinceLastTransaction(cfg.FamilyID, now)
	if err != nil {
		return false, err
	}
	if days < cfg.DaysWithoutLog {
		return false, nil
	}

	subject := "Reminder: your household ledger is waiting"
	body := fmt.Sprintf(
		"It has been %d days since the last transaction was recorded.\n\n"+
			"Keeping the ledger up to date makes the monthly summary and forecast accurate.\n",
		days)

	if err := s.mailer.Send(recipients, subject, body); err != nil {
		return false, err
	}

	if err := s.db.Model(&models.NotificationSettings{}).
		Where("id = ?", cfg.ID).
		Update("last_notification_sent", now).Error; err != nil {
		return false, err
	}
	return true, nil
}

// daysSinceLastTransaction returns the number of days since the family's most
// recent transaction, or 999 when the family has never logged one.
func (s *notificationService) daysSinceLastTransaction(familyID uint, now time.Time) (int, error) {
	var last models.Transaction
	err := s.db.Where("family_id = ?", familyID).
		Order("date DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 999, nil
	}
	if err != nil {
		return 0, err
	}
	return int(now.Sub(last.Date).Hours() / 24), nil
}
