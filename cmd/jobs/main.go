// Command jobs runs the scheduled batch tasks: generating due recurring
// transactions and sending log reminder emails. It is meant to be invoked
// daily from cron or a container scheduler.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"kakeibo/internal/config"
	"kakeibo/internal/database"
	"kakeibo/internal/logger"
	"kakeibo/internal/mailer"
	"kakeibo/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Job error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: jobs <recurring|reminders>")
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	db := dbManager.DB()

	log := logger.Get()

	switch os.Args[1] {
	case "recurring":
		recurringService := services.NewRecurringService(db, services.NewCategoryService(db))

		familyIDs, err := recurringService.FamiliesWithActiveTemplates()
		if err != nil {
			return fmt.Errorf("failed to list families: %w", err)
		}

		today := time.Now()
		generated := 0
		failed := 0
		for _, familyID := range familyIDs {
			result, err := recurringService.GenerateDue(familyID, today)
			if err != nil {
				log.Errorw("recurring generation failed for family",
					"family_id", familyID,
					"error", err)
				failed++
				continue
			}
			generated += result.Generated
			failed += len(result.Errors)
		}
		log.Infow("recurring generation complete",
			"families", len(familyIDs),
			"generated", generated,
			"failed", failed)

	case "reminders":
		notificationService := services.NewNotificationService(db, mailer.NewSMTPMailer(appConfig))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := notificationService.SendReminders(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("reminder run failed: %w", err)
		}
		log.Infow("reminder run complete", "sent", sent)

	default:
		return fmt.Errorf("unknown job: %s (use recurring or reminders)", os.Args[1])
	}

	return nil
}
