package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/logger"
	"kakeibo/internal/models"
)

// recurringSuffix marks transactions materialized from a template.
const recurringSuffix = " (recurring)"

// recurringService handles recurring template scheduling.
type recurringService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, categoryService CategoryServicer) RecurringServicer {
	return &recurringService{db: db, categoryService: categoryService}
}

// CreateTemplate registers a recurring schedule. The day-of-month anchor is
// only meaningful for monthly frequency.
func (s *recurringService) CreateTemplate(familyID uint, memberID *uint, transactionType models.TransactionType, categoryID uint, amount int64, paymentMethodID *uint, description string, frequency models.Frequency, startDate time.Time, endDate *time.Time, dayOfMonth *int) (*models.RecurringTemplate, error) {
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
	default:
		return nil, apperrors.ErrInvalidFrequency
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}
	if dayOfMonth != nil && (*dayOfMonth < 1 || *dayOfMonth > 31) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day_of_month must be between 1 and 31")
	}

	if _, err := s.categoryService.GetCategoryByID(familyID, categoryID); err != nil {
		return nil, err
	}
	if paymentMethodID != nil {
		var count int64
		s.db.Model(&models.PaymentMethod{}).
			Where("id = ? AND family_id = ?", *paymentMethodID, familyID).
			Count(&count)
		if count == 0 {
			return nil, apperrors.ErrPaymentMethodNotFound
		}
	}

	tmpl := &models.RecurringTemplate{
		FamilyID:        familyID,
		MemberID:        memberID,
		TransactionType: transactionType,
		CategoryID:      categoryID,
		Amount:          amount,
		PaymentMethodID: paymentMethodID,
		Description:     description,
		Frequency:       frequency,
		StartDate:       startDate,
		EndDate:         endDate,
		DayOfMonth:      dayOfMonth,
		IsActive:        true,
	}
	if err := s.db.Create(tmpl).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tmpl, nil
}

// GetFamilyTemplates returns the family's templates, optionally restricted to
// active ones.
func (s *recurringService) GetFamilyTemplates(familyID uint, activeOnly bool) ([]models.RecurringTemplate, error) {
	query := s.db.Preload("Category").Preload("PaymentMethod").
		Where("family_id = ?", familyID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var templates []models.RecurringTemplate
	if err := query.Order("id ASC").Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

// ToggleTemplate flips a template between active and paused.
func (s *recurringService) ToggleTemplate(familyID, templateID uint) (*models.RecurringTemplate, error) {
	var tmpl models.RecurringTemplate
	if err := s.db.Where("id = ? AND family_id = ?", templateID, familyID).
		First(&tmpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&tmpl).Update("is_active", !tmpl.IsActive).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tmpl, nil
}

// GenerateDue fires every template of the family that is due on the given
// day. Each template is handled in its own transaction so one bad template
// cannot block the rest of the batch; failures are collected and reported.
func (s *recurringService) GenerateDue(familyID uint, today time.Time) (*GenerateResult, error) {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var templates []models.RecurringTemplate
	if err := s.db.Where("family_id = ? AND is_active = ?", familyID, true).
		Order("id ASC").
		Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &GenerateResult{}
	for i := range templates {
		if !templates[i].IsDue(today) {
			continue
		}
		fired, err := s.fire(templates[i].ID, today)
		if err != nil {
			logger.Get().Errorw("recurring template failed",
				"template_id", templates[i].ID,
				"description", templates[i].Description,
				"error", err)
			result.Errors = append(result.Errors, TemplateError{
				TemplateID:  templates[i].ID,
				Description: templates[i].Description,
				Error:       err.Error(),
			})
			continue
		}
		if fired {
			result.Generated++
		}
	}
	return result, nil
}

// fire materializes one transaction from the template and advances its
// cursor. The template row is locked and re-checked inside the transaction so
// concurrent runs cannot generate the same occurrence twice; when the re-check
// finds another run already fired it, fire reports false so the occurrence is
// not counted twice either.
func (s *recurringService) fire(templateID uint, today time.Time) (bool, error) {
	fired := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tmpl models.RecurringTemplate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tmpl, templateID).Error; err != nil {
			return err
		}
		if !tmpl.IsDue(today) {
			return nil
		}

		var count int64
		tx.Model(&models.Category{}).
			Where("id = ? AND family_id = ?", tmpl.CategoryID, tmpl.FamilyID).
			Count(&count)
		if count == 0 {
			return apperrors.ErrCategoryNotFound
		}

		txn := &models.Transaction{
			FamilyID:        tmpl.FamilyID,
			MemberID:        tmpl.MemberID,
			Type:            tmpl.TransactionType,
			CategoryID:      tmpl.CategoryID,
			Amount:          tmpl.Amount,
			PaymentMethodID: tmpl.PaymentMethodID,
			Date:            today,
			Description:     tmpl.Description + recurringSuffix,
			IsRecurring:     true,
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		if err := tx.Model(&tmpl).Update("last_generated", today).Error; err != nil {
			return err
		}
		fired = true
		return nil
	})
	return fired, err
}

// FamiliesWithActiveTemplates returns the IDs of families that have at least
// one active template, for batch runs across all tenants.
func (s *recurringService) FamiliesWithActiveTemplates() ([]uint, error) {
	var familyIDs []uint
	if err := s.db.Model(&models.RecurringTemplate{}).
		Where("is_active = ?", true).
		Distinct("family_id").
		Order("family_id ASC").
		Pluck("family_id", &familyIDs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return familyIDs, nil
}
