package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// savingService handles cash saving business logic.
type savingService struct {
	db *gorm.DB
}

// NewSavingService creates a new SavingServicer.
func NewSavingService(db *gorm.DB) SavingServicer {
	return &savingService{db: db}
}

// CreateSaving records money set aside on a given date.
func (s *savingService) CreateSaving(familyID uint, memberID *uint, amount int64, date time.Time, description string) (*models.CashSaving, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	saving := &models.CashSaving{
		FamilyID:    familyID,
		MemberID:    memberID,
		Amount:      amount,
		Date:        date,
		Description: description,
	}
	if err := s.db.Create(saving).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return saving, nil
}

// GetFamilySavings returns a page of the family's cash savings, newest first.
func (s *savingService) GetFamilySavings(familyID uint, page pagination.PageRequest) (*pagination.PageResponse[models.CashSaving], error) {
	page.Defaults()

	query := s.db.Model(&models.CashSaving{}).Where("family_id = ?", familyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var savings []models.CashSaving
	if err := query.Preload("Member").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(savings, page.Page, page.PageSize, total)
	return &resp, nil
}

// DeleteSaving soft-deletes a cash saving entry.
func (s *savingService) DeleteSaving(familyID, savingID uint) error {
	var saving models.CashSaving
	if err := s.db.Where("id = ? AND family_id = ?", savingID, familyID).
		First(&saving).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSavingNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&saving).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
