package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// budgetService handles monthly budget business logic.
type budgetService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categoryService CategoryServicer) BudgetServicer {
	return &budgetService{db: db, categoryService: categoryService}
}

// SetBudget creates or replaces the budget for a category and month. Setting
// an existing budget again updates the amount in place.
func (s *budgetService) SetBudget(familyID, categoryID uint, year, month int, amount int64) (*models.Budget, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if _, err := s.categoryService.GetCategoryByID(familyID, categoryID); err != nil {
		return nil, err
	}

	var budget models.Budget
	err := s.db.Where("family_id = ? AND category_id = ? AND year = ? AND month = ?",
		familyID, categoryID, year, month).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		budget = models.Budget{
			FamilyID:   familyID,
			CategoryID: categoryID,
			Year:       year,
			Month:      month,
			Amount:     amount,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	} else if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	} else {
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := s.db.Preload("Category").First(&budget, budget.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// GetFamilyBudgets returns all budgets of a family for one month.
func (s *budgetService) GetFamilyBudgets(familyID uint, year, month int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("family_id = ? AND year = ? AND month = ?", familyID, year, month).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// DeleteBudget soft-deletes a budget row.
func (s *budgetService) DeleteBudget(familyID, budgetID uint) error {
	var budget models.Budget
	if err := s.db.Where("id = ? AND family_id = ?", budgetID, familyID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
