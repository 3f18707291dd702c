package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// categoryService handles category business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a category. Names are unique within a family.
func (s *categoryService) CreateCategory(familyID uint, name string, categoryType models.CategoryType, isInsuranceSaving bool, icon string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}

	var count int64
	s.db.Model(&models.Category{}).
		Where("family_id = ? AND name = ?", familyID, name).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		FamilyID:          familyID,
		Name:              name,
		Type:              categoryType,
		IsInsuranceSaving: isInsuranceSaving,
		Icon:              icon,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetFamilyCategories returns the family's categories, optionally filtered by
// type, ordered by name.
func (s *categoryService) GetFamilyCategories(familyID uint, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	query := s.db.Model(&models.Category{}).Where("family_id = ?", familyID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := query.Order("name ASC").
		Scopes(pagination.Paginate(page)).
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(categories, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetCategoryByID returns a category scoped to the family.
func (s *categoryService) GetCategoryByID(familyID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND family_id = ?", categoryID, familyID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames a category or changes its insurance flag. The type
// is immutable after creation.
func (s *categoryService) UpdateCategory(familyID, categoryID uint, name string, isInsuranceSaving *bool, icon string) (*models.Category, error) {
	category, err := s.GetCategoryByID(familyID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" && name != category.Name {
		var count int64
		s.db.Model(&models.Category{}).
			Where("family_id = ? AND name = ? AND id != ?", familyID, name, categoryID).
			Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if isInsuranceSaving != nil {
		updates["is_insurance_saving"] = *isInsuranceSaving
	}
	if icon != "" {
		updates["icon"] = icon
	}

	if len(updates) == 0 {
		return category, nil
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory soft-deletes a category. Categories referenced by any
// transaction, budget, or recurring template cannot be deleted.
func (s *categoryService) DeleteCategory(familyID, categoryID uint) error {
	category, err := s.GetCategoryByID(familyID, categoryID)
	if err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count)
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}
	s.db.Model(&models.Budget{}).Where("category_id = ?", categoryID).Count(&count)
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}
	s.db.Model(&models.RecurringTemplate{}).Where("category_id = ?", categoryID).Count(&count)
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
