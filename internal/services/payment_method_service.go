package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// paymentMethodService handles payment method business logic.
type paymentMethodService struct {
	db *gorm.DB
}

// NewPaymentMethodService creates a new PaymentMethodServicer.
func NewPaymentMethodService(db *gorm.DB) PaymentMethodServicer {
	return &paymentMethodService{db: db}
}

// CreatePaymentMethod adds a payment method to the family.
func (s *paymentMethodService) CreatePaymentMethod(familyID uint, name string, methodType models.PaymentMethodType) (*models.PaymentMethod, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment method name is required")
	}

	method := &models.PaymentMethod{
		FamilyID: familyID,
		Name:     name,
		Type:     methodType,
	}
	if err := s.db.Create(method).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return method, nil
}

// GetFamilyPaymentMethods returns all payment methods of a family.
func (s *paymentMethodService) GetFamilyPaymentMethods(familyID uint) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := s.db.Where("family_id = ?", familyID).
		Order("name ASC").
		Find(&methods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return methods, nil
}

// GetPaymentMethodByID returns a payment method scoped to the family.
func (s *paymentMethodService) GetPaymentMethodByID(familyID, methodID uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := s.db.Where("id = ? AND family_id = ?", methodID, familyID).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentMethodNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &method, nil
}

// DeletePaymentMethod soft-deletes a payment method. Existing transactions
// keep their reference.
func (s *paymentMethodService) DeletePaymentMethod(familyID, methodID uint) error {
	method, err := s.GetPaymentMethodByID(familyID, methodID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(method).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
