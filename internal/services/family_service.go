package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/uuid"
)

const inviteValidity = 7 * 24 * time.Hour

// defaultCategories is the starter set created for every new family. The
// insurance category is the one flagged as long-term savings.
var defaultCategories = []models.Category{
	{Name: "Groceries", Type: models.CategoryTypeExpense, Icon: "🍚"},
	{Name: "Eating Out", Type: models.CategoryTypeExpense, Icon: "🍽️"},
	{Name: "Household Goods", Type: models.CategoryTypeExpense, Icon: "🧴"},
	{Name: "Transportation", Type: models.CategoryTypeExpense, Icon: "🚃"},
	{Name: "Utilities", Type: models.CategoryTypeExpense, Icon: "💡"},
	{Name: "Communication", Type: models.CategoryTypeExpense, Icon: "📱"},
	{Name: "Medical", Type: models.CategoryTypeExpense, Icon: "🏥"},
	{Name: "Entertainment", Type: models.CategoryTypeExpense, Icon: "🎮"},
	{Name: "Clothing", Type: models.CategoryTypeExpense, Icon: "👕"},
	{Name: "Insurance (Savings)", Type: models.CategoryTypeExpense, Icon: "📋", IsInsuranceSaving: true},
	{Name: "Other Expense", Type: models.CategoryTypeExpense, Icon: "📦"},
	{Name: "Salary", Type: models.CategoryTypeIncome, Icon: "💰"},
	{Name: "Bonus", Type: models.CategoryTypeIncome, Icon: "🎁"},
	{Name: "Side Income", Type: models.CategoryTypeIncome, Icon: "💵"},
	{Name: "Other Income", Type: models.CategoryTypeIncome, Icon: "📈"},
}

var defaultPaymentMethods = []models.PaymentMethod{
	{Name: "Cash", Type: models.PaymentMethodCash},
	{Name: "Credit Card", Type: models.PaymentMethodCredit},
	{Name: "IC Card", Type: models.PaymentMethodIC},
	{Name: "Digital Payment", Type: models.PaymentMethodQR},
	{Name: "Bank Transfer", Type: models.PaymentMethodBank},
}

// familyService handles family and membership business logic.
type familyService struct {
	db *gorm.DB
}

// NewFamilyService creates a new FamilyServicer.
func NewFamilyService(db *gorm.DB) FamilyServicer {
	return &familyService{db: db}
}

// CreateFamily creates a family with the user as its first member, seeds the
// default categories and payment methods, and creates notification settings.
func (s *familyService) CreateFamily(userID uint, familyName, nickname string, currencyID *uint) (*models.Family, *models.FamilyMember, error) {
	if familyName == "" || nickname == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "family name and nickname are required")
	}

	var count int64
	s.db.Model(&models.FamilyMember{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, nil, apperrors.ErrAlreadyInFamily
	}

	family := &models.Family{Name: familyName, CurrencyID: currencyID}
	member := &models.FamilyMember{UserID: userID, Nickname: nickname}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}

		member.FamilyID = family.ID
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		for _, c := range defaultCategories {
			c.FamilyID = family.ID
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		for _, m := range defaultPaymentMethods {
			m.FamilyID = family.ID
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}

		settings := &models.NotificationSettings{FamilyID: family.ID, EnableNotifications: true, DaysWithoutLog: 3}
		return tx.Create(settings).Error
	})
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return family, member, nil
}

// GetFamilyByID returns a family with its currency preloaded.
func (s *familyService) GetFamilyByID(familyID uint) (*models.Family, error) {
	var family models.Family
	if err := s.db.Preload("Currency").First(&family, familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFamilyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &family, nil
}

// GetMemberByUserID returns the family membership for a user.
func (s *familyService) GetMemberByUserID(userID uint) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := s.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoFamily
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// ListMembers returns all members of a family.
func (s *familyService) ListMembers(familyID uint) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := s.db.Preload("User").Where("family_id = ?", familyID).Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// CreateInvite issues a single-use join code valid for seven days.
func (s *familyService) CreateInvite(familyID, memberID uint) (*models.FamilyInvite, error) {
	invite := &models.FamilyInvite{
		FamilyID:    familyID,
		Code:        uuid.New(),
		CreatedByID: &memberID,
		ExpiresAt:   time.Now().Add(inviteValidity),
	}
	if err := s.db.Create(invite).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return invite, nil
}

// JoinFamily redeems an invite code and adds the user to the family.
func (s *familyService) JoinFamily(userID uint, code, nickname string) (*models.FamilyMember, error) {
	if nickname == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nickname is required")
	}

	if !uuid.IsValid(code) {
		return nil, apperrors.ErrInviteNotFound
	}

	var count int64
	s.db.Model(&models.FamilyMember{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrAlreadyInFamily
	}

	var invite models.FamilyInvite
	if err := s.db.Where("code = ?", code).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	if !invite.Valid(now) {
		return nil, apperrors.ErrInviteInvalid
	}

	member := &models.FamilyMember{UserID: userID, FamilyID: invite.FamilyID, Nickname: nickname}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Model(&invite).Updates(map[string]interface{}{
			"is_used":    true,
			"used_by_id": userID,
			"used_at":    now,
		}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return member, nil
}

// GetNotificationSettings returns the reminder settings for a family,
// creating the default row if none exists yet.
func (s *familyService) GetNotificationSettings(familyID uint) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := s.db.Where("family_id = ?", familyID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.NotificationSettings{FamilyID: familyID, EnableNotifications: true, DaysWithoutLog: 3}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateNotificationSettings replaces the reminder configuration.
func (s *familyService) UpdateNotificationSettings(familyID uint, enabled bool, daysWithoutLog int, emails string) (*models.NotificationSettings, error) {
	if daysWithoutLog < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days_without_log must be at least 1")
	}

	settings, err := s.GetNotificationSettings(familyID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"enable_notifications": enabled,
		"days_without_log":     daysWithoutLog,
		"notification_emails":  emails,
	}
	if err := s.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// ListCurrencies returns the available display currencies ordered by code.
func (s *familyService) ListCurrencies() ([]models.Currency, error) {
	var currencies []models.Currency
	if err := s.db.Order("code ASC").Find(&currencies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currencies, nil
}
