package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// transactionService handles ledger entry business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{db: db, categoryService: categoryService}
}

// CreateTransaction records an income or expense entry. The category and
// payment method must belong to the same family.
func (s *transactionService) CreateTransaction(familyID uint, memberID *uint, transactionType models.TransactionType, categoryID uint, amount int64, paymentMethodID *uint, date time.Time, description string) (*models.Transaction, error) {
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
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

	txn := &models.Transaction{
		FamilyID:        familyID,
		MemberID:        memberID,
		Type:            transactionType,
		CategoryID:      categoryID,
		Amount:          amount,
		PaymentMethodID: paymentMethodID,
		Date:            date,
		Description:     description,
	}
	if err := s.db.Create(txn).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Preload("Category").Preload("PaymentMethod").Preload("Member").
		First(txn, txn.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txn, nil
}

// GetFamilyTransactions returns a page of the family's transactions, newest
// date first, with optional type/category/period filters.
func (s *transactionService) GetFamilyTransactions(familyID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("family_id = ?", familyID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Year != nil && filter.Month != nil {
		start := time.Date(*filter.Year, time.Month(*filter.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	} else if filter.Year != nil {
		start := time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txns []models.Transaction
	if err := query.Preload("Category").Preload("PaymentMethod").Preload("Member").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(txns, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTransactionByID returns a transaction scoped to the family.
func (s *transactionService) GetTransactionByID(familyID, transactionID uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Preload("Category").Preload("PaymentMethod").Preload("Member").
		Where("id = ? AND family_id = ?", transactionID, familyID).
		First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(familyID, transactionID uint) error {
	txn, err := s.GetTransactionByID(familyID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(txn).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
