package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// exportService streams ledger data in exchange formats.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

var csvHeader = []string{"date", "type", "category", "amount", "payment_method", "description", "member"}

// WriteMonthlyCSV writes one month of transactions as CSV, oldest first.
func (s *exportService) WriteMonthlyCSV(w io.Writer, familyID uint, year, month int) error {
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	start, end := monthRange(year, month)

	var txns []models.Transaction
	if err := s.db.Preload("Category").Preload("PaymentMethod").Preload("Member").
		Where("family_id = ? AND date >= ? AND date < ?", familyID, start, end).
		Order("date ASC, id ASC").
		Find(&txns).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, t := range txns {
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}
		method := ""
		if t.PaymentMethod != nil {
			method = t.PaymentMethod.Name
		}
		member := ""
		if t.Member != nil {
			member = t.Member.Nickname
		}

		record := []string{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			category,
			strconv.FormatInt(t.Amount, 10),
			method,
			t.Description,
			member,
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
