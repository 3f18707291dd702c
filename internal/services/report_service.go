package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// reportService implements the read-only aggregation and forecast engine.
// All queries are scoped to one family and never mutate state.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// monthRange returns [start, end) for a calendar month.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *reportService) sumTransactions(familyID uint, transactionType *models.TransactionType, insuranceOnly bool, start, end *time.Time) (int64, error) {
	query := s.db.Model(&models.Transaction{}).
		Where("transactions.family_id = ?", familyID)
	if transactionType != nil {
		query = query.Where("transactions.type = ?", *transactionType)
	}
	if insuranceOnly {
		query = query.Joins("JOIN categories ON categories.id = transactions.category_id").
			Where("categories.is_insurance_saving = ?", true)
	}
	if start != nil && end != nil {
		query = query.Where("transactions.date >= ? AND transactions.date < ?", *start, *end)
	}

	var total int64
	if err := query.Select("COALESCE(SUM(transactions.amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func (s *reportService) sumCashSavings(familyID uint, start, end *time.Time) (int64, error) {
	query := s.db.Model(&models.CashSaving{}).Where("family_id = ?", familyID)
	if start != nil && end != nil {
		query = query.Where("date >= ? AND date < ?", *start, *end)
	}

	var total int64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// MonthlySummary aggregates a family's month. The insurance sub-total is part
// of the expense total and is also added into TotalSavings, so money in an
// insurance category shows up in both figures.
func (s *reportService) MonthlySummary(familyID uint, year, month int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	start, end := monthRange(year, month)

	income := models.TransactionTypeIncome
	expense := models.TransactionTypeExpense

	incomeTotal, err := s.sumTransactions(familyID, &income, false, &start, &end)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.sumTransactions(familyID, &expense, false, &start, &end)
	if err != nil {
		return nil, err
	}
	cashTotal, err := s.sumCashSavings(familyID, &start, &end)
	if err != nil {
		return nil, err
	}
	insuranceTotal, err := s.sumTransactions(familyID, &expense, true, &start, &end)
	if err != nil {
		return nil, err
	}

	var breakdown []CategoryExpense
	if err := s.db.Model(&models.Transaction{}).
		Select("categories.name AS category_name, categories.is_insurance_saving, SUM(transactions.amount) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.family_id = ? AND transactions.type = ?", familyID, models.TransactionTypeExpense).
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Group("categories.name, categories.is_insurance_saving").
		Order("total DESC").
		Scan(&breakdown).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &MonthlySummary{
		Year:                 year,
		Month:                month,
		IncomeTotal:          incomeTotal,
		ExpenseTotal:         expenseTotal,
		CashSavingTotal:      cashTotal,
		InsuranceSavingTotal: insuranceTotal,
		Balance:              incomeTotal - expenseTotal - cashTotal,
		TotalSavings:         cashTotal + insuranceTotal,
		CategoryBreakdown:    breakdown,
	}, nil
}

// BudgetUsage computes spend against each budget of the month. Usage counts
// every transaction in the budget's category for the period, regardless of
// transaction type. Percentage is zero when the budget amount is zero.
func (s *reportService) BudgetUsage(familyID uint, year, month int) ([]BudgetUsage, error) {
	budgets, err := s.getBudgetsWithCategory(familyID, year, month)
	if err != nil {
		return nil, err
	}
	start, end := monthRange(year, month)

	usage := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		var used int64
		if err := s.db.Model(&models.Transaction{}).
			Where("family_id = ? AND category_id = ?", familyID, b.CategoryID).
			Where("date >= ? AND date < ?", start, end).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&used).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		remaining := b.Amount - used
		var pct float64
		if b.Amount != 0 {
			pct = float64(used) / float64(b.Amount) * 100
		}

		name := ""
		if b.Category != nil {
			name = b.Category.Name
		}
		usage = append(usage, BudgetUsage{
			BudgetID:     b.ID,
			CategoryName: name,
			Amount:       b.Amount,
			Used:         used,
			Remaining:    remaining,
			Percentage:   pct,
			IsOver:       remaining < 0,
		})
	}
	return usage, nil
}

func (s *reportService) getBudgetsWithCategory(familyID uint, year, month int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("family_id = ? AND year = ? AND month = ?", familyID, year, month).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// TrendSeries returns six calendar months of totals ending at the anchor
// month, oldest first. Savings per month is cash set aside plus insurance
// expenses.
func (s *reportService) TrendSeries(familyID uint, anchorYear, anchorMonth int) (*ChartData, error) {
	if anchorMonth < 1 || anchorMonth > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	income := models.TransactionTypeIncome
	expense := models.TransactionTypeExpense

	chart := &ChartData{
		Labels:  make([]string, 0, 6),
		Income:  make([]float64, 0, 6),
		Expense: make([]float64, 0, 6),
		Savings: make([]float64, 0, 6),
	}

	for i := 5; i >= 0; i-- {
		month := anchorMonth - i
		year := anchorYear
		for month < 1 {
			month += 12
			year--
		}
		start, end := monthRange(year, month)

		incomeTotal, err := s.sumTransactions(familyID, &income, false, &start, &end)
		if err != nil {
			return nil, err
		}
		expenseTotal, err := s.sumTransactions(familyID, &expense, false, &start, &end)
		if err != nil {
			return nil, err
		}
		cashTotal, err := s.sumCashSavings(familyID, &start, &end)
		if err != nil {
			return nil, err
		}
		insuranceTotal, err := s.sumTransactions(familyID, &expense, true, &start, &end)
		if err != nil {
			return nil, err
		}

		chart.Labels = append(chart.Labels, fmt.Sprintf("%d/%d", year, month))
		chart.Income = append(chart.Income, float64(incomeTotal))
		chart.Expense = append(chart.Expense, float64(expenseTotal))
		chart.Savings = append(chart.Savings, float64(cashTotal+insuranceTotal))
	}
	return chart, nil
}

// Forecast projects savings growth from twelve trailing 30-day buckets.
//
// The buckets start 365 days before today and are 30 days wide, so they do
// not align with calendar months. Income, expense, and insurance averages are
// taken over buckets that had activity; the cash average is always divided by
// twelve. The insurance history here counts every transaction in an
// insurance-flagged category, income included, unlike the monthly summary.
// The projection advances month by month and keeps one snapshot per year.
func (s *reportService) Forecast(familyID uint, years int, today time.Time) (*ForecastResult, error) {
	if years < 1 {
		years = 1
	}
	if years > 60 {
		years = 60
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -365)

	var (
		sumIncome, sumExpense, sumCash, sumInsurance             int64
		monthsIncome, monthsExpense, monthsInsurance, monthsCash int
	)

	income := models.TransactionTypeIncome
	expense := models.TransactionTypeExpense

	for i := 0; i < 12; i++ {
		bucketStart := windowStart.AddDate(0, 0, 30*i)
		bucketEnd := bucketStart.AddDate(0, 0, 30)

		in, err := s.sumTransactions(familyID, &income, false, &bucketStart, &bucketEnd)
		if err != nil {
			return nil, err
		}
		ex, err := s.sumTransactions(familyID, &expense, false, &bucketStart, &bucketEnd)
		if err != nil {
			return nil, err
		}
		cash, err := s.sumCashSavings(familyID, &bucketStart, &bucketEnd)
		if err != nil {
			return nil, err
		}
		ins, err := s.sumTransactions(familyID, nil, true, &bucketStart, &bucketEnd)
		if err != nil {
			return nil, err
		}

		if in > 0 {
			sumIncome += in
			monthsIncome++
		}
		if ex > 0 {
			sumExpense += ex
			monthsExpense++
		}
		if cash > 0 {
			sumCash += cash
			monthsCash++
		}
		if ins > 0 {
			sumInsurance += ins
			monthsInsurance++
		}
	}

	var avgIncome, avgExpense, avgInsurance float64
	if monthsIncome > 0 {
		avgIncome = float64(sumIncome) / float64(monthsIncome)
	}
	if monthsExpense > 0 {
		avgExpense = float64(sumExpense) / float64(monthsExpense)
	}
	if monthsInsurance > 0 {
		avgInsurance = float64(sumInsurance) / float64(monthsInsurance)
	}
	avgCash := float64(sumCash) / 12

	totalCash, err := s.sumCashSavings(familyID, nil, nil)
	if err != nil {
		return nil, err
	}
	totalInsurance, err := s.sumTransactions(familyID, nil, true, nil, nil)
	if err != nil {
		return nil, err
	}

	cumulativeCash := float64(totalCash)
	cumulativeInsurance := float64(totalInsurance)
	points := make([]ForecastPoint, 0, years)

	for i := 1; i <= years*12; i++ {
		futureMonth := today.AddDate(0, 0, 30*i)
		cumulativeCash += avgCash + avgIncome - avgExpense
		cumulativeInsurance += avgInsurance

		if i%12 == 0 {
			points = append(points, ForecastPoint{
				Year:             futureMonth.Year(),
				CashSavings:      cumulativeCash,
				InsuranceSavings: cumulativeInsurance,
				TotalSavings:     cumulativeCash + cumulativeInsurance,
			})
		}
	}

	return &ForecastResult{
		Years:            years,
		AvgIncome:        avgIncome,
		AvgExpense:       avgExpense,
		AvgCashSaving:    avgCash,
		AvgInsurance:     avgInsurance,
		Points:           points,
		CurrentCash:      float64(totalCash),
		CurrentInsurance: float64(totalInsurance),
	}, nil
}

// SavingsSummary returns the family's all-time savings position.
func (s *reportService) SavingsSummary(familyID uint) (*SavingsSummary, error) {
	totalCash, err := s.sumCashSavings(familyID, nil, nil)
	if err != nil {
		return nil, err
	}

	expense := models.TransactionTypeExpense
	totalInsurance, err := s.sumTransactions(familyID, &expense, true, nil, nil)
	if err != nil {
		return nil, err
	}

	return &SavingsSummary{
		TotalCashSavings:      totalCash,
		TotalInsuranceSavings: totalInsurance,
		GrandTotal:            totalCash + totalInsurance,
	}, nil
}
