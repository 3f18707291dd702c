package services

import (
	"context"
	"io"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// FamilyServicer defines the contract for family/tenant management.
type FamilyServicer interface {
	CreateFamily(userID uint, familyName, nickname string, currencyID *uint) (*models.Family, *models.FamilyMember, error)
	GetFamilyByID(familyID uint) (*models.Family, error)
	GetMemberByUserID(userID uint) (*models.FamilyMember, error)
	ListMembers(familyID uint) ([]models.FamilyMember, error)
	CreateInvite(familyID, memberID uint) (*models.FamilyInvite, error)
	JoinFamily(userID uint, code, nickname string) (*models.FamilyMember, error)
	GetNotificationSettings(familyID uint) (*models.NotificationSettings, error)
	UpdateNotificationSettings(familyID uint, enabled bool, daysWithoutLog int, emails string) (*models.NotificationSettings, error)
	ListCurrencies() ([]models.Currency, error)
}

// CategoryServicer defines the contract for category management.
type CategoryServicer interface {
	CreateCategory(familyID uint, name string, categoryType models.CategoryType, isInsuranceSaving bool, icon string) (*models.Category, error)
	GetFamilyCategories(familyID uint, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(familyID, categoryID uint) (*models.Category, error)
	UpdateCategory(familyID, categoryID uint, name string, isInsuranceSaving *bool, icon string) (*models.Category, error)
	DeleteCategory(familyID, categoryID uint) error
}

// PaymentMethodServicer defines the contract for payment method management.
type PaymentMethodServicer interface {
	CreatePaymentMethod(familyID uint, name string, methodType models.PaymentMethodType) (*models.PaymentMethod, error)
	GetFamilyPaymentMethods(familyID uint) ([]models.PaymentMethod, error)
	GetPaymentMethodByID(familyID, methodID uint) (*models.PaymentMethod, error)
	DeletePaymentMethod(familyID, methodID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type       *models.TransactionType
	CategoryID *uint
	Year       *int
	Month      *int
}

// TransactionServicer defines the contract for ledger entries.
type TransactionServicer interface {
	CreateTransaction(familyID uint, memberID *uint, transactionType models.TransactionType, categoryID uint, amount int64, paymentMethodID *uint, date time.Time, description string) (*models.Transaction, error)
	GetFamilyTransactions(familyID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(familyID, transactionID uint) (*models.Transaction, error)
	DeleteTransaction(familyID, transactionID uint) error
}

// SavingServicer defines the contract for cash savings.
type SavingServicer interface {
	CreateSaving(familyID uint, memberID *uint, amount int64, date time.Time, description string) (*models.CashSaving, error)
	GetFamilySavings(familyID uint, page pagination.PageRequest) (*pagination.PageResponse[models.CashSaving], error)
	DeleteSaving(familyID, savingID uint) error
}

// BudgetServicer defines the contract for monthly category budgets.
type BudgetServicer interface {
	SetBudget(familyID, categoryID uint, year, month int, amount int64) (*models.Budget, error)
	GetFamilyBudgets(familyID uint, year, month int) ([]models.Budget, error)
	DeleteBudget(familyID, budgetID uint) error
}

// TemplateError describes one template that failed during a batch run.
type TemplateError struct {
	TemplateID  uint   `json:"template_id"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

// GenerateResult summarizes a batch generation run. Generated is zero when
// nothing was due, which callers report distinctly from a run that produced
// transactions.
type GenerateResult struct {
	Generated int             `json:"generated"`
	Errors    []TemplateError `json:"errors,omitempty"`
}

// RecurringServicer defines the contract for recurring template scheduling.
type RecurringServicer interface {
	CreateTemplate(familyID uint, memberID *uint, transactionType models.TransactionType, categoryID uint, amount int64, paymentMethodID *uint, description string, frequency models.Frequency, startDate time.Time, endDate *time.Time, dayOfMonth *int) (*models.RecurringTemplate, error)
	GetFamilyTemplates(familyID uint, activeOnly bool) ([]models.RecurringTemplate, error)
	ToggleTemplate(familyID, templateID uint) (*models.RecurringTemplate, error)
	GenerateDue(familyID uint, today time.Time) (*GenerateResult, error)
	FamiliesWithActiveTemplates() ([]uint, error)
}

// CategoryExpense is one row of a monthly category breakdown.
type CategoryExpense struct {
	CategoryName      string `json:"category_name"`
	IsInsuranceSaving bool   `json:"is_insurance_saving"`
	Total             int64  `json:"total"`
}

// MonthlySummary aggregates one family's month. InsuranceSavingTotal is a
// sub-total of ExpenseTotal, and is also counted into TotalSavings.
type MonthlySummary struct {
	Year                 int               `json:"year"`
	Month                int               `json:"month"`
	IncomeTotal          int64             `json:"income_total"`
	ExpenseTotal         int64             `json:"expense_total"`
	CashSavingTotal      int64             `json:"cash_saving_total"`
	InsuranceSavingTotal int64             `json:"insurance_saving_total"`
	Balance              int64             `json:"balance"`
	TotalSavings         int64             `json:"total_savings"`
	CategoryBreakdown    []CategoryExpense `json:"category_breakdown"`
}

// BudgetUsage is the derived spend-vs-target view for one budget row.
type BudgetUsage struct {
	BudgetID     uint    `json:"budget_id"`
	CategoryName string  `json:"category_name"`
	Amount       int64   `json:"amount"`
	Used         int64   `json:"used"`
	Remaining    int64   `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	IsOver       bool    `json:"is_over"`
}

// ChartData holds parallel arrays for the trailing trend chart, one entry
// per month in chronological order.
type ChartData struct {
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
	Savings []float64 `json:"savings"`
}

// ForecastPoint is one yearly snapshot of the savings projection.
type ForecastPoint struct {
	Year             int     `json:"year"`
	CashSavings      float64 `json:"cash_savings"`
	InsuranceSavings float64 `json:"insurance_savings"`
	TotalSavings     float64 `json:"total_savings"`
}

// ForecastResult is the projection series plus the averages it was built from.
type ForecastResult struct {
	Years             int             `json:"years"`
	AvgIncome         float64         `json:"avg_income"`
	AvgExpense        float64         `json:"avg_expense"`
	AvgCashSaving     float64         `json:"avg_cash_saving"`
	AvgInsurance      float64         `json:"avg_insurance"`
	CurrentCash       float64         `json:"current_cash_savings"`
	CurrentInsurance  float64         `json:"current_insurance_savings"`
	Points            []ForecastPoint `json:"points"`
}

// SavingsSummary is the all-time savings position of a family.
type SavingsSummary struct {
	TotalCashSavings      int64 `json:"total_cash_savings"`
	TotalInsuranceSavings int64 `json:"total_insurance_savings"`
	GrandTotal            int64 `json:"grand_total"`
}

// ReportServicer defines the contract for the read-only aggregation and
// forecast engine.
type ReportServicer interface {
	MonthlySummary(familyID uint, year, month int) (*MonthlySummary, error)
	BudgetUsage(familyID uint, year, month int) ([]BudgetUsage, error)
	TrendSeries(familyID uint, anchorYear, anchorMonth int) (*ChartData, error)
	Forecast(familyID uint, years int, today time.Time) (*ForecastResult, error)
	SavingsSummary(familyID uint) (*SavingsSummary, error)
}

// NotificationServicer defines the contract for the log reminder job.
type NotificationServicer interface {
	SendReminders(ctx context.Context, now time.Time) (int, error)
}

// AnalysisServicer produces natural-language commentary on a family's month.
type AnalysisServicer interface {
	AnalyzeMonth(ctx context.Context, familyID uint, year, month int) (string, error)
}

// ExportServicer streams ledger data in exchange formats.
type ExportServicer interface {
	WriteMonthlyCSV(w io.Writer, familyID uint, year, month int) error
}
