package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"kakeibo/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a UTC midnight date, the form all ledger dates use.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestFamily creates a family with one member owned by a fresh user.
func CreateTestFamily(t *testing.T, db *gorm.DB) (*models.Family, *models.FamilyMember) {
	t.Helper()

	user := CreateTestUser(t, db)
	family := &models.Family{Name: fmt.Sprintf("Test Family %d", nextID())}
	if err := db.Create(family).Error; err != nil {
		t.Fatalf("failed to create test family: %v", err)
	}

	member := &models.FamilyMember{
		UserID:   user.ID,
		FamilyID: family.ID,
		Nickname: fmt.Sprintf("member%d", nextID()),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test family member: %v", err)
	}
	return family, member
}

// CreateTestCategory creates an expense category.
func CreateTestCategory(t *testing.T, db *gorm.DB, familyID uint) *models.Category {
	t.Helper()
	return CreateTestCategoryWithType(t, db, familyID, models.CategoryTypeExpense, false)
}

// CreateTestCategoryWithType creates a category with the given type and
// insurance flag.
func CreateTestCategoryWithType(t *testing.T, db *gorm.DB, familyID uint, categoryType models.CategoryType, isInsuranceSaving bool) *models.Category {
	t.Helper()

	category := &models.Category{
		FamilyID:          familyID,
		Name:              fmt.Sprintf("Test Category %d", nextID()),
		Type:              categoryType,
		IsInsuranceSaving: isInsuranceSaving,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPaymentMethod creates a cash payment method.
func CreateTestPaymentMethod(t *testing.T, db *gorm.DB, familyID uint) *models.PaymentMethod {
	t.Helper()

	method := &models.PaymentMethod{
		FamilyID: familyID,
		Name:     fmt.Sprintf("Test Method %d", nextID()),
		Type:     models.PaymentMethodCash,
	}
	if err := db.Create(method).Error; err != nil {
		t.Fatalf("failed to create test payment method: %v", err)
	}
	return method
}

// CreateTestTransaction creates a transaction on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, familyID, categoryID uint, transactionType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		FamilyID:   familyID,
		Type:       transactionType,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestSaving creates a cash saving on the given date.
func CreateTestSaving(t *testing.T, db *gorm.DB, familyID uint, amount int64, date time.Time) *models.CashSaving {
	t.Helper()

	saving := &models.CashSaving{
		FamilyID: familyID,
		Amount:   amount,
		Date:     date,
	}
	if err := db.Create(saving).Error; err != nil {
		t.Fatalf("failed to create test saving: %v", err)
	}
	return saving
}

// CreateTestBudget creates a budget for the given category and month.
func CreateTestBudget(t *testing.T, db *gorm.DB, familyID, categoryID uint, year, month int, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		FamilyID:   familyID,
		CategoryID: categoryID,
		Year:       year,
		Month:      month,
		Amount:     amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestTemplate creates an active monthly recurring template.
func CreateTestTemplate(t *testing.T, db *gorm.DB, familyID, categoryID uint, amount int64, startDate time.Time) *models.RecurringTemplate {
	t.Helper()

	tmpl := &models.RecurringTemplate{
		FamilyID:        familyID,
		TransactionType: models.TransactionTypeExpense,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     fmt.Sprintf("Test Template %d", nextID()),
		Frequency:       models.FrequencyMonthly,
		StartDate:       startDate,
		IsActive:        true,
	}
	if err := db.Create(tmpl).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return tmpl
}
