package services

import (
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewTransactionService(db, NewCategoryService(db))
	family, member := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)
	method := testutil.CreateTestPaymentMethod(t, db, family.ID)

	t.Run("records an expense", func(t *testing.T) {
		txn, err := svc.CreateTransaction(family.ID, &member.ID, models.TransactionTypeExpense, category.ID, 3500, &method.ID, testutil.Date(2024, time.March, 10), "Lunch")
		testutil.AssertNoError(t, err)
		if txn.Amount != 3500 {
			t.Errorf("expected amount 3500, got %d", txn.Amount)
		}
		if txn.Category == nil || txn.Category.ID != category.ID {
			t.Error("expected category preloaded")
		}
		if txn.IsRecurring {
			t.Error("expected manual transaction not flagged recurring")
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := svc.CreateTransaction(family.ID, &member.ID, models.TransactionTypeExpense, category.ID, -1, nil, testutil.Date(2024, time.March, 10), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("allows zero amount", func(t *testing.T) {
		_, err := svc.CreateTransaction(family.ID, &member.ID, models.TransactionTypeExpense, category.ID, 0, nil, testutil.Date(2024, time.March, 10), "")
		testutil.AssertNoError(t, err)
	})

	t.Run("rejects category from another family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		otherCategory := testutil.CreateTestCategory(t, db, other.ID)
		_, err := svc.CreateTransaction(family.ID, &member.ID, models.TransactionTypeExpense, otherCategory.ID, 100, nil, testutil.Date(2024, time.March, 10), "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("rejects payment method from another family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		otherMethod := testutil.CreateTestPaymentMethod(t, db, other.ID)
		_, err := svc.CreateTransaction(family.ID, &member.ID, models.TransactionTypeExpense, category.ID, 100, &otherMethod.ID, testutil.Date(2024, time.March, 10), "")
		testutil.AssertAppError(t, err, "PAYMENT_METHOD_NOT_FOUND")
	})
}

func TestGetFamilyTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewTransactionService(db, NewCategoryService(db))
	family, _ := testutil.CreateTestFamily(t, db)
	salary := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeIncome, false)
	food := testutil.CreateTestCategory(t, db, family.ID)

	testutil.CreateTestTransaction(t, db, family.ID, salary.ID, models.TransactionTypeIncome, 100000, testutil.Date(2024, time.February, 25))
	testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 2000, testutil.Date(2024, time.March, 1))
	testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 3000, testutil.Date(2024, time.March, 15))

	t.Run("newest first", func(t *testing.T) {
		resp, err := svc.GetFamilyTransactions(family.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 3 {
			t.Fatalf("expected 3 transactions, got %d", resp.TotalItems)
		}
		if !resp.Data[0].Date.After(resp.Data[2].Date) {
			t.Error("expected newest transaction first")
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		income := models.TransactionTypeIncome
		resp, err := svc.GetFamilyTransactions(family.ID, pagination.PageRequest{}, TransactionFilter{Type: &income})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", resp.TotalItems)
		}
	})

	t.Run("filters by month", func(t *testing.T) {
		year, month := 2024, 3
		resp, err := svc.GetFamilyTransactions(family.ID, pagination.PageRequest{}, TransactionFilter{Year: &year, Month: &month})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 March transactions, got %d", resp.TotalItems)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		resp, err := svc.GetFamilyTransactions(family.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &food.ID})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 food transactions, got %d", resp.TotalItems)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		resp, err := svc.GetFamilyTransactions(family.ID, pagination.PageRequest{Page: 1, PageSize: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 2 || resp.TotalPages != 2 {
			t.Errorf("expected 2 items over 2 pages, got %d items, %d pages", len(resp.Data), resp.TotalPages)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewTransactionService(db, NewCategoryService(db))
	family, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)
	txn := testutil.CreateTestTransaction(t, db, family.ID, category.ID, models.TransactionTypeExpense, 100, testutil.Date(2024, time.March, 1))

	t.Run("scoped to the family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		err := svc.DeleteTransaction(other.ID, txn.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("deletes", func(t *testing.T) {
		testutil.AssertNoError(t, svc.DeleteTransaction(family.ID, txn.ID))
		_, err := svc.GetTransactionByID(family.ID, txn.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
