package services

import (
	"testing"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

func TestSetBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewBudgetService(db, NewCategoryService(db))
	family, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)

	t.Run("creates a budget", func(t *testing.T) {
		budget, err := svc.SetBudget(family.ID, category.ID, 2024, 3, 30000)
		testutil.AssertNoError(t, err)
		if budget.Amount != 30000 {
			t.Errorf("expected amount 30000, got %d", budget.Amount)
		}
	})

	t.Run("setting again replaces the amount in place", func(t *testing.T) {
		budget, err := svc.SetBudget(family.ID, category.ID, 2024, 3, 45000)
		testutil.AssertNoError(t, err)
		if budget.Amount != 45000 {
			t.Errorf("expected amount 45000, got %d", budget.Amount)
		}

		var count int64
		db.Model(&models.Budget{}).
			Where("family_id = ? AND category_id = ? AND year = ? AND month = ?", family.ID, category.ID, 2024, 3).
			Count(&count)
		if count != 1 {
			t.Errorf("expected a single budget row, got %d", count)
		}
	})

	t.Run("separate months are separate rows", func(t *testing.T) {
		_, err := svc.SetBudget(family.ID, category.ID, 2024, 4, 10000)
		testutil.AssertNoError(t, err)

		budgets, err := svc.GetFamilyBudgets(family.ID, 2024, 4)
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 || budgets[0].Amount != 10000 {
			t.Errorf("unexpected April budgets: %+v", budgets)
		}
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		_, err := svc.SetBudget(family.ID, category.ID, 2024, 0, 1000)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects category from another family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		otherCategory := testutil.CreateTestCategory(t, db, other.ID)
		_, err := svc.SetBudget(family.ID, otherCategory.ID, 2024, 3, 1000)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewBudgetService(db, NewCategoryService(db))
	family, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)
	budget := testutil.CreateTestBudget(t, db, family.ID, category.ID, 2024, 3, 5000)

	t.Run("scoped to the family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		err := svc.DeleteBudget(other.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("deletes", func(t *testing.T) {
		testutil.AssertNoError(t, svc.DeleteBudget(family.ID, budget.ID))
		budgets, err := svc.GetFamilyBudgets(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if len(budgets) != 0 {
			t.Errorf("expected no budgets, got %d", len(budgets))
		}
	})
}
