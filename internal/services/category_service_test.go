package services

import (
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewCategoryService(db)
	family, _ := testutil.CreateTestFamily(t, db)

	t.Run("creates a category", func(t *testing.T) {
		category, err := svc.CreateCategory(family.ID, "Groceries", models.CategoryTypeExpense, false, "🍚")
		testutil.AssertNoError(t, err)
		if category.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", category.Name)
		}
	})

	t.Run("rejects duplicate name within the family", func(t *testing.T) {
		_, err := svc.CreateCategory(family.ID, "Groceries", models.CategoryTypeIncome, false, "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same name allowed in another family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		_, err := svc.CreateCategory(other.ID, "Groceries", models.CategoryTypeExpense, false, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := svc.CreateCategory(family.ID, "Misc", models.CategoryType("transfer"), false, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetFamilyCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewCategoryService(db)
	family, _ := testutil.CreateTestFamily(t, db)

	testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeIncome, false)
	testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeExpense, false)
	testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeExpense, true)

	t.Run("returns all categories", func(t *testing.T) {
		resp, err := svc.GetFamilyCategories(family.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 3 {
			t.Errorf("expected 3 categories, got %d", resp.TotalItems)
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		expense := models.CategoryTypeExpense
		resp, err := svc.GetFamilyCategories(family.ID, &expense, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 expense categories, got %d", resp.TotalItems)
		}
	})

	t.Run("does not leak other families", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		resp, err := svc.GetFamilyCategories(other.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 0 {
			t.Errorf("expected no categories, got %d", resp.TotalItems)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewCategoryService(db)
	family, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)

	t.Run("renames and flips insurance flag", func(t *testing.T) {
		flag := true
		updated, err := svc.UpdateCategory(family.ID, category.ID, "Pension", &flag, "")
		testutil.AssertNoError(t, err)
		if updated.Name != "Pension" || !updated.IsInsuranceSaving {
			t.Errorf("unexpected category after update: %+v", updated)
		}
	})

	t.Run("rejects rename onto an existing name", func(t *testing.T) {
		other := testutil.CreateTestCategory(t, db, family.ID)
		_, err := svc.UpdateCategory(family.ID, other.ID, "Pension", nil, "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewCategoryService(db)
	family, _ := testutil.CreateTestFamily(t, db)

	t.Run("deletes an unused category", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, family.ID)
		testutil.AssertNoError(t, svc.DeleteCategory(family.ID, category.ID))

		_, err := svc.GetCategoryByID(family.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("refuses to delete a category with transactions", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestTransaction(t, db, family.ID, category.ID, models.TransactionTypeExpense, 100, testutil.Date(2024, time.March, 1))

		err := svc.DeleteCategory(family.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("refuses to delete a category with a template", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestTemplate(t, db, family.ID, category.ID, 100, testutil.Date(2024, time.January, 1))

		err := svc.DeleteCategory(family.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("scoped to the family", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, family.ID)
		other, _ := testutil.CreateTestFamily(t, db)
		err := svc.DeleteCategory(other.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
