package services

import (
	"strings"
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

func TestCreateTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewRecurringService(db, NewCategoryService(db))
	family, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)
	start := testutil.Date(2024, time.January, 1)

	t.Run("creates an active template", func(t *testing.T) {
		tmpl, err := svc.CreateTemplate(family.ID, nil, models.TransactionTypeExpense, category.ID, 5000, nil, "Rent", models.FrequencyMonthly, start, nil, nil)
		testutil.AssertNoError(t, err)
		if !tmpl.IsActive {
			t.Error("expected new template to be active")
		}
		if tmpl.LastGenerated != nil {
			t.Error("expected new template to have no cursor")
		}
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		_, err := svc.CreateTemplate(family.ID, nil, models.TransactionTypeExpense, category.ID, 5000, nil, "Rent", models.Frequency("fortnightly"), start, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_FREQUENCY")
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		end := testutil.Date(2023, time.December, 1)
		_, err := svc.CreateTemplate(family.ID, nil, models.TransactionTypeExpense, category.ID, 5000, nil, "Rent", models.FrequencyMonthly, start, &end, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects category from another family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		otherCategory := testutil.CreateTestCategory(t, db, other.ID)
		_, err := svc.CreateTemplate(family.ID, nil, models.TransactionTypeExpense, otherCategory.ID, 5000, nil, "Rent", models.FrequencyMonthly, start, nil, nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGenerateDue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewRecurringService(db, NewCategoryService(db))

	t.Run("fires a due template and advances the cursor", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		category := testutil.CreateTestCategory(t, db, family.ID)
		tmpl := testutil.CreateTestTemplate(t, db, family.ID, category.ID, 80000, testutil.Date(2024, time.January, 1))

		today := testutil.Date(2024, time.February, 1)
		result, err := svc.GenerateDue(family.ID, today)
		testutil.AssertNoError(t, err)
		if result.Generated != 1 {
			t.Fatalf("expected 1 generated, got %d", result.Generated)
		}

		var txn models.Transaction
		if err := db.Where("family_id = ?", family.ID).First(&txn).Error; err != nil {
			t.Fatalf("expected a generated transaction: %v", err)
		}
		if !txn.IsRecurring {
			t.Error("expected generated transaction to be flagged recurring")
		}
		if !strings.HasSuffix(txn.Description, " (recurring)") {
			t.Errorf("expected recurring suffix, got %q", txn.Description)
		}
		if !txn.Date.Equal(today) {
			t.Errorf("expected transaction dated %v, got %v", today, txn.Date)
		}
		if txn.Amount != 80000 {
			t.Errorf("expected amount 80000, got %d", txn.Amount)
		}

		var reloaded models.RecurringTemplate
		testutil.AssertNoError(t, db.First(&reloaded, tmpl.ID).Error)
		if reloaded.LastGenerated == nil || !reloaded.LastGenerated.Equal(today) {
			t.Errorf("expected cursor %v, got %v", today, reloaded.LastGenerated)
		}
	})

	t.Run("does not fire twice on the same day", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		category := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestTemplate(t, db, family.ID, category.ID, 1000, testutil.Date(2024, time.January, 1))

		today := testutil.Date(2024, time.February, 1)
		first, err := svc.GenerateDue(family.ID, today)
		testutil.AssertNoError(t, err)
		if first.Generated != 1 {
			t.Fatalf("expected 1 generated on first run, got %d", first.Generated)
		}

		second, err := svc.GenerateDue(family.ID, today)
		testutil.AssertNoError(t, err)
		if second.Generated != 0 {
			t.Errorf("expected 0 generated on second run, got %d", second.Generated)
		}

		var count int64
		db.Model(&models.Transaction{}).Where("family_id = ?", family.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 transaction, got %d", count)
		}
	})

	t.Run("losing the fire race is not counted as generated", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		category := testutil.CreateTestCategory(t, db, family.ID)
		tmpl := testutil.CreateTestTemplate(t, db, family.ID, category.ID, 1000, testutil.Date(2024, time.January, 1))

		today := testutil.Date(2024, time.February, 1)
		result, err := svc.GenerateDue(family.ID, today)
		testutil.AssertNoError(t, err)
		if result.Generated != 1 {
			t.Fatalf("expected 1 generated, got %d", result.Generated)
		}

		// Another run got there first: the locked re-check must report a
		// skip, not an insert.
		fired, err := svc.(*recurringService).fire(tmpl.ID, today)
		testutil.AssertNoError(t, err)
		if fired {
			t.Error("expected fire to skip an already generated template")
		}

		var count int64
		db.Model(&models.Transaction{}).Where("family_id = ?", family.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 transaction, got %d", count)
		}
	})

	t.Run("reports nothing due without firing", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		category := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestTemplate(t, db, family.ID, category.ID, 1000, testutil.Date(2024, time.January, 1))

		result, err := svc.GenerateDue(family.ID, testutil.Date(2024, time.January, 15))
		testutil.AssertNoError(t, err)
		if result.Generated != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})

	t.Run("collects per-template errors without blocking the batch", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		goodCategory := testutil.CreateTestCategory(t, db, family.ID)
		badCategory := testutil.CreateTestCategory(t, db, family.ID)

		broken := testutil.CreateTestTemplate(t, db, family.ID, badCategory.ID, 1000, testutil.Date(2024, time.January, 1))
		testutil.CreateTestTemplate(t, db, family.ID, goodCategory.ID, 2000, testutil.Date(2024, time.January, 1))
		testutil.AssertNoError(t, db.Delete(badCategory).Error)

		result, err := svc.GenerateDue(family.ID, testutil.Date(2024, time.February, 1))
		testutil.AssertNoError(t, err)
		if result.Generated != 1 {
			t.Errorf("expected 1 generated, got %d", result.Generated)
		}
		if len(result.Errors) != 1 {
			t.Fatalf("expected 1 template error, got %d", len(result.Errors))
		}
		if result.Errors[0].TemplateID != broken.ID {
			t.Errorf("expected error for template %d, got %d", broken.ID, result.Errors[0].TemplateID)
		}
	})

	t.Run("day 31 template fires on the 28th of February", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		category := testutil.CreateTestCategory(t, db, family.ID)

		day := 31
		last := testutil.Date(2024, time.January, 31)
		tmpl := testutil.CreateTestTemplate(t, db, family.ID, category.ID, 3000, testutil.Date(2023, time.December, 31))
		testutil.AssertNoError(t, db.Model(tmpl).Updates(map[string]interface{}{
			"day_of_month":   day,
			"last_generated": last,
		}).Error)

		notYet, err := svc.GenerateDue(family.ID, testutil.Date(2024, time.February, 27))
		testutil.AssertNoError(t, err)
		if notYet.Generated != 0 {
			t.Errorf("expected nothing due on Feb 27, got %d", notYet.Generated)
		}

		due, err := svc.GenerateDue(family.ID, testutil.Date(2024, time.February, 28))
		testutil.AssertNoError(t, err)
		if due.Generated != 1 {
			t.Errorf("expected template due on Feb 28, got %d", due.Generated)
		}
	})
}

func TestToggleTemplate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewRecurringService(db, NewCategoryService(db))
	family, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, family.ID)
	tmpl := testutil.CreateTestTemplate(t, db, family.ID, category.ID, 1000, testutil.Date(2024, time.January, 1))

	t.Run("pauses and resumes", func(t *testing.T) {
		_, err := svc.ToggleTemplate(family.ID, tmpl.ID)
		testutil.AssertNoError(t, err)

		var reloaded models.RecurringTemplate
		testutil.AssertNoError(t, db.First(&reloaded, tmpl.ID).Error)
		if reloaded.IsActive {
			t.Error("expected template to be paused")
		}

		_, err = svc.ToggleTemplate(family.ID, tmpl.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, db.First(&reloaded, tmpl.ID).Error)
		if !reloaded.IsActive {
			t.Error("expected template to be active again")
		}
	})

	t.Run("scoped to the family", func(t *testing.T) {
		other, _ := testutil.CreateTestFamily(t, db)
		_, err := svc.ToggleTemplate(other.ID, tmpl.ID)
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})
}

func TestFamiliesWithActiveTemplates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewRecurringService(db, NewCategoryService(db))

	withTemplates, _ := testutil.CreateTestFamily(t, db)
	category := testutil.CreateTestCategory(t, db, withTemplates.ID)
	testutil.CreateTestTemplate(t, db, withTemplates.ID, category.ID, 1000, testutil.Date(2024, time.January, 1))
	testutil.CreateTestTemplate(t, db, withTemplates.ID, category.ID, 2000, testutil.Date(2024, time.January, 1))

	paused, _ := testutil.CreateTestFamily(t, db)
	pausedCategory := testutil.CreateTestCategory(t, db, paused.ID)
	pausedTmpl := testutil.CreateTestTemplate(t, db, paused.ID, pausedCategory.ID, 1000, testutil.Date(2024, time.January, 1))
	testutil.AssertNoError(t, db.Model(pausedTmpl).Update("is_active", false).Error)

	testutil.CreateTestFamily(t, db)

	familyIDs, err := svc.FamiliesWithActiveTemplates()
	testutil.AssertNoError(t, err)
	if len(familyIDs) != 1 || familyIDs[0] != withTemplates.ID {
		t.Errorf("expected only family %d, got %v", withTemplates.ID, familyIDs)
	}
}
