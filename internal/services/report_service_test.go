package services

import (
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

func TestMonthlySummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewReportService(db)

	t.Run("aggregates one month", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		salary := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeIncome, false)
		food := testutil.CreateTestCategory(t, db, family.ID)

		testutil.CreateTestTransaction(t, db, family.ID, salary.ID, models.TransactionTypeIncome, 200000, testutil.Date(2024, time.March, 5))
		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 5000, testutil.Date(2024, time.March, 10))
		testutil.CreateTestSaving(t, db, family.ID, 10000, testutil.Date(2024, time.March, 15))

		// Outside the month, must not count.
		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 99999, testutil.Date(2024, time.April, 1))

		summary, err := svc.MonthlySummary(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)

		if summary.IncomeTotal != 200000 {
			t.Errorf("expected income 200000, got %d", summary.IncomeTotal)
		}
		if summary.ExpenseTotal != 5000 {
			t.Errorf("expected expense 5000, got %d", summary.ExpenseTotal)
		}
		if summary.CashSavingTotal != 10000 {
			t.Errorf("expected cash saving 10000, got %d", summary.CashSavingTotal)
		}
		if summary.Balance != 185000 {
			t.Errorf("expected balance 185000, got %d", summary.Balance)
		}
		if summary.TotalSavings != 10000 {
			t.Errorf("expected total savings 10000, got %d", summary.TotalSavings)
		}
		if len(summary.CategoryBreakdown) != 1 {
			t.Fatalf("expected 1 breakdown row, got %d", len(summary.CategoryBreakdown))
		}
		if summary.CategoryBreakdown[0].Total != 5000 {
			t.Errorf("expected breakdown total 5000, got %d", summary.CategoryBreakdown[0].Total)
		}
	})

	t.Run("insurance expenses count as both spend and savings", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		insurance := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeExpense, true)

		testutil.CreateTestTransaction(t, db, family.ID, insurance.ID, models.TransactionTypeExpense, 20000, testutil.Date(2024, time.March, 1))

		summary, err := svc.MonthlySummary(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)

		if summary.ExpenseTotal != 20000 {
			t.Errorf("expected expense 20000, got %d", summary.ExpenseTotal)
		}
		if summary.InsuranceSavingTotal != 20000 {
			t.Errorf("expected insurance 20000, got %d", summary.InsuranceSavingTotal)
		}
		if summary.Balance != -20000 {
			t.Errorf("expected balance -20000, got %d", summary.Balance)
		}
		if summary.TotalSavings != 20000 {
			t.Errorf("expected total savings 20000, got %d", summary.TotalSavings)
		}
	})

	t.Run("empty month returns zeros", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)

		summary, err := svc.MonthlySummary(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if summary.IncomeTotal != 0 || summary.ExpenseTotal != 0 || summary.Balance != 0 {
			t.Errorf("expected zero summary, got %+v", summary)
		}
		if len(summary.CategoryBreakdown) != 0 {
			t.Errorf("expected empty breakdown, got %v", summary.CategoryBreakdown)
		}
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		_, err := svc.MonthlySummary(family.ID, 2024, 13)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBudgetUsage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewReportService(db)

	t.Run("computes used, remaining, and percentage", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		food := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestBudget(t, db, family.ID, food.ID, 2024, 3, 30000)

		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 12000, testutil.Date(2024, time.March, 3))
		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 6000, testutil.Date(2024, time.March, 20))

		usage, err := svc.BudgetUsage(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if len(usage) != 1 {
			t.Fatalf("expected 1 budget row, got %d", len(usage))
		}
		if usage[0].Used != 18000 {
			t.Errorf("expected used 18000, got %d", usage[0].Used)
		}
		if usage[0].Remaining != 12000 {
			t.Errorf("expected remaining 12000, got %d", usage[0].Remaining)
		}
		if usage[0].Percentage != 60 {
			t.Errorf("expected 60%%, got %v", usage[0].Percentage)
		}
		if usage[0].IsOver {
			t.Error("expected budget not over")
		}
	})

	t.Run("overspent budget is flagged", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		food := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestBudget(t, db, family.ID, food.ID, 2024, 3, 1000)
		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 1500, testutil.Date(2024, time.March, 3))

		usage, err := svc.BudgetUsage(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if !usage[0].IsOver {
			t.Error("expected budget flagged over")
		}
		if usage[0].Remaining != -500 {
			t.Errorf("expected remaining -500, got %d", usage[0].Remaining)
		}
	})

	t.Run("zero budget yields zero percentage", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		food := testutil.CreateTestCategory(t, db, family.ID)
		testutil.CreateTestBudget(t, db, family.ID, food.ID, 2024, 3, 0)
		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 500, testutil.Date(2024, time.March, 3))

		usage, err := svc.BudgetUsage(family.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if usage[0].Percentage != 0 {
			t.Errorf("expected 0%% for zero budget, got %v", usage[0].Percentage)
		}
	})
}

func TestTrendSeries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewReportService(db)
	family, _ := testutil.CreateTestFamily(t, db)
	salary := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeIncome, false)
	insurance := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeExpense, true)

	// Sparse data: only two of the six months have activity.
	testutil.CreateTestTransaction(t, db, family.ID, salary.ID, models.TransactionTypeIncome, 100000, testutil.Date(2024, time.January, 10))
	testutil.CreateTestTransaction(t, db, family.ID, insurance.ID, models.TransactionTypeExpense, 5000, testutil.Date(2024, time.March, 10))
	testutil.CreateTestSaving(t, db, family.ID, 2000, testutil.Date(2024, time.March, 12))

	chart, err := svc.TrendSeries(family.ID, 2024, 6)
	testutil.AssertNoError(t, err)

	if len(chart.Labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(chart.Labels))
	}
	if chart.Labels[0] != "2024/1" || chart.Labels[5] != "2024/6" {
		t.Errorf("expected labels 2024/1..2024/6 oldest first, got %v", chart.Labels)
	}
	if chart.Income[0] != 100000 {
		t.Errorf("expected January income 100000, got %v", chart.Income[0])
	}
	if chart.Savings[2] != 7000 {
		t.Errorf("expected March savings 7000 (cash + insurance), got %v", chart.Savings[2])
	}
	for i := 3; i < 6; i++ {
		if chart.Income[i] != 0 || chart.Expense[i] != 0 || chart.Savings[i] != 0 {
			t.Errorf("expected empty month at index %d", i)
		}
	}
}

func TestTrendSeriesCrossesYearBoundary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewReportService(db)
	family, _ := testutil.CreateTestFamily(t, db)

	chart, err := svc.TrendSeries(family.ID, 2024, 2)
	testutil.AssertNoError(t, err)
	if chart.Labels[0] != "2023/9" {
		t.Errorf("expected first label 2023/9, got %v", chart.Labels[0])
	}
	if chart.Labels[5] != "2024/2" {
		t.Errorf("expected last label 2024/2, got %v", chart.Labels[5])
	}
}

func TestForecast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewReportService(db)

	t.Run("projects from trailing averages", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		salary := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeIncome, false)
		food := testutil.CreateTestCategory(t, db, family.ID)

		today := testutil.Date(2024, time.June, 15)
		// One bucket of history: income 90000, expense 30000, cash 12000.
		testutil.CreateTestTransaction(t, db, family.ID, salary.ID, models.TransactionTypeIncome, 90000, today.AddDate(0, 0, -40))
		testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 30000, today.AddDate(0, 0, -40))
		testutil.CreateTestSaving(t, db, family.ID, 12000, today.AddDate(0, 0, -40))

		forecast, err := svc.Forecast(family.ID, 2, today)
		testutil.AssertNoError(t, err)

		if forecast.Years != 2 {
			t.Errorf("expected 2 years, got %d", forecast.Years)
		}
		// Active-bucket averages: only the one bucket with data counts.
		if forecast.AvgIncome != 90000 {
			t.Errorf("expected avg income 90000, got %v", forecast.AvgIncome)
		}
		if forecast.AvgExpense != 30000 {
			t.Errorf("expected avg expense 30000, got %v", forecast.AvgExpense)
		}
		// Cash average is always divided by twelve.
		if forecast.AvgCashSaving != 1000 {
			t.Errorf("expected avg cash 1000, got %v", forecast.AvgCashSaving)
		}

		if len(forecast.Points) != 2 {
			t.Fatalf("expected 2 yearly points, got %d", len(forecast.Points))
		}
		// Monthly delta: 1000 + 90000 - 30000 = 61000; starting cash 12000.
		if want := 12000 + 61000*12.0; forecast.Points[0].CashSavings != want {
			t.Errorf("expected year-1 cash %v, got %v", want, forecast.Points[0].CashSavings)
		}
		if want := 12000 + 61000*24.0; forecast.Points[1].CashSavings != want {
			t.Errorf("expected year-2 cash %v, got %v", want, forecast.Points[1].CashSavings)
		}
	})

	t.Run("clamps horizon to sixty years", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		forecast, err := svc.Forecast(family.ID, 1000, testutil.Date(2024, time.June, 15))
		testutil.AssertNoError(t, err)
		if forecast.Years != 60 {
			t.Errorf("expected years clamped to 60, got %d", forecast.Years)
		}
		if len(forecast.Points) != 60 {
			t.Errorf("expected 60 points, got %d", len(forecast.Points))
		}
	})

	t.Run("no history projects flat", func(t *testing.T) {
		family, _ := testutil.CreateTestFamily(t, db)
		forecast, err := svc.Forecast(family.ID, 1, testutil.Date(2024, time.June, 15))
		testutil.AssertNoError(t, err)
		if forecast.Points[0].CashSavings != 0 || forecast.Points[0].InsuranceSavings != 0 {
			t.Errorf("expected flat zero projection, got %+v", forecast.Points[0])
		}
	})
}

func TestSavingsSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewReportService(db)
	family, _ := testutil.CreateTestFamily(t, db)
	insurance := testutil.CreateTestCategoryWithType(t, db, family.ID, models.CategoryTypeExpense, true)
	food := testutil.CreateTestCategory(t, db, family.ID)

	testutil.CreateTestSaving(t, db, family.ID, 50000, testutil.Date(2023, time.May, 1))
	testutil.CreateTestSaving(t, db, family.ID, 30000, testutil.Date(2024, time.February, 1))
	testutil.CreateTestTransaction(t, db, family.ID, insurance.ID, models.TransactionTypeExpense, 20000, testutil.Date(2024, time.January, 1))
	testutil.CreateTestTransaction(t, db, family.ID, food.ID, models.TransactionTypeExpense, 9999, testutil.Date(2024, time.January, 1))

	summary, err := svc.SavingsSummary(family.ID)
	testutil.AssertNoError(t, err)
	if summary.TotalCashSavings != 80000 {
		t.Errorf("expected cash 80000, got %d", summary.TotalCashSavings)
	}
	if summary.TotalInsuranceSavings != 20000 {
		t.Errorf("expected insurance 20000, got %d", summary.TotalInsuranceSavings)
	}
	if summary.GrandTotal != 100000 {
		t.Errorf("expected grand total 100000, got %d", summary.GrandTotal)
	}
}
