package services

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"fintrack/backend/models"
	"fintrack/backend/storage"
)

func setupStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func addTx(t *testing.T, store storage.Store, date time.Time, amount float64, txType, category string) {
	t.Helper()
	tx := models.Transaction{
		Date:        date,
		Description: "seed",
		Amount:      amount,
		Type:        txType,
		Category:    category,
	}
	if err := store.AddTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildMonthlyReport(t *testing.T) {
	store := setupStore(t)
	march := func(day int) time.Time { return time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC) }

	addTx(t, store, march(1), 3000, models.TypeIncome, "Salary")
	addTx(t, store, march(5), 400, models.TypeExpense, "Rent")
	addTx(t, store, march(10), 100, models.TypeExpense, "Food")
	addTx(t, store, march(15), 100, models.TypeExpense, "Food")
	// Outside the month, must not count.
	addTx(t, store, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 999, models.TypeExpense, "Rent")

	report, err := BuildMonthlyReport(context.Background(), store, 2024, 3)
	if err != nil {
		t.Fatalf("BuildMonthlyReport failed: %v", err)
	}

	if report.Year != 2024 || report.Month != 3 {
		t.Errorf("Unexpected period: %d-%d", report.Year, report.Month)
	}
	if !approx(report.TotalIncome, 3000) {
		t.Errorf("Expected income 3000, got %v", report.TotalIncome)
	}
	if !approx(report.TotalExpenses, 600) {
		t.Errorf("Expected expenses 600, got %v", report.TotalExpenses)
	}
	if !approx(report.NetSavings, 2400) {
		t.Errorf("Expected net savings 2400, got %v", report.NetSavings)
	}
	if !approx(report.SavingsRate, 80) {
		t.Errorf("Expected savings rate 80, got %v", report.SavingsRate)
	}
	if report.TransactionCount != 4 {
		t.Errorf("Expected 4 transactions counted, got %d", report.TransactionCount)
	}
	if !approx(report.ExpensesByCategory["Food"], 200) {
		t.Errorf("Expected Food total 200, got %v", report.ExpensesByCategory["Food"])
	}

	if len(report.TopCategories) != 2 {
		t.Fatalf("Expected 2 top categories, got %d", len(report.TopCategories))
	}
	if report.TopCategories[0].Category != "Rent" || !approx(report.TopCategories[0].Amount, 400) {
		t.Errorf("Unexpected top category: %+v", report.TopCategories[0])
	}
	wantShare := 400.0 / 600.0 * 100
	if !approx(report.TopCategories[0].Percentage, wantShare) {
		t.Errorf("Expected Rent share %v, got %v", wantShare, report.TopCategories[0].Percentage)
	}
}

func TestBuildMonthlyReportZeroIncome(t *testing.T) {
	store := setupStore(t)
	addTx(t, store, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 50, models.TypeExpense, "Food")

	report, err := BuildMonthlyReport(context.Background(), store, 2024, 3)
	if err != nil {
		t.Fatalf("BuildMonthlyReport failed: %v", err)
	}
	if report.SavingsRate != 0 {
		t.Errorf("Expected savings rate 0 with no income, got %v", report.SavingsRate)
	}
	if !approx(report.NetSavings, -50) {
		t.Errorf("Expected net savings -50, got %v", report.NetSavings)
	}
}

func TestBuildMonthlyReportTopCategoriesCapped(t *testing.T) {
	store := setupStore(t)
	for i := 0; i < 7; i++ {
		addTx(t, store, time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC),
			float64(10*(i+1)), models.TypeExpense, fmt.Sprintf("Cat%d", i))
	}

	report, err := BuildMonthlyReport(context.Background(), store, 2024, 3)
	if err != nil {
		t.Fatalf("BuildMonthlyReport failed: %v", err)
	}
	if len(report.TopCategories) != topCategoryCount {
		t.Fatalf("Expected %d top categories, got %d", topCategoryCount, len(report.TopCategories))
	}
	for i := 1; i < len(report.TopCategories); i++ {
		if report.TopCategories[i].Amount > report.TopCategories[i-1].Amount {
			t.Errorf("Top categories not sorted descending: %+v", report.TopCategories)
		}
	}
	// Biggest spend is Cat6 at 70.
	if report.TopCategories[0].Category != "Cat6" {
		t.Errorf("Expected Cat6 first, got %s", report.TopCategories[0].Category)
	}
}

func TestBuildMonthlyReportInvalidMonth(t *testing.T) {
	store := setupStore(t)
	for _, month := range []int{0, 13, -1} {
		if _, err := BuildMonthlyReport(context.Background(), store, 2024, month); err == nil {
			t.Errorf("Expected error for month %d", month)
		}
	}
}

func TestBuildPortfolioSummary(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	invs := []models.Investment{
		{Name: "Fund", Type: "ETF", PurchaseDate: time.Now().UTC(), PurchasePrice: 100, Quantity: 10, CurrentValue: 1200},
		{Name: "Stock", Type: "Stock", PurchaseDate: time.Now().UTC(), PurchasePrice: 50, Quantity: 4, CurrentValue: 180},
	}
	if err := store.AddInvestmentBatch(ctx, invs); err != nil {
		t.Fatalf("AddInvestmentBatch failed: %v", err)
	}

	summary, err := BuildPortfolioSummary(ctx, store)
	if err != nil {
		t.Fatalf("BuildPortfolioSummary failed: %v", err)
	}
	if summary.Holdings != 2 {
		t.Errorf("Expected 2 holdings, got %d", summary.Holdings)
	}
	if !approx(summary.TotalInvested, 1200) {
		t.Errorf("Expected total invested 1200, got %v", summary.TotalInvested)
	}
	if !approx(summary.TotalPortfolioValue, 1380) {
		t.Errorf("Expected portfolio value 1380, got %v", summary.TotalPortfolioValue)
	}
	if !approx(summary.TotalProfitLoss, 180) {
		t.Errorf("Expected profit 180, got %v", summary.TotalProfitLoss)
	}
	if !approx(summary.TotalProfitLossPercentage, 15) {
		t.Errorf("Expected profit percentage 15, got %v", summary.TotalProfitLossPercentage)
	}
}

func TestBuildPortfolioSummaryEmpty(t *testing.T) {
	store := setupStore(t)

	summary, err := BuildPortfolioSummary(context.Background(), store)
	if err != nil {
		t.Fatalf("BuildPortfolioSummary failed: %v", err)
	}
	if summary.Holdings != 0 || summary.TotalProfitLossPercentage != 0 {
		t.Errorf("Expected zero summary, got %+v", summary)
	}
}
