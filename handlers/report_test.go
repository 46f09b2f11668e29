package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/backend/models"
	"fintrack/backend/storage"
)

func TestGetMonthlyReport(t *testing.T) {
	cleanup := SetupTestStore()
	defer cleanup()

	ctx := httptest.NewRequest("GET", "/", nil).Context()
	seed := []models.Transaction{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Description: "Salary", Amount: 2000, Type: models.TypeIncome, Category: "Work"},
		{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Description: "Rent", Amount: 800, Type: models.TypeExpense, Category: "Housing"},
	}
	for i := range seed {
		if err := storage.DB.AddTransaction(ctx, &seed[i]); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
	}

	req := SetupTestAuth(httptest.NewRequest("GET", "/reports/monthly?year=2024&month=3", nil))
	w := httptest.NewRecorder()
	GetMonthlyReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var report models.MonthlyReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if report.Year != 2024 || report.Month != 3 {
		t.Errorf("Unexpected period: %d-%d", report.Year, report.Month)
	}
	if report.TotalIncome != 2000 || report.TotalExpenses != 800 {
		t.Errorf("Unexpected totals: income %v, expenses %v", report.TotalIncome, report.TotalExpenses)
	}
	if report.SavingsRate != 60 {
		t.Errorf("Expected savings rate 60, got %v", report.SavingsRate)
	}
}

func TestGetMonthlyReportInvalidParams(t *testing.T) {
	cleanup := SetupTestStore()
	defer cleanup()

	for _, query := range []string{"?month=13", "?month=abc", "?year=abc"} {
		req := SetupTestAuth(httptest.NewRequest("GET", "/reports/monthly"+query, nil))
		w := httptest.NewRecorder()
		GetMonthlyReport(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Query %q: expected status code %d, got %d", query, http.StatusBadRequest, w.Code)
		}
	}
}

func TestGetPortfolioSummary(t *testing.T) {
	cleanup := SetupTestStore()
	defer cleanup()

	ctx := httptest.NewRequest("GET", "/", nil).Context()
	inv := models.Investment{
		Name:          "Fund",
		Type:          "ETF",
		PurchaseDate:  time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		PurchasePrice: 100,
		Quantity:      10,
		CurrentValue:  1100,
	}
	if err := storage.DB.AddInvestment(ctx, &inv); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	req := SetupTestAuth(httptest.NewRequest("GET", "/reports/portfolio", nil))
	w := httptest.NewRecorder()
	GetPortfolioSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var summary models.PortfolioSummary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if summary.Holdings != 1 || summary.TotalInvested != 1000 || summary.TotalProfitLoss != 100 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}
