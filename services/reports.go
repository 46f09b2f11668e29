package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fintrack/backend/models"
	"fintrack/backend/storage"
)

// topCategoryCount is how many expense categories the monthly report breaks out.
const topCategoryCount = 5

// BuildMonthlyReport aggregates the transactions of one calendar month:
// income and expense totals, net savings, savings rate, and the top
// expense categories with their share of total expenses.
func BuildMonthlyReport(ctx context.Context, store storage.Store, year, month int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	transactions, err := store.ListTransactionsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly transactions: %w", err)
	}

	report := &models.MonthlyReport{
		Year:               year,
		Month:              month,
		ExpensesByCategory: make(map[string]float64),
		TransactionCount:   len(transactions),
	}

	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			report.TotalIncome += t.Amount
		case models.TypeExpense:
			report.TotalExpenses += t.Amount
			report.ExpensesByCategory[t.Category] += t.Amount
		}
	}

	report.NetSavings = report.TotalIncome - report.TotalExpenses
	if report.TotalIncome > 0 {
		report.SavingsRate = report.NetSavings / report.TotalIncome * 100
	}
	report.TopCategories = topCategories(report.ExpensesByCategory, report.TotalExpenses)

	return report, nil
}

func topCategories(byCategory map[string]float64, totalExpenses float64) []models.CategoryShare {
	shares := make([]models.CategoryShare, 0, len(byCategory))
	for category, amount := range byCategory {
		share := models.CategoryShare{Category: category, Amount: amount}
		if totalExpenses > 0 {
			share.Percentage = amount / totalExpenses * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})

	if len(shares) > topCategoryCount {
		shares = shares[:topCategoryCount]
	}
	return shares
}

// BuildPortfolioSummary totals the investment holdings. The percentage
// is taken over total invested, and 0 when nothing is invested.
func BuildPortfolioSummary(ctx context.Context, store storage.Store) (*models.PortfolioSummary, error) {
	investments, err := store.ListInvestments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	summary := &models.PortfolioSummary{Holdings: len(investments)}
	for _, inv := range investments {
		invested, _, _ := inv.Derived()
		summary.TotalPortfolioValue += inv.CurrentValue
		summary.TotalInvested += invested
	}

	summary.TotalProfitLoss = summary.TotalPortfolioValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.TotalProfitLossPercentage = summary.TotalProfitLoss / summary.TotalInvested * 100
	}

	return summary, nil
}
