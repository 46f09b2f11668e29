package models

type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type MonthlyReport struct {
	Year               int                `json:"year"`
	Month              int                `json:"month"` // 1-12
	TotalIncome        float64            `json:"totalIncome"`
	TotalExpenses      float64            `json:"totalExpenses"`
	NetSavings         float64            `json:"netSavings"`
	SavingsRate        float64            `json:"savingsRate"` // percent of income, 0 when no income
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	TopCategories      []CategoryShare    `json:"topCategories"`
	TransactionCount   int                `json:"transactionCount"`
}

type PortfolioSummary struct {
	TotalPortfolioValue       float64 `json:"totalPortfolioValue"`
	TotalInvested             float64 `json:"totalInvested"`
	TotalProfitLoss           float64 `json:"totalProfitLoss"`
	TotalProfitLossPercentage float64 `json:"totalProfitLossPercentage"`
	Holdings                  int     `json:"holdings"`
}
