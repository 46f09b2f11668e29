package models

import "time"

// InvestmentTypes is the suggested set of holding types. It is not
// enforced; unrecognized types are accepted with a warning on import.
var InvestmentTypes = []string{"ETF", "Stock", "Cryptocurrency", "Bond", "Fixed Deposit", "Other"}

type Investment struct {
	ID            string    `json:"id" firestore:"-"`
	Name          string    `json:"name" firestore:"name" validate:"required"`
	Type          string    `json:"type" firestore:"type" validate:"required"`
	PurchaseDate  time.Time `json:"purchaseDate" firestore:"purchaseDate" validate:"required"`
	PurchasePrice float64   `json:"purchasePrice" firestore:"purchasePrice"`
	Quantity      float64   `json:"quantity" firestore:"quantity"`
	// CurrentValue is the total value of the full holding, not per-unit.
	CurrentValue float64   `json:"currentValue" firestore:"currentValue"`
	Notes        string    `json:"notes" firestore:"notes"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	LastUpdated  time.Time `json:"lastUpdated" firestore:"lastUpdated,serverTimestamp"`
	Source       string    `json:"source,omitempty" firestore:"source,omitempty"`
}

// Derived returns the computed performance figures for a holding.
// These are never persisted; they are recomputed on every read.
func (i Investment) Derived() (totalInvested, profitLoss, profitLossPercentage float64) {
	totalInvested = i.PurchasePrice * i.Quantity
	profitLoss = i.CurrentValue - totalInvested
	if totalInvested > 0 {
		profitLossPercentage = profitLoss / totalInvested * 100
	}
	return totalInvested, profitLoss, profitLossPercentage
}

// InvestmentView is an Investment plus its derived figures, as returned
// to API clients.
type InvestmentView struct {
	Investment
	TotalInvested        float64 `json:"totalInvested"`
	ProfitLoss           float64 `json:"profitLoss"`
	ProfitLossPercentage float64 `json:"profitLossPercentage"`
}

func NewInvestmentView(i Investment) InvestmentView {
	invested, pl, pct := i.Derived()
	return InvestmentView{
		Investment:           i,
		TotalInvested:        invested,
		ProfitLoss:           pl,
		ProfitLossPercentage: pct,
	}
}
