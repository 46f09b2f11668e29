package models

import "time"

// Transaction type values. Free-form input is normalized to these
// before a transaction is ever persisted.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// DefaultCategory is assigned when a transaction arrives without one.
const DefaultCategory = "Uncategorized"

// SourceCSVImport marks records created by the CSV import pipeline.
// Manually entered records leave Source empty.
const SourceCSVImport = "csv_import"

type Transaction struct {
	ID          string    `json:"id" firestore:"-"`
	Date        time.Time `json:"date" firestore:"date" validate:"required"`
	Description string    `json:"description" firestore:"description" validate:"required"`
	Amount      float64   `json:"amount" firestore:"amount" validate:"gte=0"`
	Type        string    `json:"type" firestore:"type" validate:"required,oneof=income expense"`
	Category    string    `json:"category" firestore:"category"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	Source      string    `json:"source,omitempty" firestore:"source,omitempty"`
}
