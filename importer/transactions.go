package importer

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fintrack/backend/models"
	"fintrack/backend/storage"
)

// ParseTransactionRow validates and normalizes one transaction CSV row.
// The first failing check wins and skips the row; the returned error
// carries the full user-visible message.
func ParseTransactionRow(row Row, displayRow int) (models.Transaction, error) {
	dateStr := row["Date"]
	description := row["Description"]
	amountStr, hasAmount := row["Amount"]
	typeStr := row["Type"]

	if dateStr == "" || description == "" || !hasAmount || typeStr == "" {
		return models.Transaction{}, fmt.Errorf("Row %d: Missing required fields (Date, Description, Amount, Type). Row skipped.", displayRow)
	}

	amount, err := parseNumber(amountStr)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("Row %d: Invalid Amount '%s'. Row skipped.", displayRow, amountStr)
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("Row %d: Invalid Date format '%s'. Please use YYYY-MM-DD. Row skipped.", displayRow, dateStr)
	}

	txType := strings.ToLower(strings.TrimSpace(typeStr))
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return models.Transaction{}, fmt.Errorf("Row %d: Invalid Type '%s'. Must be 'Income' or 'Expense'. Row skipped.", displayRow, typeStr)
	}

	category := strings.TrimSpace(row["Category"])
	if category == "" {
		category = models.DefaultCategory
	}

	return models.Transaction{
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        txType,
		Category:    category,
		Source:      models.SourceCSVImport,
	}, nil
}

// TransactionDomain accumulates validated transaction records for one
// import run and commits them to the store in a single batch.
type TransactionDomain struct {
	store   storage.Store
	records []models.Transaction
}

func NewTransactionDomain(store storage.Store) *TransactionDomain {
	return &TransactionDomain{store: store}
}

func (d *TransactionDomain) Name() string   { return "transaction" }
func (d *TransactionDomain) Plural() string { return "transactions" }

func (d *TransactionDomain) AddRow(row Row, displayRow int) error {
	t, err := ParseTransactionRow(row, displayRow)
	if err != nil {
		return err
	}
	d.records = append(d.records, t)
	return nil
}

func (d *TransactionDomain) Pending() int { return len(d.records) }

func (d *TransactionDomain) Commit(ctx context.Context) error {
	return d.store.AddTransactionBatch(ctx, d.records)
}

// parseNumber is strict float parsing: a value that is not a finite
// number is rejected, so NaN and Inf can never reach the store.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return f, nil
}

// dateLayouts accepted on import. The documented format is YYYY-MM-DD;
// the rest cover common spreadsheet exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
