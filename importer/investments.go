package importer

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"fintrack/backend/models"
	"fintrack/backend/storage"
)

// ParseInvestmentRow validates and normalizes one investment CSV row.
// The numeric fields are only "missing" when the column is absent
// entirely; a present-but-empty value fails number parsing instead, so
// a quantity of "0" is accepted.
func ParseInvestmentRow(row Row, displayRow int) (models.Investment, error) {
	name := row["Name"]
	typeStr := row["Type"]
	purchaseDateStr := row["PurchaseDate"]
	purchasePriceStr, hasPurchasePrice := row["PurchasePrice"]
	quantityStr, hasQuantity := row["Quantity"]
	currentValueStr, hasCurrentValue := row["CurrentValue"]

	if name == "" || typeStr == "" || purchaseDateStr == "" || !hasPurchasePrice || !hasQuantity || !hasCurrentValue {
		return models.Investment{}, fmt.Errorf("Row %d: Missing required fields. Row skipped.", displayRow)
	}

	purchasePrice, priceErr := parseNumber(purchasePriceStr)
	quantity, quantityErr := parseNumber(quantityStr)
	currentValue, valueErr := parseNumber(currentValueStr)
	if priceErr != nil || quantityErr != nil || valueErr != nil {
		return models.Investment{}, fmt.Errorf("Row %d: Invalid number for PurchasePrice, Quantity, or CurrentValue. Row skipped.", displayRow)
	}

	purchaseDate, err := parseDate(purchaseDateStr)
	if err != nil {
		return models.Investment{}, fmt.Errorf("Row %d: Invalid PurchaseDate format '%s'. Please use YYYY-MM-DD. Row skipped.", displayRow, purchaseDateStr)
	}

	normalizedType := strings.TrimSpace(typeStr)
	if !isSuggestedInvestmentType(normalizedType) {
		// Not a validation failure: the suggested set is advisory only.
		log.Printf("Row %d: Type '%s' is not in the standard list but will be imported.", displayRow, normalizedType)
	}

	return models.Investment{
		Name:          strings.TrimSpace(name),
		Type:          normalizedType,
		PurchaseDate:  purchaseDate,
		PurchasePrice: purchasePrice,
		Quantity:      quantity,
		CurrentValue:  currentValue,
		Notes:         strings.TrimSpace(row["Notes"]),
		Source:        models.SourceCSVImport,
	}, nil
}

func isSuggestedInvestmentType(t string) bool {
	for _, suggested := range models.InvestmentTypes {
		if strings.EqualFold(t, suggested) {
			return true
		}
	}
	return false
}

// InvestmentDomain accumulates validated investment records for one
// import run and commits them to the store in a single batch.
type InvestmentDomain struct {
	store   storage.Store
	records []models.Investment
}

func NewInvestmentDomain(store storage.Store) *InvestmentDomain {
	return &InvestmentDomain{store: store}
}

func (d *InvestmentDomain) Name() string   { return "investment" }
func (d *InvestmentDomain) Plural() string { return "investments" }

func (d *InvestmentDomain) AddRow(row Row, displayRow int) error {
	inv, err := ParseInvestmentRow(row, displayRow)
	if err != nil {
		return err
	}
	d.records = append(d.records, inv)
	return nil
}

func (d *InvestmentDomain) Pending() int { return len(d.records) }

func (d *InvestmentDomain) Commit(ctx context.Context) error {
	return d.store.AddInvestmentBatch(ctx, d.records)
}
