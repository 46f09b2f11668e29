package storage

import (
	"context"
	"os"
	"time"

	"fintrack/backend/models"
)

// Store is the persistence boundary for the tracker. Batch adds are
// all-or-nothing: either every record in the slice is written or none.
type Store interface {
	AddTransaction(ctx context.Context, t *models.Transaction) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	AddTransactionBatch(ctx context.Context, ts []models.Transaction) error

	AddInvestment(ctx context.Context, inv *models.Investment) error
	ListInvestments(ctx context.Context) ([]models.Investment, error)
	UpdateInvestment(ctx context.Context, id string, inv *models.Investment) error
	DeleteInvestment(ctx context.Context, id string) error
	AddInvestmentBatch(ctx context.Context, invs []models.Investment) error

	Close() error
}

// DB is the active store, set by InitStore.
var DB Store

// InitStore selects and opens the backing store. With a Firebase
// project configured it uses Firestore; otherwise it falls back to a
// local SQLite database (in-memory when TEST_DB=1).
func InitStore(ctx context.Context) error {
	if os.Getenv("FIREBASE_PROJECT_ID") != "" {
		store, err := NewFirestoreStore(ctx)
		if err != nil {
			return err
		}
		DB = store
		return nil
	}

	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// Running on Fly.io, use the mounted volume.
		dbPath = "/data/fintrack.db"
	} else if os.Getenv("TEST_DB") == "1" {
		dbPath = ":memory:"
	} else {
		dbPath = "./fintrack.db"
	}

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	DB = store
	return nil
}
