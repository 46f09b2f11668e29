package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"fintrack/backend/models"
)

// SQLiteStore backs local development and tests. Batch adds run inside
// a single transaction so they keep the all-or-nothing contract.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Connection parameters to better handle concurrency. An in-memory
	// database must share cache across pooled connections or each one
	// would see its own empty database.
	dsn := path + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared&_timeout=10000&_busy_timeout=10000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	createTransactionsTable := `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		source TEXT
	);
	`
	if _, err := db.Exec(createTransactionsTable); err != nil {
		return nil, err
	}

	createInvestmentsTable := `
	CREATE TABLE IF NOT EXISTS investments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		purchase_date DATETIME NOT NULL,
		purchase_price REAL NOT NULL,
		quantity REAL NOT NULL,
		current_value REAL NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL,
		last_updated DATETIME NOT NULL,
		source TEXT
	);
	`
	if _, err := db.Exec(createInvestmentsTable); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AddTransaction(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, description, amount, type, category, created_at, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Date, t.Description, t.Amount, t.Type, t.Category, t.CreatedAt, t.Source)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount, type, category, created_at, source
		FROM transactions
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *SQLiteStore) ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount, type, category, created_at, source
		FROM transactions
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var source sql.NullString
		err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.Category, &t.CreatedAt, &source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if source.Valid {
			t.Source = source.String
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, id string, t *models.Transaction) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, description = ?, amount = ?, type = ?, category = ?
		WHERE id = ?
	`, t.Date, t.Description, t.Amount, t.Type, t.Category, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRow(result, "transaction")
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRow(result, "transaction")
}

func (s *SQLiteStore) AddTransactionBatch(ctx context.Context, ts []models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, description, amount, type, category, created_at, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := range ts {
		if ts[i].ID == "" {
			ts[i].ID = uuid.NewString()
		}
		ts[i].CreatedAt = now
		_, err := stmt.ExecContext(ctx, ts[i].ID, ts[i].Date, ts[i].Description, ts[i].Amount, ts[i].Type, ts[i].Category, ts[i].CreatedAt, ts[i].Source)
		if err != nil {
			return fmt.Errorf("failed to insert batch transaction %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddInvestment(ctx context.Context, inv *models.Investment) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.LastUpdated = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investments (id, name, type, purchase_date, purchase_price, quantity, current_value, notes, created_at, last_updated, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.Name, inv.Type, inv.PurchaseDate, inv.PurchasePrice, inv.Quantity, inv.CurrentValue, inv.Notes, inv.CreatedAt, inv.LastUpdated, inv.Source)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListInvestments(ctx context.Context) ([]models.Investment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, purchase_date, purchase_price, quantity, current_value, notes, created_at, last_updated, source
		FROM investments
		ORDER BY purchase_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		var notes, source sql.NullString
		err := rows.Scan(&inv.ID, &inv.Name, &inv.Type, &inv.PurchaseDate, &inv.PurchasePrice, &inv.Quantity, &inv.CurrentValue, &notes, &inv.CreatedAt, &inv.LastUpdated, &source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		if notes.Valid {
			inv.Notes = notes.String
		}
		if source.Valid {
			inv.Source = source.String
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (s *SQLiteStore) UpdateInvestment(ctx context.Context, id string, inv *models.Investment) error {
	inv.LastUpdated = time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE investments
		SET name = ?, type = ?, purchase_date = ?, purchase_price = ?, quantity = ?, current_value = ?, notes = ?, last_updated = ?
		WHERE id = ?
	`, inv.Name, inv.Type, inv.PurchaseDate, inv.PurchasePrice, inv.Quantity, inv.CurrentValue, inv.Notes, inv.LastUpdated, id)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	return requireRow(result, "investment")
}

func (s *SQLiteStore) DeleteInvestment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM investments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return requireRow(result, "investment")
}

func (s *SQLiteStore) AddInvestmentBatch(ctx context.Context, invs []models.Investment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO investments (id, name, type, purchase_date, purchase_price, quantity, current_value, notes, created_at, last_updated, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := range invs {
		if invs[i].ID == "" {
			invs[i].ID = uuid.NewString()
		}
		invs[i].CreatedAt = now
		invs[i].LastUpdated = now
		_, err := stmt.ExecContext(ctx, invs[i].ID, invs[i].Name, invs[i].Type, invs[i].PurchaseDate, invs[i].PurchasePrice, invs[i].Quantity, invs[i].CurrentValue, invs[i].Notes, invs[i].CreatedAt, invs[i].LastUpdated, invs[i].Source)
		if err != nil {
			return fmt.Errorf("failed to insert batch investment %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func requireRow(result sql.Result, kind string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s not found", kind)
	}
	return nil
}
