package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"fintrack/backend/models"
)

const (
	transactionsCollection = "transactions"
	investmentsCollection  = "investments"
)

// FirestoreStore is the production store. Batch adds use a Firestore
// WriteBatch, which commits all writes atomically and caps out at 500
// documents per commit.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the Firestore database of the project
// named by FIREBASE_PROJECT_ID, using service account credentials from
// the environment when present and application default credentials
// otherwise.
func NewFirestoreStore(ctx context.Context) (*FirestoreStore, error) {
	config := &firebase.Config{ProjectID: os.Getenv("FIREBASE_PROJECT_ID")}

	var opts []option.ClientOption
	if credsJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); credsJSON != "" {
		log.Println("Using JSON Firebase credentials from environment")
		opts = append(opts, option.WithCredentialsJSON([]byte(credsJSON)))
	} else if credsBase64 := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); credsBase64 != "" {
		log.Println("Using base64-encoded Firebase credentials from environment")
		credBytes, err := base64.StdEncoding.DecodeString(credsBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 Firebase credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(credBytes))
	} else {
		log.Println("No Firebase credentials in environment, using application default credentials")
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) AddTransaction(ctx context.Context, t *models.Transaction) error {
	ref := s.client.Collection(transactionsCollection).NewDoc()
	t.ID = ref.ID
	if _, err := ref.Create(ctx, t); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (s *FirestoreStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	docs, err := s.client.Collection(transactionsCollection).
		OrderBy("date", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(docs))
	for _, doc := range docs {
		var t models.Transaction
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode transaction %s: %w", doc.Ref.ID, err)
		}
		t.ID = doc.Ref.ID
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func (s *FirestoreStore) ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	docs, err := s.client.Collection(transactionsCollection).
		Where("date", ">=", start).
		Where("date", "<=", end).
		OrderBy("date", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(docs))
	for _, doc := range docs {
		var t models.Transaction
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode transaction %s: %w", doc.Ref.ID, err)
		}
		t.ID = doc.Ref.ID
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func (s *FirestoreStore) UpdateTransaction(ctx context.Context, id string, t *models.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "date", Value: t.Date},
		{Path: "description", Value: t.Description},
		{Path: "amount", Value: t.Amount},
		{Path: "type", Value: t.Type},
		{Path: "category", Value: t.Category},
	})
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (s *FirestoreStore) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.client.Collection(transactionsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *FirestoreStore) AddTransactionBatch(ctx context.Context, ts []models.Transaction) error {
	batch := s.client.Batch()
	coll := s.client.Collection(transactionsCollection)
	for i := range ts {
		ref := coll.NewDoc()
		ts[i].ID = ref.ID
		batch.Create(ref, &ts[i])
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction batch: %w", err)
	}
	return nil
}

func (s *FirestoreStore) AddInvestment(ctx context.Context, inv *models.Investment) error {
	ref := s.client.Collection(investmentsCollection).NewDoc()
	inv.ID = ref.ID
	if _, err := ref.Create(ctx, inv); err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

func (s *FirestoreStore) ListInvestments(ctx context.Context) ([]models.Investment, error) {
	docs, err := s.client.Collection(investmentsCollection).
		OrderBy("purchaseDate", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}

	investments := make([]models.Investment, 0, len(docs))
	for _, doc := range docs {
		var inv models.Investment
		if err := doc.DataTo(&inv); err != nil {
			return nil, fmt.Errorf("failed to decode investment %s: %w", doc.Ref.ID, err)
		}
		inv.ID = doc.Ref.ID
		investments = append(investments, inv)
	}
	return investments, nil
}

func (s *FirestoreStore) UpdateInvestment(ctx context.Context, id string, inv *models.Investment) error {
	_, err := s.client.Collection(investmentsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "name", Value: inv.Name},
		{Path: "type", Value: inv.Type},
		{Path: "purchaseDate", Value: inv.PurchaseDate},
		{Path: "purchasePrice", Value: inv.PurchasePrice},
		{Path: "quantity", Value: inv.Quantity},
		{Path: "currentValue", Value: inv.CurrentValue},
		{Path: "notes", Value: inv.Notes},
		{Path: "lastUpdated", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	return nil
}

func (s *FirestoreStore) DeleteInvestment(ctx context.Context, id string) error {
	if _, err := s.client.Collection(investmentsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}

func (s *FirestoreStore) AddInvestmentBatch(ctx context.Context, invs []models.Investment) error {
	batch := s.client.Batch()
	coll := s.client.Collection(investmentsCollection)
	for i := range invs {
		ref := coll.NewDoc()
		invs[i].ID = ref.ID
		batch.Create(ref, &invs[i])
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit investment batch: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
