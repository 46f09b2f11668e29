package handlers

import (
	"context"
	"net/http"

	"fintrack/backend/middleware"
	"fintrack/backend/storage"
)

// Test user ID shared across handler tests.
const TestUserID = "test-user-id"

// SetupTestAuth adds authentication context to the request.
func SetupTestAuth(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	return req.WithContext(ctx)
}

// SetupTestStore points the package-level store at a fresh in-memory
// database and returns a cleanup function.
func SetupTestStore() func() {
	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		panic(err)
	}
	previous := storage.DB
	storage.DB = store
	return func() {
		storage.DB = previous
		store.Close()
	}
}
