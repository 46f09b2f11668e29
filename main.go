package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"fintrack/backend/handlers"
	"fintrack/backend/middleware"
	"fintrack/backend/storage"
)

func main() {
	// Load environment variables from .env when present (local dev).
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Initialize the store: Firestore when a Firebase project is
	// configured, local SQLite otherwise.
	ctx := context.Background()
	if err := storage.InitStore(ctx); err != nil {
		log.Fatal(err)
	}
	defer storage.DB.Close()

	log.Println("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Transaction routes
	protectedRouter.HandleFunc("/transactions", handlers.GetTransactions).Methods("GET")
	protectedRouter.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/import", handlers.ImportTransactions).Methods("POST")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.UpdateTransaction).Methods("PUT")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.DeleteTransaction).Methods("DELETE")

	// Investment routes
	protectedRouter.HandleFunc("/investments", handlers.GetInvestments).Methods("GET")
	protectedRouter.HandleFunc("/investments", handlers.AddInvestment).Methods("POST")
	protectedRouter.HandleFunc("/investments/import", handlers.ImportInvestments).Methods("POST")
	protectedRouter.HandleFunc("/investments/{id}", handlers.UpdateInvestment).Methods("PUT")
	protectedRouter.HandleFunc("/investments/{id}", handlers.DeleteInvestment).Methods("DELETE")

	// Report routes
	protectedRouter.HandleFunc("/reports/monthly", handlers.GetMonthlyReport).Methods("GET")
	protectedRouter.HandleFunc("/reports/portfolio", handlers.GetPortfolioSummary).Methods("GET")
}
