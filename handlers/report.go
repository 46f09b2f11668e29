package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"fintrack/backend/services"
	"fintrack/backend/storage"
)

// GetMonthlyReport returns the aggregated report for the month given by
// the year and month query parameters, defaulting to the current month.
func GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = parsed
	}

	report, err := services.BuildMonthlyReport(r.Context(), storage.DB, year, month)
	if err != nil {
		log.Printf("Error building monthly report: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GetPortfolioSummary returns the aggregate value and performance of
// all investment holdings.
func GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := services.BuildPortfolioSummary(r.Context(), storage.DB)
	if err != nil {
		log.Printf("Error building portfolio summary: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
