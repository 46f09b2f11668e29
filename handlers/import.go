package handlers

import (
	"encoding/json"
	"net/http"

	"fintrack/backend/importer"
	"fintrack/backend/storage"
)

// ImportTransactions accepts a multipart CSV upload and runs it through
// the transaction import pipeline.
func ImportTransactions(w http.ResponseWriter, r *http.Request) {
	importCSV(w, r, importer.NewTransactionDomain(storage.DB))
}

// ImportInvestments accepts a multipart CSV upload and runs it through
// the investment import pipeline.
func ImportInvestments(w http.ResponseWriter, r *http.Request) {
	importCSV(w, r, importer.NewInvestmentDomain(storage.DB))
}

func importCSV(w http.ResponseWriter, r *http.Request, domain importer.Domain) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	feedback := importer.NewPipeline(domain).Import(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)

	w.Header().Set("Content-Type", "application/json")
	if feedback.Severity == importer.SeverityError {
		w.WriteHeader(http.StatusBadRequest)
	}
	json.NewEncoder(w).Encode(feedback)
}
