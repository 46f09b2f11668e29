package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"fintrack/backend/models"
	"fintrack/backend/storage"
)

var validate = validator.New()

func GetInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := storage.DB.ListInvestments(r.Context())
	if err != nil {
		log.Printf("Error listing investments: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]models.InvestmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, models.NewInvestmentView(inv))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

func AddInvestment(w http.ResponseWriter, r *http.Request) {
	var inv models.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv.Name = strings.TrimSpace(inv.Name)
	inv.Type = strings.TrimSpace(inv.Type)
	inv.Notes = strings.TrimSpace(inv.Notes)
	inv.Source = ""

	if err := validate.Struct(inv); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := storage.DB.AddInvestment(r.Context(), &inv); err != nil {
		log.Printf("Error adding investment: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.NewInvestmentView(inv))
}

func UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var inv models.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(inv); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := storage.DB.UpdateInvestment(r.Context(), id, &inv); err != nil {
		log.Printf("Error updating investment %s: %v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if err := storage.DB.DeleteInvestment(r.Context(), id); err != nil {
		log.Printf("Error deleting investment %s: %v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
