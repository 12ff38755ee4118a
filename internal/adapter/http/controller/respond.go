package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[T]("invalid request body", err.Error()))
		return false
	}
	return true
}

// respond writes a service result, translating the service error into the
// HTTP status.
func respond[T any](w http.ResponseWriter, okStatus int, response commons.Response[T], err error) {
	if err != nil {
		writeJSON(w, commons.StatusFor(err), response)
		return
	}
	writeJSON(w, okStatus, response)
}

// operatorFrom identifies the teller or system actor behind a request.
func operatorFrom(r *http.Request) string {
	if actor := strings.TrimSpace(r.Header.Get("X-Operator-Id")); actor != "" {
		return actor
	}
	return "system"
}

// accountFilterFrom binds the list query string onto the raw filter request.
func accountFilterFrom(r *http.Request) models.AccountFilterRequest {
	q := r.URL.Query()
	return models.AccountFilterRequest{
		Search:         q.Get("search"),
		Currency:       q.Get("currency"),
		Status:         q.Get("status"),
		BranchID:       q.Get("branchId"),
		DateFrom:       q.Get("dateFrom"),
		DateTo:         q.Get("dateTo"),
		MinBalance:     q.Get("minBalance"),
		MaxBalance:     q.Get("maxBalance"),
		SortBy:         q.Get("sortBy"),
		SortDescending: q.Get("sortDescending") == "true",
		Page:           q.Get("page"),
		PageSize:       q.Get("pageSize"),
	}
}

func transactionFilterFrom(r *http.Request) models.TransactionFilterRequest {
	q := r.URL.Query()
	return models.TransactionFilterRequest{
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
		Page:     q.Get("page"),
		PageSize: q.Get("pageSize"),
	}
}
