package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/usecase/service_interfaces"
)

type TermSavingsController struct {
	service service_interfaces.TermSavingsService
}

func NewTermSavingsController(service service_interfaces.TermSavingsService) *TermSavingsController {
	return &TermSavingsController{service: service}
}

func (c *TermSavingsController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", c.open)
	r.Get("/", c.list)
	r.Get("/statistics", c.statistics)
	r.Post("/transactions", c.processTransaction)
	r.Post("/interest/run", c.calculateInterestForAll)
	r.Get("/number/{accountNumber}", c.getByNumber)
	r.Get("/number/{accountNumber}/balance", c.balance)
	r.Get("/{id}", c.get)
	r.Delete("/{id}", c.del)
	r.Post("/{id}/interest", c.calculateInterest)
	r.Post("/{id}/renew", c.renew)
	r.Post("/{id}/close", c.close)
	r.Post("/{id}/suspend", c.suspend)
	r.Post("/{id}/reactivate", c.reactivate)
	r.Get("/{id}/transactions", c.listTransactions)
	return r
}

func (c *TermSavingsController) open(w http.ResponseWriter, r *http.Request) {
	var req models.TermSavingsOpeningRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.OpenAccount(r.Context(), req, operatorFrom(r))
	respond(w, http.StatusCreated, response, err)
}

func (c *TermSavingsController) list(w http.ResponseWriter, r *http.Request) {
	filter, err := accountFilterFrom(r).ToFilter()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountListResponse]("validation failed", err.Error()))
		return
	}
	response, err := c.service.ListAccounts(r.Context(), filter)
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) statistics(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetStatistics(r.Context())
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccount(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) getByNumber(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccountByNumber(r.Context(), chi.URLParam(r, "accountNumber"))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) balance(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetBalance(r.Context(), chi.URLParam(r, "accountNumber"))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) processTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.ProcessTransaction(r.Context(), req, operatorFrom(r))
	respond(w, http.StatusCreated, response, err)
}

func (c *TermSavingsController) calculateInterest(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.CalculateInterest(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) calculateInterestForAll(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.CalculateInterestForAll(r.Context())
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) renew(w http.ResponseWriter, r *http.Request) {
	var req models.TermRenewalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.RenewAccount(r.Context(), chi.URLParam(r, "id"), req, operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) close(w http.ResponseWriter, r *http.Request) {
	var req models.TermClosureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.CloseAccount(r.Context(), chi.URLParam(r, "id"), req, operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) suspend(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.SuspendAccount(r.Context(), chi.URLParam(r, "id"), operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) reactivate(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ReactivateAccount(r.Context(), chi.URLParam(r, "id"), operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) del(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.DeleteAccount(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, response, err)
}

func (c *TermSavingsController) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilterFrom(r).ToFilter()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionListResponse]("validation failed", err.Error()))
		return
	}
	response, err := c.service.ListTransactions(r.Context(), chi.URLParam(r, "id"), filter)
	respond(w, http.StatusOK, response, err)
}
