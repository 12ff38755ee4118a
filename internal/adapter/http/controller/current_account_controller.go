package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/usecase/service_interfaces"
)

type CurrentAccountController struct {
	service service_interfaces.CurrentAccountService
}

func NewCurrentAccountController(service service_interfaces.CurrentAccountService) *CurrentAccountController {
	return &CurrentAccountController{service: service}
}

func (c *CurrentAccountController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", c.open)
	r.Get("/", c.list)
	r.Get("/statistics", c.statistics)
	r.Post("/transactions", c.processTransaction)
	r.Post("/transactions/{transactionId}/cancel", c.cancelTransaction)
	r.Post("/transfers", c.processTransfer)
	r.Get("/number/{accountNumber}", c.getByNumber)
	r.Get("/number/{accountNumber}/balance", c.balance)
	r.Get("/{id}", c.get)
	r.Put("/{id}", c.update)
	r.Post("/{id}/suspend", c.suspend)
	r.Post("/{id}/reactivate", c.reactivate)
	r.Post("/{id}/close", c.close)
	r.Get("/{id}/transactions", c.listTransactions)
	return r
}

func (c *CurrentAccountController) open(w http.ResponseWriter, r *http.Request) {
	var req models.CurrentAccountOpeningRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.OpenAccount(r.Context(), req, operatorFrom(r))
	respond(w, http.StatusCreated, response, err)
}

func (c *CurrentAccountController) list(w http.ResponseWriter, r *http.Request) {
	filter, err := accountFilterFrom(r).ToFilter()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountListResponse]("validation failed", err.Error()))
		return
	}
	response, err := c.service.ListAccounts(r.Context(), filter)
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) statistics(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetStatistics(r.Context())
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccount(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) getByNumber(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccountByNumber(r.Context(), chi.URLParam(r, "accountNumber"))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) balance(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetBalance(r.Context(), chi.URLParam(r, "accountNumber"))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) update(w http.ResponseWriter, r *http.Request) {
	var req models.CurrentAccountUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.UpdateAccount(r.Context(), chi.URLParam(r, "id"), req)
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) suspend(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.SuspendAccount(r.Context(), chi.URLParam(r, "id"), operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) reactivate(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ReactivateAccount(r.Context(), chi.URLParam(r, "id"), operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) close(w http.ResponseWriter, r *http.Request) {
	var req models.CloseAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.CloseAccount(r.Context(), chi.URLParam(r, "id"), req, operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) processTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.ProcessTransaction(r.Context(), req, operatorFrom(r))
	respond(w, http.StatusCreated, response, err)
}

func (c *CurrentAccountController) processTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.ProcessTransfer(r.Context(), req, operatorFrom(r))
	respond(w, http.StatusCreated, response, err)
}

func (c *CurrentAccountController) cancelTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CancelTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	response, err := c.service.CancelTransaction(r.Context(), chi.URLParam(r, "transactionId"), req, operatorFrom(r))
	respond(w, http.StatusOK, response, err)
}

func (c *CurrentAccountController) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilterFrom(r).ToFilter()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionListResponse]("validation failed", err.Error()))
		return
	}
	response, err := c.service.ListTransactions(r.Context(), chi.URLParam(r, "id"), filter)
	respond(w, http.StatusOK, response, err)
}
