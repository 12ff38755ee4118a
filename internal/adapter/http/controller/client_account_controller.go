package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/models"
	"github.com/kaysa-fintech/account-ledger/internal/commons"
	"github.com/kaysa-fintech/account-ledger/internal/usecase/service_interfaces"
)

// ClientAccountController exposes the cross-kind read surface used by client
// facing channels.
type ClientAccountController struct {
	service service_interfaces.ClientAccountService
}

func NewClientAccountController(service service_interfaces.ClientAccountService) *ClientAccountController {
	return &ClientAccountController{service: service}
}

func (c *ClientAccountController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.list)
	r.Get("/statistics", c.statistics)
	r.Get("/number/{accountNumber}", c.getByNumber)
	r.Get("/{id}", c.get)
	return r
}

func (c *ClientAccountController) list(w http.ResponseWriter, r *http.Request) {
	filter, err := accountFilterFrom(r).ToFilter()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountListResponse]("validation failed", err.Error()))
		return
	}
	response, err := c.service.ListAccounts(r.Context(), filter)
	respond(w, http.StatusOK, response, err)
}

func (c *ClientAccountController) statistics(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetStatistics(r.Context())
	respond(w, http.StatusOK, response, err)
}

func (c *ClientAccountController) get(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccount(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, response, err)
}

func (c *ClientAccountController) getByNumber(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetAccountByNumber(r.Context(), chi.URLParam(r, "accountNumber"))
	respond(w, http.StatusOK, response, err)
}
