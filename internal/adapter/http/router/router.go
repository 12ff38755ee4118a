package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/controller"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/middleware"
)

// New wires every controller under /api/v1 behind the channel basic auth.
// The health probe stays outside the authenticated group.
func New(
	currentController *controller.CurrentAccountController,
	termController *controller.TermSavingsController,
	clientController *controller.ClientAccountController,
	channelID, channelKey string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.BasicAuth(channelID, channelKey))
		if currentController != nil {
			api.Mount("/current-accounts", currentController.Routes())
		}
		if termController != nil {
			api.Mount("/term-savings", termController.Routes())
		}
		if clientController != nil {
			api.Mount("/client-accounts", clientController.Routes())
		}
	})

	return r
}
