package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/controller"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/http/router"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/memory"
	"github.com/kaysa-fintech/account-ledger/internal/adapter/repository/postgres"
	"github.com/kaysa-fintech/account-ledger/internal/config"
	"github.com/kaysa-fintech/account-ledger/internal/logger"
	"github.com/kaysa-fintech/account-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// Customer, branch and operator directories plus the ordinary-savings
	// system are external collaborators; the in-memory editions back the
	// default deployment until the real integrations are configured.
	customers := memory.NewCustomerDirectory(nil)
	branches := memory.NewBranchDirectory(nil)
	actors := memory.NewActorDirectory(nil)
	savings := memory.NewSavingsService()

	currentService := services.NewCurrentAccountService(accountRepo, transactionRepo, customers, branches, actors, cfg.Accounts)
	termService := services.NewTermSavingsService(accountRepo, transactionRepo, customers, branches, actors, cfg.Accounts)
	clientService := services.NewClientAccountService(accountRepo, savings, customers, branches)

	handler := router.New(
		controller.NewCurrentAccountController(currentService),
		controller.NewTermSavingsController(termService),
		controller.NewClientAccountController(clientService),
		cfg.ChannelID,
		cfg.ChannelKey,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", logger.Fields{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	logger.Info("server stopped", nil)
}
