package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/lmonteiro/pindureta/internal/closure"
	closureStore "github.com/lmonteiro/pindureta/internal/closure/store"
	"github.com/lmonteiro/pindureta/internal/config"
	"github.com/lmonteiro/pindureta/internal/customer"
	customerStore "github.com/lmonteiro/pindureta/internal/customer/store"
	"github.com/lmonteiro/pindureta/internal/database"
	pinduretaHttp "github.com/lmonteiro/pindureta/internal/http"
	closureHandler "github.com/lmonteiro/pindureta/internal/http/closure"
	customerHandler "github.com/lmonteiro/pindureta/internal/http/customer"
	txHandler "github.com/lmonteiro/pindureta/internal/http/transaction"
	"github.com/lmonteiro/pindureta/internal/reminder"
	"github.com/lmonteiro/pindureta/internal/transaction"
	txStore "github.com/lmonteiro/pindureta/internal/transaction/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		customerService = customer.NewService(customerStore.New(db))
		txService       = transaction.NewService(txStore.New(db))
		closureService  = closure.NewService(closureStore.New(db), txService)
		reminderService = reminder.NewService(reminder.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: cfg.Gemini.Timeout,
		})
	)

	var (
		customerH = customerHandler.NewHandler(customerService, txService, reminderService)
		txH       = txHandler.NewHandler(txService)
		closureH  = closureHandler.NewHandler(closureService)
	)

	router := pinduretaHttp.New(customerH, txH, closureH, cfg.Server.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
