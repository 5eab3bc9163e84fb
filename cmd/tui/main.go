package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/lmonteiro/pindureta/cmd/tui/internal/view"
	"github.com/lmonteiro/pindureta/internal/closure"
	closureStore "github.com/lmonteiro/pindureta/internal/closure/store"
	"github.com/lmonteiro/pindureta/internal/config"
	"github.com/lmonteiro/pindureta/internal/customer"
	customerStore "github.com/lmonteiro/pindureta/internal/customer/store"
	"github.com/lmonteiro/pindureta/internal/database"
	"github.com/lmonteiro/pindureta/internal/reminder"
	"github.com/lmonteiro/pindureta/internal/transaction"
	txStore "github.com/lmonteiro/pindureta/internal/transaction/store"
)

type model struct {
	customerService *customer.Service
	txService       *transaction.Service
	closureService  *closure.Service
	reminderService *reminder.Service

	currentView View

	customersView view.CustomersModel
	ledgerView    view.LedgerModel
	weekView      view.WeekModel
	closuresView  view.ClosuresModel
}

type View int

const (
	ViewMenu      View = 0
	ViewCustomers View = 1
	ViewLedger    View = 2
	ViewWeek      View = 3
	ViewClosures  View = 4
)

func initialModel() model {
	_ = godotenv.Load()

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

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	customerSvc := customer.NewService(customerStore.New(db))
	txSvc := transaction.NewService(txStore.New(db))
	closureSvc := closure.NewService(closureStore.New(db), txSvc)
	reminderSvc := reminder.NewService(reminder.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})

	return model{
		customerService: customerSvc,
		txService:       txSvc,
		closureService:  closureSvc,
		reminderService: reminderSvc,
		currentView:     ViewMenu,
		customersView:   view.NewCustomersModel(customerSvc, txSvc, reminderSvc),
		weekView:        view.NewWeekModel(closureSvc),
		closuresView:    view.NewClosuresModel(closureSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.customerService, m.txService, m.reminderService)

				return m, m.customersView.Init()
			case "2":
				m.currentView = ViewWeek
				m.weekView = view.NewWeekModel(m.closureService)

				return m, m.weekView.Init()
			case "3":
				m.currentView = ViewClosures
				m.closuresView = view.NewClosuresModel(m.closureService)

				return m, m.closuresView.Init()
			}
		}
	case view.OpenLedgerMsg:
		m.currentView = ViewLedger
		m.ledgerView = view.NewLedgerModel(m.txService, msg.Customer)

		return m, m.ledgerView.Init()
	case view.BackMsg:
		if m.currentView == ViewLedger {
			m.currentView = ViewCustomers
			return m, m.customersView.Init()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewWeek:
		var newModel tea.Model
		newModel, cmd = m.weekView.Update(msg)
		m.weekView = newModel.(view.WeekModel)
	case ViewClosures:
		var newModel tea.Model
		newModel, cmd = m.closuresView.Update(msg)
		m.closuresView = newModel.(view.ClosuresModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Pindureta\n\n" +
				"1. Customers\n" +
				"2. Current Week\n" +
				"3. Closures\n\n" +
				"q. Quit",
		)
	case ViewCustomers:
		return m.customersView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewWeek:
		return m.weekView.View()
	case ViewClosures:
		return m.closuresView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
