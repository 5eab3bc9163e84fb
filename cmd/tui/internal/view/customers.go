package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmonteiro/pindureta/internal/customer"
	"github.com/lmonteiro/pindureta/internal/reminder"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

type customersState int

const (
	customersStateBrowse customersState = iota
	customersStateAdd
	customersStateDelete
	customersStateMessage
)

type CustomersModel struct {
	CommonModel
	svc       *customer.Service
	txs       *transaction.Service
	reminders *reminder.Service

	state     customersState
	table     table.Model
	customers []*customer.Customer
	form      *huh.Form

	message string
	loading bool
	err     error
	status  string

	// Form bindings
	formName    string
	formPhone   string
	formConfirm bool
}

func NewCustomersModel(svc *customer.Service, txs *transaction.Service, reminders *reminder.Service) CustomersModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Phone", Width: 16},
		{Title: "Balance", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return CustomersModel{
		svc:       svc,
		txs:       txs,
		reminders: reminders,
		table:     t,
	}
}

func (m CustomersModel) Title() string { return "Customers" }
func (m CustomersModel) ShortHelp() string {
	switch m.state {
	case customersStateAdd, customersStateDelete:
		return "Navigate form | Esc: cancel"
	case customersStateMessage:
		return "Esc: close"
	}

	return "Esc: back | enter: ledger | a: add | d: delete | m: reminder | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.customers = msg.customers
		m.err = nil
		m.refreshTable()
		return m, nil

	case customerSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}
		m.state = customersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case customerDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		}
		m.state = customersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case reminderMsg:
		m.message = msg.message
		m.state = customersStateMessage
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case customersStateBrowse:
		return m.updateBrowse(msg)
	case customersStateAdd, customersStateDelete:
		return m.updateForm(msg)
	case customersStateMessage:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.state = customersStateBrowse
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

func (m CustomersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "d":
			return m.enterDeleteMode()
		case "m":
			if c := m.selected(); c != nil {
				m.status = "Generating reminder..."
				return m, m.reminderCmd(c)
			}
		case "enter":
			if c := m.selected(); c != nil {
				return m, func() tea.Msg { return OpenLedgerMsg{Customer: c} }
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CustomersModel) selected() *customer.Customer {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.customers) {
		return nil
	}

	return m.customers[idx]
}

func (m CustomersModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formPhone = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Placeholder("+55...").
				Value(&m.formPhone),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customersStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m CustomersModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil {
		return m, nil
	}

	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s and their whole history?", c.Name)).
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = customersStateDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m CustomersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = customersStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == customersStateDelete {
		if !m.formConfirm {
			m.state = customersStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}

		return m, m.deleteCmd(m.selected())
	}

	return m, m.saveCmd()
}

func (m CustomersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if (m.state == customersStateAdd || m.state == customersStateDelete) && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.state == customersStateMessage {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")).
			Width(60).
			Render("Reminder message\n\n" + m.message)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CustomersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		rows = append(rows, table.Row{
			c.Name,
			c.Phone,
			FormatAmount(c.Balance),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadCustomersMsg struct {
	customers []*customer.Customer
	err       error
}

type customerSavedMsg struct {
	err error
}

type customerDeletedMsg struct {
	err error
}

type reminderMsg struct {
	message string
}

// Commands

func (m CustomersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.svc.List(ctx)
		return loadCustomersMsg{customers: customers, err: err}
	}
}

func (m CustomersModel) saveCmd() tea.Cmd {
	name, phone := m.formName, m.formPhone

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Create(ctx, customer.CreateParams{Name: name, Phone: phone})
		return customerSavedMsg{err: err}
	}
}

func (m CustomersModel) deleteCmd(c *customer.Customer) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return customerDeletedMsg{}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		return customerDeletedMsg{err: m.svc.Delete(ctx, c.ID)}
	}
}

func (m CustomersModel) reminderCmd(c *customer.Customer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var debts []reminder.Debt

		txs, err := m.txs.ListByCustomer(ctx, c.ID)
		if err == nil {
			for _, tx := range txs {
				if tx.Amount <= 0 {
					continue
				}

				debts = append(debts, reminder.Debt{Description: tx.Description, Amount: tx.Amount})
				if len(debts) == 3 {
					break
				}
			}
		}

		// The reminder client enforces its own timeout.
		msg := m.reminders.Message(context.Background(), reminder.Params{
			CustomerName: c.Name,
			Outstanding:  c.Balance,
			RecentDebts:  debts,
		})

		return reminderMsg{message: msg}
	}
}
