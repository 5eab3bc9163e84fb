package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmonteiro/pindureta/internal/customer"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
)

const (
	entryKindDebt    = "debt"
	entryKindPayment = "payment"
)

// LedgerModel shows one customer's transaction history and records new
// debts and payments.
type LedgerModel struct {
	CommonModel
	txs  *transaction.Service
	cust *customer.Customer

	state ledgerState
	table table.Model
	items []*transaction.Transaction
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formKind   string
	formAmount string
	formDesc   string
}

func NewLedgerModel(txs *transaction.Service, cust *customer.Customer) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 32},
		{Title: "Settled", Width: 8},
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

	return LedgerModel{
		txs:   txs,
		cust:  cust,
		table: t,
	}
}

func (m LedgerModel) Title() string { return "Ledger: " + m.cust.Name }
func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new entry | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgerMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.txs
		m.err = nil
		m.refreshTable()
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterAddMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LedgerModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formKind = entryKindDebt
	m.formAmount = ""
	m.formDesc = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Entry").
				Options(
					huh.NewOption("Debt (fiado)", entryKindDebt),
					huh.NewOption("Payment received", entryKindPayment),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12,50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := ParseAmount(s)
					if err != nil {
						return err
					}
					if v < 0 {
						return fmt.Errorf("amount must not be negative")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("Arroz, feijão...").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m LedgerModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ledgerStateBrowse
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

	return m, m.saveCmd()
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().Bold(true).Render(m.cust.Name) +
		lipgloss.NewStyle().Faint(true).Render("  balance "+FormatAmount(balance(m.items)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == ledgerStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Entry\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// balance recomputes the customer's running balance from the loaded
// history; closed and open entries both count.
func balance(txs []*transaction.Transaction) int64 {
	var sum int64
	for _, tx := range txs {
		sum += tx.Amount
	}

	return sum
}

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, tx := range m.items {
		settled := ""
		if !tx.Open() {
			settled = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			FormatAmount(tx.Amount),
			tx.Description,
			settled,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadLedgerMsg struct {
	txs []*transaction.Transaction
	err error
}

type entrySavedMsg struct {
	err error
}

// Commands

func (m LedgerModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txs.ListByCustomer(ctx, m.cust.ID)
		return loadLedgerMsg{txs: txs, err: err}
	}
}

func (m LedgerModel) saveCmd() tea.Cmd {
	kind := m.formKind
	rawAmount := m.formAmount
	desc := strings.TrimSpace(m.formDesc)

	return func() tea.Msg {
		amount, err := ParseAmount(rawAmount)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		if kind == entryKindPayment {
			amount = -amount
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.txs.Create(ctx, transaction.CreateParams{
			CustomerID:  m.cust.ID,
			Amount:      amount,
			Description: desc,
		})

		return entrySavedMsg{err: err}
	}
}
