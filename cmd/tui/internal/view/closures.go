package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmonteiro/pindureta/internal/closure"
	"github.com/lmonteiro/pindureta/internal/transaction"
)

type closuresState int

const (
	closuresStateBrowse closuresState = iota
	closuresStateDetail
)

// ClosuresModel lists past settlement snapshots and their stamped
// transactions.
type ClosuresModel struct {
	CommonModel
	svc *closure.Service

	state    closuresState
	table    table.Model
	closures []*closure.Closure
	detail   []*transaction.Transaction

	loading bool
	err     error
}

func NewClosuresModel(svc *closure.Service) ClosuresModel {
	columns := []table.Column{
		{Title: "Closed At", Width: 12},
		{Title: "Window", Width: 26},
		{Title: "Received", Width: 14},
		{Title: "New Debts", Width: 14},
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

	return ClosuresModel{
		svc:   svc,
		table: t,
	}
}

func (m ClosuresModel) Title() string { return "Closures" }
func (m ClosuresModel) ShortHelp() string {
	if m.state == closuresStateDetail {
		return "Esc: back to list"
	}
	return "Esc: back | enter: details | r: refresh"
}

func (m ClosuresModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClosuresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClosuresMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.closures = msg.closures
		m.err = nil
		m.refreshTable()
		return m, nil

	case loadClosureDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.detail = msg.txs
		m.state = closuresStateDetail
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch m.state {
		case closuresStateDetail:
			if keyMsg.String() == "esc" {
				m.state = closuresStateBrowse
				m.detail = nil
			}
			return m, nil

		case closuresStateBrowse:
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "r":
				m.loading = true
				return m, m.loadCmd()
			case "enter":
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.closures) {
					m.loading = true
					return m, m.loadDetailCmd(m.closures[idx])
				}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ClosuresModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading closures...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == closuresStateDetail {
		return m.viewDetail()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m ClosuresModel) viewDetail() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.closures) {
		return ""
	}

	c := m.closures[idx]

	header := fmt.Sprintf(
		"Closure %s to %s  |  Received: %s  |  New debts: %s",
		FormatDate(c.StartDate),
		FormatDate(c.EndDate),
		FormatAmount(c.TotalReceived),
		FormatAmount(c.TotalDebts),
	)

	lines := make([]string, 0, len(m.detail)+1)
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(header))

	if len(m.detail) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("No transactions remain for this closure."))
	}

	for _, tx := range m.detail {
		lines = append(lines, fmt.Sprintf(
			"%s  %-24s %12s  %s",
			FormatDate(tx.Date), tx.CustomerName, FormatAmount(tx.Amount), tx.Description,
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func (m *ClosuresModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.closures))
	for _, c := range m.closures {
		rows = append(rows, table.Row{
			FormatDate(c.CreatedAt),
			fmt.Sprintf("%s to %s", FormatDate(c.StartDate), FormatDate(c.EndDate)),
			FormatAmount(c.TotalReceived),
			FormatAmount(c.TotalDebts),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadClosuresMsg struct {
	closures []*closure.Closure
	err      error
}

type loadClosureDetailMsg struct {
	txs []*transaction.Transaction
	err error
}

// Commands

func (m ClosuresModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		closures, err := m.svc.List(ctx)
		return loadClosuresMsg{closures: closures, err: err}
	}
}

func (m ClosuresModel) loadDetailCmd(c *closure.Closure) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.svc.Transactions(ctx, c.ID)
		return loadClosureDetailMsg{txs: txs, err: err}
	}
}
