package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmonteiro/pindureta/internal/closure"
)

type weekState int

const (
	weekStateBrowse weekState = iota
	weekStateConfirm
)

// WeekModel shows the current open settlement window and performs the
// weekly closure from it.
type WeekModel struct {
	CommonModel
	svc *closure.Service

	state   weekState
	table   table.Model
	summary *closure.WeekSummary
	form    *huh.Form

	loading bool
	closing bool
	err     error
	status  string

	formConfirm bool
}

func NewWeekModel(svc *closure.Service) WeekModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 24},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return WeekModel{
		svc:   svc,
		table: t,
	}
}

func (m WeekModel) Title() string { return "Current Week" }
func (m WeekModel) ShortHelp() string {
	if m.state == weekStateConfirm {
		return "Confirm | Esc: cancel"
	}
	return "Esc: back | c: close week | r: refresh"
}

func (m WeekModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WeekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadWeekMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.err = nil
		m.refreshTable()
		return m, nil

	case weekClosedMsg:
		m.closing = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error closing week: %v", msg.err)
		} else {
			m.status = "Week closed."
		}
		m.state = weekStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case weekStateBrowse:
		return m.updateBrowse(msg)
	case weekStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m WeekModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			return m.enterConfirmMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m WeekModel) enterConfirmMode() (tea.Model, tea.Cmd) {
	if m.summary == nil || len(m.summary.Transactions) == 0 {
		m.status = "Nothing to close this week."
		return m, nil
	}

	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf(
					"Close %d transactions? Received %s, new debts %s.",
					len(m.summary.Transactions),
					FormatAmount(m.summary.TotalReceived),
					FormatAmount(m.summary.TotalDebts),
				)).
				Value(&m.formConfirm),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = weekStateConfirm
	m.table.Blur()
	return m, m.form.Init()
}

func (m WeekModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = weekStateBrowse
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

	if !m.formConfirm {
		m.state = weekStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	m.closing = true
	return m, m.closeCmd()
}

func (m WeekModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading week...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.closing {
		return lipgloss.NewStyle().Padding(2).Render("Closing week...")
	}

	header := ""
	if m.summary != nil {
		header = fmt.Sprintf(
			"Week %s to %s  |  Received: %s  |  New debts: %s  |  Open: %d",
			FormatDate(m.summary.Window.Start),
			FormatDate(m.summary.Window.End),
			FormatAmount(m.summary.TotalReceived),
			FormatAmount(m.summary.TotalDebts),
			len(m.summary.Transactions),
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == weekStateConfirm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(56).
			Render("Weekly Closure\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *WeekModel) refreshTable() {
	if m.summary == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.summary.Transactions))
	for _, tx := range m.summary.Transactions {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.CustomerName,
			FormatAmount(tx.Amount),
			tx.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadWeekMsg struct {
	summary *closure.WeekSummary
	err     error
}

type weekClosedMsg struct {
	err error
}

// Commands

func (m WeekModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.svc.Week(ctx, time.Now())
		return loadWeekMsg{summary: summary, err: err}
	}
}

// closeCmd settles the visible window with the exact transaction ids on
// screen, so entries recorded after the summary was loaded stay open.
func (m WeekModel) closeCmd() tea.Cmd {
	summary := m.summary

	return func() tea.Msg {
		params := closure.CreateParams{
			TotalReceived: summary.TotalReceived,
			TotalDebts:    summary.TotalDebts,
			StartDate:     summary.Window.Start,
			EndDate:       summary.Window.End,
		}
		for _, tx := range summary.Transactions {
			params.TransactionIDs = append(params.TransactionIDs, tx.ID)
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Create(ctx, params)
		return weekClosedMsg{err: err}
	}
}
