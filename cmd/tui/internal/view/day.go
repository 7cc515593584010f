package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type dayState int

const (
	dayStateForm dayState = iota
	dayStateBrowse
)

type dayQuery struct {
	WorkerID string
	Date     string
}

// DayModel shows one worker's claims for a day and what is left of the cap.
type DayModel struct {
	ledger *submission.Service

	state dayState
	query *dayQuery
	form  *huh.Form
	table table.Model

	usage *submission.DailyUsage
	subs  []*submission.Submission
	err   error
}

func NewDayModel(ledger *submission.Service) DayModel {
	columns := []table.Column{
		{Title: "Voucher", Width: 10},
		{Title: "Email", Width: 28},
		{Title: "Total", Width: 10},
		{Title: "Recorded", Width: 20},
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

	m := DayModel{
		ledger: ledger,
		query:  &dayQuery{Date: time.Now().Format(time.DateOnly)},
		table:  t,
	}
	m.form = m.queryForm()

	return m
}

func (m DayModel) Title() string { return "Day Summary" }

func (m DayModel) ShortHelp() string {
	if m.state == dayStateBrowse {
		return "Esc: back | n: new query | r: refresh"
	}

	return "Esc: back | Enter: search"
}

func (m DayModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m DayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if loaded, ok := msg.(dayLoadedMsg); ok {
		m.usage = loaded.usage
		m.subs = loaded.subs
		m.err = loaded.err
		m.refreshTable()

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.state == dayStateForm {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = dayStateBrowse

		return m, m.loadCmd()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "n":
			m.state = dayStateForm
			m.form = m.queryForm()

			return m, m.form.Init()
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DayModel) queryForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Worker ID").
				Value(&m.query.WorkerID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}

					return nil
				}),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&m.query.Date).
				Validate(func(s string) error {
					_, err := submission.ParseDate(strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

type dayLoadedMsg struct {
	usage *submission.DailyUsage
	subs  []*submission.Submission
	err   error
}

func (m DayModel) loadCmd() tea.Cmd {
	q := *m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		usage, err := m.ledger.Accumulated(ctx, q.WorkerID, q.Date)
		if err != nil {
			return dayLoadedMsg{err: err}
		}

		subs, err := m.ledger.List(ctx, submission.ListFilter{WorkerID: usage.WorkerID, Date: &usage.Date})
		if err != nil {
			return dayLoadedMsg{err: err}
		}

		return dayLoadedMsg{usage: usage, subs: subs}
	}
}

func (m *DayModel) refreshTable() {
	rows := make([]table.Row, len(m.subs))
	for i, s := range m.subs {
		rows[i] = table.Row{
			s.Code(),
			s.Email,
			amount.Format(s.Total),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
	}

	m.table.SetRows(rows)
}

func (m DayModel) View() string {
	if m.state == dayStateForm {
		return pad.Render(m.form.View())
	}

	if m.err != nil {
		return pad.Render(errorStyle.Render(describeError(m.err)))
	}

	if m.usage == nil {
		return pad.Render("Loading...")
	}

	header := fmt.Sprintf("%s on %s: used %s of %s, %s remaining",
		m.usage.WorkerID,
		m.usage.Date.Format(time.DateOnly),
		amount.Format(m.usage.Used),
		amount.Format(m.usage.Cap),
		amount.Format(m.usage.Remaining),
	)

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(header),
		lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Render(m.table.View()),
	))
}
