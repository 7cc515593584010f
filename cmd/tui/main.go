package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/movilidad/internal/app"
	"github.com/MrJamesThe3rd/movilidad/internal/config"
	"github.com/MrJamesThe3rd/movilidad/internal/importer"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type View int

const (
	ViewMenu  View = 0
	ViewClaim View = 1
	ViewDay   View = 2
)

type model struct {
	ledger *submission.Service
	parser *importer.Parser
	cap    string

	currentView View

	claimView view.ClaimModel
	dayView   view.DayModel
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
				m.currentView = ViewClaim
				m.claimView = view.NewClaimModel(m.ledger, m.parser)

				return m, m.claimView.Init()
			case "2":
				m.currentView = ViewDay
				m.dayView = view.NewDayModel(m.ledger)

				return m, m.dayView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewClaim:
		var newModel tea.Model
		newModel, cmd = m.claimView.Update(msg)
		m.claimView = newModel.(view.ClaimModel)
	case ViewDay:
		var newModel tea.Model
		newModel, cmd = m.dayView.Update(msg)
		m.dayView = newModel.(view.DayModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Movilidad\n" +
				lipgloss.NewStyle().Faint(true).Render("Daily cap "+m.cap) + "\n\n" +
				"1. New Claim\n" +
				"2. Day Summary\n\n" +
				"q. Quit",
		)
	case ViewClaim:
		return m.claimView.View()
	case ViewDay:
		return m.dayView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea, so the ledger logs nowhere.
	a, err := app.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(model{
		ledger: a.Ledger,
		parser: importer.NewParser(),
		cap:    cfg.Ledger.DailyCap,
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to run TUI:", err)
		os.Exit(1)
	}
}
