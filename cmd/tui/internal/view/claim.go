package view

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
	"github.com/MrJamesThe3rd/movilidad/internal/importer"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type claimState int

const (
	claimStateHeader claimState = iota
	claimStateItem
	claimStateSubmitting
	claimStateResult
)

// claimDraft lives on the heap so huh keeps writing to the same fields while
// the model is copied around by bubbletea.
type claimDraft struct {
	WorkerID string
	Email    string
	Date     string
	CSVPath  string

	Item    submission.ItemInput
	AddMore bool

	Items []submission.ItemInput
}

type ClaimModel struct {
	ledger *submission.Service
	parser *importer.Parser

	state   claimState
	draft   *claimDraft
	form    *huh.Form
	spinner spinner.Model

	result *submission.Result
	err    error
}

func NewClaimModel(ledger *submission.Service, parser *importer.Parser) ClaimModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ClaimModel{
		ledger:  ledger,
		parser:  parser,
		draft:   &claimDraft{Date: time.Now().Format(time.DateOnly)},
		spinner: s,
	}
	m.form = m.headerForm()

	return m
}

func (m ClaimModel) Title() string { return "New Claim" }

func (m ClaimModel) ShortHelp() string {
	if m.state == claimStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: next"
}

func (m ClaimModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ClaimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != claimStateSubmitting {
		return m, Back
	}

	switch m.state {
	case claimStateHeader:
		return m.updateHeader(msg)
	case claimStateItem:
		return m.updateItem(msg)
	case claimStateSubmitting:
		return m.updateSubmitting(msg)
	}

	return m, nil
}

func (m *ClaimModel) updateForm(msg tea.Msg) (bool, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return m.form.State == huh.StateCompleted, cmd
}

func (m ClaimModel) updateHeader(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	if path := strings.TrimSpace(m.draft.CSVPath); path != "" {
		items, err := m.readCSV(path)
		if err != nil {
			m.state = claimStateResult
			m.err = err

			return m, nil
		}

		m.draft.Items = items

		return m.startSubmit()
	}

	m.state = claimStateItem
	m.form = m.itemForm()

	return m, m.form.Init()
}

func (m ClaimModel) updateItem(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	m.draft.Items = append(m.draft.Items, m.draft.Item)
	m.draft.Item = submission.ItemInput{}

	if m.draft.AddMore {
		m.form = m.itemForm()
		return m, m.form.Init()
	}

	return m.startSubmit()
}

func (m ClaimModel) startSubmit() (tea.Model, tea.Cmd) {
	m.state = claimStateSubmitting
	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m ClaimModel) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(claimResultMsg); ok {
		m.state = claimStateResult
		m.result = res.result
		m.err = res.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ClaimModel) readCSV(path string) ([]submission.ItemInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := m.parser.Parse(f)
	if err != nil {
		return nil, err
	}

	return res.Items, nil
}

func (m ClaimModel) headerForm() *huh.Form {
	notBlank := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}

		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Worker ID").Value(&m.draft.WorkerID).Validate(notBlank),
			huh.NewInput().Title("Email").Value(&m.draft.Email).Validate(notBlank),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&m.draft.Date).
				Validate(func(s string) error {
					_, err := submission.ParseDate(strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Title("Items CSV").
				Description("Optional. Leave empty to type the items").
				Value(&m.draft.CSVPath),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ClaimModel) itemForm() *huh.Form {
	m.draft.AddMore = false

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(fmt.Sprintf("Item %d", len(m.draft.Items)+1)),
			huh.NewInput().Title("Destination").Value(&m.draft.Item.Destination),
			huh.NewInput().Title("Reason").Value(&m.draft.Item.Reason),
			huh.NewInput().Title("Project").Placeholder("worker default").Value(&m.draft.Item.Project),
			huh.NewInput().Title("Cost center").Value(&m.draft.Item.CostCenter),
			huh.NewInput().Title("Amount").Placeholder("S/ 0,00").Value(&m.draft.Item.Amount),
			huh.NewConfirm().Title("Add another item?").Value(&m.draft.AddMore),
		),
	).WithWidth(60).WithShowHelp(false)
}

type claimResultMsg struct {
	result *submission.Result
	err    error
}

func (m ClaimModel) submitCmd() tea.Cmd {
	params := submission.SubmitParams{
		WorkerID: m.draft.WorkerID,
		Email:    m.draft.Email,
		Date:     m.draft.Date,
		Items:    m.draft.Items,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.ledger.Submit(ctx, params)

		return claimResultMsg{result: res, err: err}
	}
}

func (m ClaimModel) View() string {
	switch m.state {
	case claimStateHeader, claimStateItem:
		return pad.Render(m.form.View())
	case claimStateSubmitting:
		return pad.Render(fmt.Sprintf("%s Recording claim...", m.spinner.View()))
	}

	if m.err != nil {
		return pad.Render(errorStyle.Render(describeError(m.err)) + "\n\n" + faintStyle.Render("(Esc to back)"))
	}

	return pad.Render(renderReceipt(m.result) + "\n\n" + faintStyle.Render("(Esc to back)"))
}

func renderReceipt(res *submission.Result) string {
	lines := []string{
		successStyle.Render("Claim accepted " + res.VoucherCode),
		"",
		fmt.Sprintf("Worker: %s", res.WorkerName),
		fmt.Sprintf("Date:  %s", res.Date.Format(time.DateOnly)),
		fmt.Sprintf("Total: %s", amount.Format(res.Total)),
	}

	if res.Company != nil {
		lines = append(lines, fmt.Sprintf("Employer: %s (%s)", res.Company.LegalName, res.Company.TaxID))
	}

	lines = append(lines, "")

	for _, it := range res.Items {
		lines = append(lines, fmt.Sprintf("  %-24s %-12s %8s", it.Destination, it.Project, amount.Format(it.Amount)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func describeError(err error) string {
	var capErr *submission.CapExceededError
	if errors.As(err, &capErr) {
		return fmt.Sprintf("Daily cap of %s reached: %s already claimed, %s remaining.",
			amount.Format(capErr.Cap), amount.Format(capErr.Accumulated), amount.Format(capErr.Remaining()))
	}

	switch submission.KindOf(err) {
	case submission.KindWorkerNotFound:
		return "Unknown worker."
	case submission.KindWorkerInactive:
		return "This worker is inactive and cannot submit claims."
	case submission.KindEmptySubmission:
		return "No item has a positive amount."
	case submission.KindPersistence:
		return "The ledger is unavailable, try again later."
	}

	return fmt.Sprintf("Error: %v", err)
}
