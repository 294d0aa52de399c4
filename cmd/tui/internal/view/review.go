package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rqsn/donasi/internal/donation"
)

type reviewState int

const (
	reviewStateBrowse reviewState = iota
	reviewStateConfirm
)

type reviewAction int

const (
	actionApprove reviewAction = iota
	actionReject
)

// ReviewModel lists pending donations and approves or rejects them after
// confirmation. Rejecting deletes the donation.
type ReviewModel struct {
	CommonModel
	ledger *donation.Service

	state   reviewState
	table   table.Model
	pending []*donation.Donation
	form    *huh.Form
	action  reviewAction
	target  *donation.Donation

	loading bool
	status  string
	err     error
}

func NewReviewModel(ledger *donation.Service) ReviewModel {
	return ReviewModel{
		ledger:  ledger,
		table:   newDonationTable(15),
		loading: true,
	}
}

func (m ReviewModel) Title() string { return "Review Pending Donations" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateConfirm {
		return "←/→: choose | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | a: approve | x: reject | r: refresh"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

type loadPendingMsg struct {
	records []*donation.Donation
	err     error
}

type reviewResultMsg struct {
	action reviewAction
	donor  string
	err    error
}

func (m ReviewModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		status := donation.StatusPending
		records, err := m.ledger.List(ctx, donation.ListFilter{Status: &status})

		return loadPendingMsg{records: records, err: err}
	}
}

func (m ReviewModel) applyCmd(action reviewAction, d *donation.Donation) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		switch action {
		case actionApprove:
			err = m.ledger.Approve(ctx, d.ID)
		case actionReject:
			err = m.ledger.Reject(ctx, d.ID)
		}

		return reviewResultMsg{action: action, donor: d.DonorName, err: err}
	}
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.pending = msg.records
		m.table.SetRows(donationRows(m.pending))

		return m, nil

	case reviewResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else if msg.action == actionApprove {
			m.status = successStyle.Render(fmt.Sprintf("Approved donation from %s", msg.donor))
		} else {
			m.status = successStyle.Render(fmt.Sprintf("Rejected donation from %s", msg.donor))
		}

		m.loading = true

		return m, m.loadPendingCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case reviewStateConfirm:
		return m.updateConfirm(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m ReviewModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPendingCmd()
		case "a":
			return m.confirm(actionApprove)
		case "x":
			return m.confirm(actionReject)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReviewModel) confirm(action reviewAction) (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if m.loading || idx < 0 || idx >= len(m.pending) {
		return m, nil
	}

	d := m.pending[idx]

	title := fmt.Sprintf("Approve %s from %s?", FormatAmount(d.Amount), d.DonorName)
	if action == actionReject {
		title = fmt.Sprintf("Reject and delete %s from %s?", FormatAmount(d.Amount), d.DonorName)
	}

	m.action = action
	m.target = d
	m.state = reviewStateConfirm
	m.status = ""
	m.table.Blur()
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(title).
				Affirmative("Yes").
				Negative("No"),
		),
	).WithWidth(60).WithShowHelp(false)

	return m, m.form.Init()
}

func (m ReviewModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveConfirm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.leaveConfirm(), nil
	case huh.StateCompleted:
		action, d := m.action, m.target
		ok := m.form.GetBool("confirm")
		m = m.leaveConfirm()

		if !ok {
			return m, nil
		}

		return m, m.applyCmd(action, d)
	}

	return m, cmd
}

func (m ReviewModel) leaveConfirm() ReviewModel {
	m.state = reviewStateBrowse
	m.form = nil
	m.target = nil
	m.table.Focus()

	return m
}

func (m ReviewModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.state == reviewStateConfirm {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	header := headerStyle.Render(fmt.Sprintf("%s (%d)", m.Title(), len(m.pending)))

	body := m.table.View()
	if !m.loading && len(m.pending) == 0 {
		body = mutedStyle.Render("No donations waiting for review.")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			body,
			"",
			m.status,
			mutedStyle.Render(m.ShortHelp()),
		),
	)
}
