package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/watch"
)

const (
	recentLimit = 10
	barWidth    = 40
)

// DashboardModel follows the tracker and the ledger live until the view is
// left.
type DashboardModel struct {
	CommonModel
	tracker *aggregate.Tracker
	ledger  *donation.Service

	ctx    context.Context
	cancel context.CancelFunc

	snapshots *watch.Subscription[aggregate.Snapshot]
	records   *watch.Subscription[[]*donation.Donation]

	snapshot aggregate.Snapshot
	ready    bool
	table    table.Model
	spinner  spinner.Model
	err      error
}

func NewDashboardModel(tracker *aggregate.Tracker, ledger *donation.Service) DashboardModel {
	ctx, cancel := context.WithCancel(context.Background())

	return DashboardModel{
		tracker: tracker,
		ledger:  ledger,
		ctx:     ctx,
		cancel:  cancel,
		table:   newDonationTable(recentLimit),
		spinner: newSpinner(),
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back" }

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.subscribeCmd())
}

type dashboardSubscribedMsg struct {
	snapshots *watch.Subscription[aggregate.Snapshot]
	records   *watch.Subscription[[]*donation.Donation]
	err       error
}

type snapshotMsg struct {
	sub *watch.Subscription[aggregate.Snapshot]
	u   watch.Update[aggregate.Snapshot]
}

type recordsMsg struct {
	sub *watch.Subscription[[]*donation.Donation]
	u   watch.Update[[]*donation.Donation]
}

func (m DashboardModel) subscribeCmd() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		snapshots, err := m.tracker.Subscribe(ctx)
		if err != nil {
			return dashboardSubscribedMsg{err: err}
		}

		records, err := m.ledger.Subscribe(ctx)
		if err != nil {
			snapshots.Close()
			return dashboardSubscribedMsg{err: err}
		}

		return dashboardSubscribedMsg{snapshots: snapshots, records: records}
	}
}

func waitSnapshot(sub *watch.Subscription[aggregate.Snapshot]) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-sub.Updates()
		if !ok {
			return nil
		}

		return snapshotMsg{sub: sub, u: u}
	}
}

func waitRecords(sub *watch.Subscription[[]*donation.Donation]) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-sub.Updates()
		if !ok {
			return nil
		}

		return recordsMsg{sub: sub, u: u}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			m.cancel()
			return m, Back
		}

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case dashboardSubscribedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.snapshots, m.records = msg.snapshots, msg.records

		return m, tea.Batch(waitSnapshot(m.snapshots), waitRecords(m.records))

	case snapshotMsg:
		msg.sub.Deliver(msg.u, func(s aggregate.Snapshot) {
			m.snapshot = s
			m.ready = true
		})

		return m, waitSnapshot(msg.sub)

	case recordsMsg:
		msg.sub.Deliver(msg.u, func(records []*donation.Donation) {
			m.table.SetRows(donationRows(records[:min(len(records), recentLimit)]))
		})

		return m, waitRecords(msg.sub)
	}

	if !m.ready {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if !m.ready {
		return lipgloss.NewStyle().Padding(1).Render(m.spinner.View() + " Loading campaign totals...")
	}

	s := m.snapshot

	summary := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Campaign"),
		"",
		fmt.Sprintf("Collected: %s", FormatAmount(s.TotalApproved)),
		fmt.Sprintf("Target:    %s", FormatAmount(s.Target)),
		fmt.Sprintf("Progress:  %s %.1f%%", progressBar(s.ProgressPercent), s.ProgressPercent),
		"",
		fmt.Sprintf("Approved: %d   Pending: %d", s.ApprovedCount, s.PendingCount),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			summary,
			"",
			headerStyle.Render("Recent donations"),
			m.table.View(),
			"",
			mutedStyle.Render(m.ShortHelp()),
		),
	)
}

func progressBar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	filled = max(0, min(filled, barWidth))

	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}
