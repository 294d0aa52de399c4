package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rqsn/donasi/internal/target"
)

type targetState int

const (
	targetStateLoading targetState = iota
	targetStateForm
	targetStateSaving
	targetStateResult
)

type TargetModel struct {
	CommonModel
	targets *target.Service

	state   targetState
	current int64
	form    *huh.Form
	saved   int64
	err     error
}

func NewTargetModel(targets *target.Service) TargetModel {
	return TargetModel{targets: targets}
}

func (m TargetModel) Title() string { return "Campaign Target" }

func (m TargetModel) ShortHelp() string {
	if m.state == targetStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: save"
}

type targetLoadedMsg struct {
	amount int64
	err    error
}

type targetSavedMsg struct {
	amount int64
	err    error
}

func (m TargetModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		amount, err := m.targets.Get(ctx)

		return targetLoadedMsg{amount: amount, err: err}
	}
}

func (m TargetModel) saveCmd(amount int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return targetSavedMsg{amount: amount, err: m.targets.Set(ctx, amount)}
	}
}

func (m TargetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	switch msg := msg.(type) {
	case targetLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = targetStateResult

			return m, nil
		}

		m.current = msg.amount
		m.form = buildTargetForm(msg.amount)
		m.state = targetStateForm

		return m, m.form.Init()

	case targetSavedMsg:
		m.state = targetStateResult
		m.err = msg.err
		m.saved = msg.amount

		return m, nil
	}

	if m.state != targetStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount, err := ParseAmount(m.form.GetString("amount"))
	if err != nil {
		m.err = err
		m.state = targetStateResult

		return m, nil
	}

	m.state = targetStateSaving

	return m, m.saveCmd(amount)
}

func buildTargetForm(current int64) *huh.Form {
	value := ""
	if current > 0 {
		value = fmt.Sprintf("%d", current)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Target amount (Rp)").
				Description(fmt.Sprintf("Current target: %s", FormatAmount(current))).
				Placeholder("100.000.000").
				Value(&value).
				Validate(func(s string) error {
					n, err := ParseAmount(s)
					if err != nil {
						return err
					}

					if n <= 0 {
						return fmt.Errorf("target must be greater than zero")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m TargetModel) View() string {
	switch m.state {
	case targetStateLoading:
		return lipgloss.NewStyle().Padding(1).Render("Loading target...")

	case targetStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case targetStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Saving...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + mutedStyle.Render(m.ShortHelp()),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		successStyle.Render(fmt.Sprintf("Target set to %s", FormatAmount(m.saved))) + "\n\n" + mutedStyle.Render(m.ShortHelp()),
	)
}
