package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rqsn/donasi/internal/auth"
)

// LoggedInMsg is sent once the admin credentials were accepted.
type LoggedInMsg struct {
	Email string
}

type LoginModel struct {
	CommonModel
	authenticator *auth.Authenticator

	form *huh.Form
	err  error
}

func NewLoginModel(a *auth.Authenticator) LoginModel {
	return LoginModel{authenticator: a, form: buildLoginForm()}
}

func (m LoginModel) Title() string     { return "Admin Login" }
func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	email := m.form.GetString("email")
	if _, _, err := m.authenticator.Login(email, m.form.GetString("password")); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			m.err = errors.New("invalid email or password")
		} else {
			m.err = err
		}

		m.form = buildLoginForm()

		return m, m.form.Init()
	}

	return m, func() tea.Msg { return LoggedInMsg{Email: strings.ToLower(strings.TrimSpace(email))} }
}

// Values are read back with GetString; models are copied on every update.
func buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email"),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m LoginModel) View() string {
	body := headerStyle.Render("Donasi Admin") + "\n\n" + m.form.View()
	if m.err != nil {
		body += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}
