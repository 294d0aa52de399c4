package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/rqsn/donasi/cmd/tui/internal/view"
	"github.com/rqsn/donasi/internal/app"
	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/config"
	"github.com/rqsn/donasi/internal/export"
)

type model struct {
	app           *app.App
	authenticator *auth.Authenticator
	exportService *export.Service
	admin         string

	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	reviewView    view.ReviewModel
	targetView    view.TargetModel
	exportView    view.ExportModel
}

type View int

const (
	ViewLogin     View = -1
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewReview    View = 2
	ViewTarget    View = 3
	ViewExport    View = 4
)

func initialModel(a *app.App, authenticator *auth.Authenticator) model {
	return model{
		app:           a,
		authenticator: authenticator,
		exportService: export.NewService(a.Ledger, a.Targets, a.Docs),
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(authenticator),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.app.Tracker, m.app.Ledger)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.app.Ledger)

				return m, m.reviewView.Init()
			case "3":
				m.currentView = ViewTarget
				m.targetView = view.NewTargetModel(m.app.Targets)

				return m, m.targetView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.LoggedInMsg:
		slog.Info("admin logged in", "email", msg.Email)

		m.admin = msg.Email
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewTarget:
		var newModel tea.Model
		newModel, cmd = m.targetView.Update(msg)
		m.targetView = newModel.(view.TargetModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Admin (%s)\n\n", m.app.Config.App.Name, m.admin) +
				"1. Dashboard\n" +
				"2. Review Pending Donations\n" +
				"3. Set Target\n" +
				"4. Export Recap\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewReview:
		return m.reviewView.View()
	case ViewTarget:
		return m.targetView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "donasi-tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	authenticator, err := auth.NewAuthenticator(cfg.AuthOptions())
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Tracker.Run(gctx)
	})

	if a.Listener != nil {
		g.Go(func() error {
			return a.Listener.Run(gctx)
		})
	}

	g.Go(func() error {
		defer cancel()

		p := tea.NewProgram(initialModel(a, authenticator), tea.WithContext(gctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}

		return nil
	})

	return g.Wait()
}
