package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/rqsn/donasi/internal/app"
	"github.com/rqsn/donasi/internal/auth"
	"github.com/rqsn/donasi/internal/config"
	"github.com/rqsn/donasi/internal/export"
	donasiHttp "github.com/rqsn/donasi/internal/http"
	donationHandler "github.com/rqsn/donasi/internal/http/donation"
	exportHandler "github.com/rqsn/donasi/internal/http/export"
	"github.com/rqsn/donasi/internal/http/login"
	"github.com/rqsn/donasi/internal/http/recap"
	"github.com/rqsn/donasi/internal/http/summary"
	targetHandler "github.com/rqsn/donasi/internal/http/target"
	"github.com/rqsn/donasi/internal/importer"
	"github.com/rqsn/donasi/internal/notify"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	authenticator, err := auth.NewAuthenticator(cfg.AuthOptions())
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	var (
		notifier      = notify.NewNotifier(publisher, cfg.Messaging.Recipient)
		importService = importer.NewService(a.Ledger)
	)

	router := donasiHttp.New(authenticator, cfg.CORS.AllowedOrigins, donasiHttp.Handlers{
		Login:     login.NewHandler(authenticator),
		Donations: donationHandler.NewHandler(a.Ledger, notifier, a.Docs, importService, cfg.Server.MaxUploadBytes),
		Target:    targetHandler.NewHandler(a.Targets),
		Summary:   summary.NewHandler(a.Tracker),
		Recap:     recap.NewHandler(a.Ledger, a.Targets, a.Docs),
		Export:    exportHandler.NewHandler(export.NewService(a.Ledger, a.Targets, a.Docs)),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Tracker.Run(ctx)
	})

	if a.Listener != nil {
		g.Go(func() error {
			return a.Listener.Run(ctx)
		})
	}

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "backend", cfg.App.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newPublisher(cfg *config.Config) (notify.Publisher, func(), error) {
	if cfg.Messaging.AMQPURL == "" {
		return notify.LogPublisher{}, func() {}, nil
	}

	p, err := notify.NewAMQPPublisher(cfg.Messaging.AMQPURL, cfg.Messaging.Exchange, cfg.Messaging.Queue)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to broker: %w", err)
	}

	return p, func() {
		if err := p.Close(); err != nil {
			slog.Error("failed to close broker connection", "error", err)
		}
	}, nil
}
