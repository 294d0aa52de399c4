package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	ChannelDonations = "donations_changed"
	ChannelTarget    = "target_changed"
)

// Listener holds a dedicated connection subscribed to Postgres notification
// channels and calls the matching handler for every notification. Changes
// committed by other processes (another API instance, psql, the TUI against a
// shared database) reach local subscribers this way.
type Listener struct {
	connStr  string
	handlers map[string]func(ctx context.Context) error
	backoff  time.Duration
}

func NewListener(connStr string) *Listener {
	return &Listener{
		connStr:  connStr,
		handlers: make(map[string]func(ctx context.Context) error),
		backoff:  time.Second,
	}
}

// Handle registers fn for channel. It must be called before Run.
func (l *Listener) Handle(channel string, fn func(ctx context.Context) error) {
	l.handlers[channel] = fn
}

// Run listens until ctx is cancelled, reconnecting after connection failures.
// After every (re)connect each handler is called once so that changes missed
// while disconnected are picked up.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		slog.Error("notification listener disconnected", "error", err, "retry_in", l.backoff)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.backoff):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connStr)
	if err != nil {
		return fmt.Errorf("connecting listener: %w", err)
	}
	defer conn.Close(context.WithoutCancel(ctx))

	for channel := range l.handlers {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
			return fmt.Errorf("listening on %s: %w", channel, err)
		}
	}

	for channel, fn := range l.handlers {
		l.dispatch(ctx, channel, fn)
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("waiting for notification: %w", err)
		}

		if fn, ok := l.handlers[n.Channel]; ok {
			l.dispatch(ctx, n.Channel, fn)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, channel string, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		slog.Error("failed to handle notification", "channel", channel, "error", err)
	}
}
