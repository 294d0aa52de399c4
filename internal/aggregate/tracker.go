package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/watch"
)

var errSourceClosed = errors.New("source subscription closed")

type Ledger interface {
	Subscribe(ctx context.Context) (*watch.Subscription[[]*donation.Donation], error)
}

type Targets interface {
	Subscribe(ctx context.Context) (*watch.Subscription[int64], error)
}

// Tracker keeps the latest Snapshot, recomputing it whenever the ledger or the
// target changes, and republishes it to its own subscribers.
type Tracker struct {
	ledger  Ledger
	targets Targets
	hub     *watch.Hub[Snapshot]
	ready   chan struct{}

	mu      sync.RWMutex
	records []*donation.Donation
	target  int64
	current Snapshot
}

func NewTracker(ledger Ledger, targets Targets) *Tracker {
	t := &Tracker{
		ledger:  ledger,
		targets: targets,
		ready:   make(chan struct{}),
		current: Compute(nil, 0),
	}
	t.hub = watch.NewHub(func(context.Context) (Snapshot, error) {
		return t.Current(), nil
	})

	return t
}

// Current returns the most recently computed snapshot.
func (t *Tracker) Current() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.current
}

// Ready is closed once the first snapshot from both sources has been computed.
func (t *Tracker) Ready() <-chan struct{} {
	return t.ready
}

// Subscribe streams snapshots: the current one first, then one per recompute.
func (t *Tracker) Subscribe(ctx context.Context) (*watch.Subscription[Snapshot], error) {
	return t.hub.Subscribe(ctx)
}

// Run follows both sources until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) error {
	ledgerSub, err := t.ledger.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to ledger: %w", err)
	}
	defer ledgerSub.Close()

	targetSub, err := t.targets.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to target: %w", err)
	}
	defer targetSub.Close()

	// Both subscriptions hold their current value already.
	ledgerSub.Deliver(<-ledgerSub.Updates(), t.setRecords)
	targetSub.Deliver(<-targetSub.Updates(), t.setTarget)
	t.recompute(ctx)
	close(t.ready)

	slog.InfoContext(ctx, "tracker started", "total_approved", t.Current().TotalApproved)

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-ledgerSub.Updates():
			if !ok {
				return closedErr(ctx, "ledger")
			}

			if ledgerSub.Deliver(u, t.setRecords) {
				t.recompute(ctx)
			}
		case u, ok := <-targetSub.Updates():
			if !ok {
				return closedErr(ctx, "target")
			}

			if targetSub.Deliver(u, t.setTarget) {
				t.recompute(ctx)
			}
		}
	}
}

func closedErr(ctx context.Context, source string) error {
	if ctx.Err() != nil {
		return nil
	}

	return fmt.Errorf("%s: %w", source, errSourceClosed)
}

func (t *Tracker) setRecords(records []*donation.Donation) {
	t.mu.Lock()
	t.records = records
	t.mu.Unlock()
}

func (t *Tracker) setTarget(amount int64) {
	t.mu.Lock()
	t.target = amount
	t.mu.Unlock()
}

func (t *Tracker) recompute(ctx context.Context) {
	t.mu.Lock()
	t.current = Compute(t.records, t.target)
	t.mu.Unlock()

	if err := t.hub.Publish(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to publish snapshot", "error", err)
	}
}
