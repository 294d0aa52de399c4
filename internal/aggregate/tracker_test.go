package aggregate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/donation"
	"github.com/rqsn/donasi/internal/memstore"
	"github.com/rqsn/donasi/internal/target"
	"github.com/rqsn/donasi/internal/watch"
)

func waitFor(t *testing.T, sub *watch.Subscription[aggregate.Snapshot], cond func(aggregate.Snapshot) bool) aggregate.Snapshot {
	t.Helper()

	timeout := time.After(5 * time.Second)

	for {
		select {
		case u, ok := <-sub.Updates():
			require.True(t, ok, "subscription closed")

			if cond(u.Value) {
				return u.Value
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestTracker_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger := donation.NewService(memstore.NewDonationStore())
	targets := target.NewService(memstore.NewTargetStore())

	tracker := aggregate.NewTracker(ledger, targets)

	done := make(chan error, 1)
	go func() { done <- tracker.Run(ctx) }()

	select {
	case <-tracker.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("tracker never became ready")
	}

	sub, err := tracker.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	small, err := ledger.Create(ctx, donation.CreateParams{
		DonorName: "Ahmad",
		Phone:     "+6281234567890",
		Amount:    50_000,
		Method:    donation.MethodQRIS,
	})
	require.NoError(t, err)
	assert.Equal(t, donation.StatusApproved, small.Status)

	large, err := ledger.Create(ctx, donation.CreateParams{
		DonorName: "Siti",
		Phone:     "+6281234567891",
		Amount:    2_000_000,
		Method:    donation.MethodTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, donation.StatusPending, large.Status)

	require.NoError(t, targets.Set(ctx, 10_000_000))

	snap := waitFor(t, sub, func(s aggregate.Snapshot) bool {
		return s.Target == 10_000_000 && s.PendingCount == 1
	})
	assert.Equal(t, int64(50_000), snap.TotalApproved)
	assert.InDelta(t, 0.5, snap.ProgressPercent, 1e-9)

	require.NoError(t, ledger.Approve(ctx, large.ID))

	snap = waitFor(t, sub, func(s aggregate.Snapshot) bool {
		return s.PendingCount == 0
	})
	assert.Equal(t, int64(2_050_000), snap.TotalApproved)
	assert.Equal(t, 2, snap.ApprovedCount)
	assert.InDelta(t, 20.5, snap.ProgressPercent, 1e-9)
	assert.Equal(t, snap, tracker.Current())

	require.NoError(t, ledger.Reject(ctx, small.ID))

	snap = waitFor(t, sub, func(s aggregate.Snapshot) bool {
		return s.ApprovedCount == 1
	})
	assert.Equal(t, int64(2_000_000), snap.TotalApproved)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("tracker did not stop")
	}
}
