package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rqsn/donasi/internal/aggregate"
	"github.com/rqsn/donasi/internal/donation"
)

func rec(amount int64, status donation.Status) *donation.Donation {
	return &donation.Donation{Amount: amount, Status: status}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		records      []*donation.Donation
		target       int64
		wantTotal    int64
		wantPending  int
		wantApproved int
		wantProgress float64
	}{
		{
			name:         "Empty",
			target:       10_000_000,
			wantProgress: 0,
		},
		{
			name: "OnlyApprovedCount",
			records: []*donation.Donation{
				rec(50_000, donation.StatusApproved),
				rec(2_000_000, donation.StatusPending),
				rec(1_000_000, donation.StatusApproved),
			},
			target:       10_000_000,
			wantTotal:    1_050_000,
			wantPending:  1,
			wantApproved: 2,
			wantProgress: 10.5,
		},
		{
			name: "ZeroTarget",
			records: []*donation.Donation{
				rec(50_000, donation.StatusApproved),
			},
			wantTotal:    50_000,
			wantApproved: 1,
			wantProgress: 0,
		},
		{
			name: "ClampedAtHundred",
			records: []*donation.Donation{
				rec(12_000_000, donation.StatusApproved),
			},
			target:       10_000_000,
			wantTotal:    12_000_000,
			wantApproved: 1,
			wantProgress: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregate.Compute(tt.records, tt.target)

			assert.Equal(t, tt.wantTotal, got.TotalApproved)
			assert.Equal(t, tt.wantPending, got.PendingCount)
			assert.Equal(t, tt.wantApproved, got.ApprovedCount)
			assert.Equal(t, tt.target, got.Target)
			assert.InDelta(t, tt.wantProgress, got.ProgressPercent, 1e-9)
			assert.GreaterOrEqual(t, got.ProgressPercent, 0.0)
			assert.LessOrEqual(t, got.ProgressPercent, 100.0)

			assert.Equal(t, []aggregate.Share{
				{Status: donation.StatusApproved, Count: tt.wantApproved},
				{Status: donation.StatusPending, Count: tt.wantPending},
			}, got.Distribution)
		})
	}
}

func TestCompute_TotalDropsAfterRemoval(t *testing.T) {
	records := []*donation.Donation{
		rec(50_000, donation.StatusApproved),
		rec(75_000, donation.StatusApproved),
	}

	before := aggregate.Compute(records, 0)
	after := aggregate.Compute(records[:1], 0)

	assert.Equal(t, int64(125_000), before.TotalApproved)
	assert.Equal(t, int64(50_000), after.TotalApproved)
}
