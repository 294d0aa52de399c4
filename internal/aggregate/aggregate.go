// Package aggregate derives the campaign's financial picture from the ledger
// and the target.
package aggregate

import "github.com/rqsn/donasi/internal/donation"

// Share is one slice of the status distribution chart.
type Share struct {
	Status donation.Status `json:"status"`
	Count  int             `json:"count"`
}

type Snapshot struct {
	TotalApproved   int64   `json:"total_approved"`
	PendingCount    int     `json:"pending_count"`
	ApprovedCount   int     `json:"approved_count"`
	Target          int64   `json:"target"`
	ProgressPercent float64 `json:"progress_percent"`
	Distribution    []Share `json:"distribution"`
}

// Compute recomputes the snapshot from scratch. Only approved donations count
// toward the total. Progress is clamped to [0, 100] and is 0 without a target.
//
// Recomputing is linear in the ledger size. Should that matter, Tracker can
// keep running sums instead, adjusting them by the delta between consecutive
// ledger snapshots; Compute stays the reference the sums are checked against.
func Compute(records []*donation.Donation, target int64) Snapshot {
	s := Snapshot{Target: target}

	for _, d := range records {
		switch d.Status {
		case donation.StatusApproved:
			s.TotalApproved += d.Amount
			s.ApprovedCount++
		case donation.StatusPending:
			s.PendingCount++
		}
	}

	s.ProgressPercent = Progress(s.TotalApproved, target)
	s.Distribution = []Share{
		{Status: donation.StatusApproved, Count: s.ApprovedCount},
		{Status: donation.StatusPending, Count: s.PendingCount},
	}

	return s
}

// Progress returns total as a percentage of target, clamped to [0, 100].
func Progress(total, target int64) float64 {
	if target <= 0 || total <= 0 {
		return 0
	}

	pct := float64(total) * 100 / float64(target)

	return min(pct, 100)
}
