package target

import "time"

// Config is the campaign's fundraising goal. There is exactly one per
// deployment.
type Config struct {
	Amount    int64 // Rupiah
	UpdatedAt time.Time
}
