package domain

import "time"

// WeeklyUpdate is an observed-performance record for a campaign. Updates are
// append-only and never touch the planned allocation.
type WeeklyUpdate struct {
	ID         string
	CampaignID string
	Streams    int64
	ImportedOn time.Time
	Notes      string
}
