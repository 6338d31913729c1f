package domain

import "time"

// Vendor owns playlists and the capacity they may contribute.
type Vendor struct {
	ID                     string
	Name                   string
	MaxDailyStreams        int64 // hard ceiling across all of the vendor's playlists
	MaxConcurrentCampaigns int   // active allocations the vendor may hold at once
	CostPer1kStreamsCents  *int64
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
