package port

import (
	"context"
	"errors"

	"streamlane/internal/core/allocation"
	"streamlane/internal/core/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CampaignRepository defines the persistence layer for the campaign engine.
// It is an outbound port in hexagonal architecture. Implementations must be
// concurrency-safe and write allocation plans atomically.
type CampaignRepository interface {
	// ListCandidates returns playlists matching any of the given genres,
	// joined with their vendors. Inactive vendors and vendors already at
	// their concurrent-campaign limit are excluded.
	ListCandidates(ctx context.Context, genres []string) ([]Candidate, error)

	// CreateCampaign inserts a new draft campaign.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// GetCampaign returns a campaign by id, or ErrNotFound.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns returns campaigns, optionally filtered by status.
	ListCampaigns(ctx context.Context, status string) ([]domain.Campaign, error)

	// SavePlan replaces a campaign's allocation rows, selected playlists
	// and projected-stream total in one transaction, moving the campaign
	// to the given status.
	SavePlan(ctx context.Context, campaignID string, plan allocation.Plan, status string) error
	// UpdateStatus moves a campaign to the given status.
	UpdateStatus(ctx context.Context, campaignID, status string) error

	// AppendWeeklyUpdate stores an observed-performance record. The log is
	// append-only; planned allocations are never touched.
	AppendWeeklyUpdate(ctx context.Context, u *domain.WeeklyUpdate) error
	// ListWeeklyUpdates returns a campaign's updates, oldest first.
	ListWeeklyUpdates(ctx context.Context, campaignID string) ([]domain.WeeklyUpdate, error)
	// SumWeeklyStreams returns the total observed streams for a campaign.
	SumWeeklyStreams(ctx context.Context, campaignID string) (int64, error)

	// GetVendor returns a vendor by id, or ErrNotFound.
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
}

// Candidate pairs an eligible playlist with its owning vendor for the
// allocation engine.
type Candidate struct {
	Playlist domain.Playlist
	Vendor   domain.Vendor
}
