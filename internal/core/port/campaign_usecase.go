package port

import (
	"context"
	"time"

	"streamlane/internal/core/allocation"
	"streamlane/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the campaign
// engine. This interface represents the primary port into the application
// domain. Mock implementations can be written against this interface for
// testing.
type CampaignUseCase interface {
	// CreateCampaign validates the request and stores a new draft.
	CreateCampaign(ctx context.Context, req CreateCampaignReq) (*domain.Campaign, error)

	// BuildCampaign runs the allocation engine over the current candidate
	// pool and persists the resulting plan on the campaign. Rebuilding a
	// built campaign replaces its plan. A plan that falls short of the
	// goal is returned normally with the shortfall set; only malformed
	// campaigns and repository failures produce errors.
	BuildCampaign(ctx context.Context, campaignID string, vendorCaps map[string]int64) (*BuildResp, error)

	// GetCampaign returns a campaign by id, or ErrNotFound.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns returns campaigns, optionally filtered by status.
	ListCampaigns(ctx context.Context, status string) ([]domain.Campaign, error)

	// UpdateStatus applies a lifecycle transition, rejecting illegal ones
	// with ErrInvalidTransition.
	UpdateStatus(ctx context.Context, campaignID, status string) error

	// RecordWeeklyUpdate appends an observed stream count to the
	// campaign's performance log.
	RecordWeeklyUpdate(ctx context.Context, req WeeklyUpdateReq) (*domain.WeeklyUpdate, error)
	// ListWeeklyUpdates returns a campaign's performance log, oldest first.
	ListWeeklyUpdates(ctx context.Context, campaignID string) ([]domain.WeeklyUpdate, error)

	// GetReport derives progress, commission, cost and ROI figures from
	// the stored plan and the weekly-update log.
	GetReport(ctx context.Context, campaignID string) (*Report, error)
}

// CreateCampaignReq carries the operator's input for a new draft campaign.
type CreateCampaignReq struct {
	Name         string
	StreamGoal   int64
	DurationDays int
	SubGenre     string
	MusicGenres  []string
	BudgetCents  int64
	StartDate    *time.Time
}

// BuildResp is returned by BuildCampaign: the computed plan plus the
// per-vendor rollup that was persisted on the campaign.
type BuildResp struct {
	CampaignID        string
	Plan              allocation.Plan
	VendorAllocations map[string]domain.VendorAllocation
}

// WeeklyUpdateReq is an observed-performance row to append.
type WeeklyUpdateReq struct {
	CampaignID string
	Streams    int64
	ImportedOn time.Time
	Notes      string
}

// Report bundles the derived metrics for one campaign. Money figures are in
// cents; CostPerStream is cents per stream.
type Report struct {
	CampaignID       string
	Status           string
	StreamGoal       int64
	ProjectedStreams int64
	ActualStreams    int64
	RemainingStreams int64
	ProgressPct      int
	CommissionCents  int64
	TotalCostCents   int64
	CostPerStream    float64
	ROIPct           float64
	VendorCosts      map[string]int64
}
