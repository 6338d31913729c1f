package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"streamlane/internal/core/allocation"
	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
	"streamlane/internal/core/report"
)

// CampaignUseCase provides business logic for campaign building and
// reporting. It orchestrates the allocation engine and the repository to
// implement the CampaignUseCase interface.
type CampaignUseCase struct {
	repo port.CampaignRepository
}

// NewCampaignUseCase creates a new usecase with the provided repository.
func NewCampaignUseCase(repo port.CampaignRepository) *CampaignUseCase {
	return &CampaignUseCase{repo: repo}
}

// CreateCampaign validates the request and stores a new draft campaign.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", port.ErrInvalidRequest)
	}
	if req.StreamGoal <= 0 {
		return nil, fmt.Errorf("%w: stream goal must be positive, got %d", port.ErrInvalidRequest, req.StreamGoal)
	}
	if req.DurationDays <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d days", port.ErrInvalidRequest, req.DurationDays)
	}
	if req.BudgetCents < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", port.ErrInvalidRequest)
	}
	c := &domain.Campaign{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Status:       domain.StatusDraft,
		StreamGoal:   req.StreamGoal,
		DurationDays: req.DurationDays,
		SubGenre:     req.SubGenre,
		MusicGenres:  req.MusicGenres,
		BudgetCents:  req.BudgetCents,
		StartDate:    req.StartDate,
	}
	if err := u.repo.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// BuildCampaign runs the allocation engine over the current candidate pool
// and persists the plan. Drafts move to built; built campaigns may be
// rebuilt, which replaces the previous plan wholesale.
func (u *CampaignUseCase) BuildCampaign(ctx context.Context, campaignID string, vendorCaps map[string]int64) (*port.BuildResp, error) {
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.StatusDraft && c.Status != domain.StatusBuilt {
		return nil, fmt.Errorf("%w: cannot build a %s campaign", port.ErrInvalidTransition, c.Status)
	}

	genres := c.MusicGenres
	if c.SubGenre != "" {
		genres = append([]string{c.SubGenre}, genres...)
	}
	candidates, err := u.repo.ListCandidates(ctx, genres)
	if err != nil {
		return nil, err
	}

	playlists := make([]domain.Playlist, 0, len(candidates))
	vendorSeen := make(map[string]bool, len(candidates))
	vendors := make([]domain.Vendor, 0, len(candidates))
	for _, cand := range candidates {
		playlists = append(playlists, cand.Playlist)
		if !vendorSeen[cand.Vendor.ID] {
			vendorSeen[cand.Vendor.ID] = true
			vendors = append(vendors, cand.Vendor)
		}
	}

	plan, err := allocation.Allocate(allocation.Input{
		Playlists:    playlists,
		Vendors:      vendors,
		Goal:         c.StreamGoal,
		VendorCaps:   vendorCaps,
		SubGenre:     c.SubGenre,
		MusicGenres:  c.MusicGenres,
		DurationDays: c.DurationDays,
	})
	if err != nil {
		return nil, err
	}

	if err = u.repo.SavePlan(ctx, c.ID, plan, domain.StatusBuilt); err != nil {
		return nil, err
	}
	return &port.BuildResp{
		CampaignID:        c.ID,
		Plan:              plan,
		VendorAllocations: plan.VendorTotals(),
	}, nil
}

// GetCampaign returns a campaign by id.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, id)
}

// ListCampaigns returns campaigns, optionally filtered by status.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, status string) ([]domain.Campaign, error) {
	return u.repo.ListCampaigns(ctx, status)
}

// UpdateStatus applies a lifecycle transition. Moving into built is reserved
// for BuildCampaign since it must come with a plan.
func (u *CampaignUseCase) UpdateStatus(ctx context.Context, campaignID, status string) error {
	if status == domain.StatusBuilt {
		return fmt.Errorf("%w: campaigns become built by building a plan", port.ErrInvalidTransition)
	}
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if !domain.ValidTransition(c.Status, status) {
		return fmt.Errorf("%w: %s -> %s", port.ErrInvalidTransition, c.Status, status)
	}
	return u.repo.UpdateStatus(ctx, campaignID, status)
}

// RecordWeeklyUpdate appends an observed stream count to the campaign's
// performance log. Draft campaigns have no plan to report against.
func (u *CampaignUseCase) RecordWeeklyUpdate(ctx context.Context, req port.WeeklyUpdateReq) (*domain.WeeklyUpdate, error) {
	if req.Streams < 0 {
		return nil, fmt.Errorf("%w: streams must not be negative", port.ErrInvalidRequest)
	}
	c, err := u.repo.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.StatusDraft {
		return nil, fmt.Errorf("%w: draft campaigns cannot receive updates", port.ErrInvalidTransition)
	}
	upd := &domain.WeeklyUpdate{
		ID:         uuid.NewString(),
		CampaignID: c.ID,
		Streams:    req.Streams,
		ImportedOn: req.ImportedOn,
		Notes:      req.Notes,
	}
	if upd.ImportedOn.IsZero() {
		upd.ImportedOn = time.Now().UTC()
	}
	if err = u.repo.AppendWeeklyUpdate(ctx, upd); err != nil {
		return nil, err
	}
	return upd, nil
}

// ListWeeklyUpdates returns a campaign's performance log, oldest first.
func (u *CampaignUseCase) ListWeeklyUpdates(ctx context.Context, campaignID string) ([]domain.WeeklyUpdate, error) {
	if _, err := u.repo.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	return u.repo.ListWeeklyUpdates(ctx, campaignID)
}

// GetReport derives progress, commission, cost and ROI figures from the
// stored plan and the weekly-update log.
func (u *CampaignUseCase) GetReport(ctx context.Context, campaignID string) (*port.Report, error) {
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	actual, err := u.repo.SumWeeklyStreams(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	vendorCosts := make(map[string]int64, len(c.VendorAllocations))
	var totalCost int64
	for vendorID, va := range c.VendorAllocations {
		v, err := u.repo.GetVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		cost := report.VendorCost(va.Streams, v.CostPer1kStreamsCents)
		vendorCosts[vendorID] = cost
		totalCost += cost
	}

	remaining := c.StreamGoal - actual
	return &port.Report{
		CampaignID:       c.ID,
		Status:           c.Status,
		StreamGoal:       c.StreamGoal,
		ProjectedStreams: c.ProjectedStreams,
		ActualStreams:    actual,
		RemainingStreams: remaining,
		ProgressPct:      report.Progress(c.StreamGoal, remaining),
		CommissionCents:  report.Commission(c.BudgetCents),
		TotalCostCents:   totalCost,
		CostPerStream:    report.CostPerStream(totalCost, actual),
		ROIPct:           report.ROI(c.BudgetCents, totalCost),
		VendorCosts:      vendorCosts,
	}, nil
}
