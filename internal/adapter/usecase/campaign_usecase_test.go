package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"streamlane/internal/core/allocation"
	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
	"streamlane/internal/core/port/mocks"
)

func draftCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:           "c1",
		Name:         "Summer Indie Push",
		Status:       domain.StatusDraft,
		StreamGoal:   50000,
		DurationDays: 7,
		SubGenre:     "indie",
		BudgetCents:  100000,
	}
}

// TestBuildCampaign ensures the usecase feeds the candidate pool through the
// engine and persists the resulting plan with the built status.
func TestBuildCampaign(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)

	c := draftCampaign()
	candidates := []port.Candidate{
		{
			Playlist: domain.Playlist{ID: "p1", VendorID: "v1", Genres: []string{"indie"}, AvgDailyStreams: 10000},
			Vendor:   domain.Vendor{ID: "v1", MaxDailyStreams: 20000, IsActive: true},
		},
		{
			Playlist: domain.Playlist{ID: "p2", VendorID: "v1", Genres: []string{"indie"}, AvgDailyStreams: 5000},
			Vendor:   domain.Vendor{ID: "v1", MaxDailyStreams: 20000, IsActive: true},
		},
		{
			Playlist: domain.Playlist{ID: "p3", VendorID: "v2", Genres: []string{"indie"}, AvgDailyStreams: 8000},
			Vendor:   domain.Vendor{ID: "v2", MaxDailyStreams: 10000, IsActive: true},
		},
	}

	repo.On("GetCampaign", mock.Anything, "c1").Return(c, nil)
	repo.On("ListCandidates", mock.Anything, []string{"indie"}).Return(candidates, nil)

	var saved allocation.Plan
	repo.On("SavePlan", mock.Anything, "c1", mock.AnythingOfType("allocation.Plan"), domain.StatusBuilt).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(allocation.Plan)
		}).
		Return(nil)

	svc := NewCampaignUseCase(repo)
	resp, err := svc.BuildCampaign(context.Background(), "c1", map[string]int64{"v1": 60000, "v2": 40000})
	if err != nil {
		t.Fatalf("BuildCampaign error: %v", err)
	}
	if resp.Plan.Total != 50000 || resp.Plan.Shortfall != 0 {
		t.Fatalf("expected full fill, got total %d shortfall %d", resp.Plan.Total, resp.Plan.Shortfall)
	}
	if saved.Total != resp.Plan.Total {
		t.Fatalf("persisted plan differs from returned plan")
	}
	if resp.VendorAllocations["v1"].Streams+resp.VendorAllocations["v2"].Streams != 50000 {
		t.Fatalf("vendor rollup does not sum to goal: %+v", resp.VendorAllocations)
	}
}

// TestBuildCampaignShortfall ensures an undersized candidate pool comes back
// as a partial plan, not an error.
func TestBuildCampaignShortfall(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)

	c := draftCampaign()
	repo.On("GetCampaign", mock.Anything, "c1").Return(c, nil)
	repo.On("ListCandidates", mock.Anything, []string{"indie"}).Return([]port.Candidate{
		{
			Playlist: domain.Playlist{ID: "p1", VendorID: "v1", Genres: []string{"indie"}, AvgDailyStreams: 100},
			Vendor:   domain.Vendor{ID: "v1", MaxDailyStreams: 100, IsActive: true},
		},
	}, nil)
	repo.On("SavePlan", mock.Anything, "c1", mock.AnythingOfType("allocation.Plan"), domain.StatusBuilt).Return(nil)

	svc := NewCampaignUseCase(repo)
	resp, err := svc.BuildCampaign(context.Background(), "c1", nil)
	if err != nil {
		t.Fatalf("BuildCampaign error: %v", err)
	}
	if resp.Plan.Total != 700 || resp.Plan.Shortfall != 49300 {
		t.Fatalf("unexpected plan: total %d shortfall %d", resp.Plan.Total, resp.Plan.Shortfall)
	}
}

func TestBuildCampaignWrongStatus(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)

	c := draftCampaign()
	c.Status = domain.StatusActive
	repo.On("GetCampaign", mock.Anything, "c1").Return(c, nil)

	svc := NewCampaignUseCase(repo)
	_, err := svc.BuildCampaign(context.Background(), "c1", nil)
	if !errors.Is(err, port.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)
	svc := NewCampaignUseCase(repo)

	cases := []port.CreateCampaignReq{
		{Name: "", StreamGoal: 1000, DurationDays: 7},
		{Name: "x", StreamGoal: 0, DurationDays: 7},
		{Name: "x", StreamGoal: 1000, DurationDays: 0},
		{Name: "x", StreamGoal: 1000, DurationDays: 7, BudgetCents: -1},
	}
	for _, req := range cases {
		if _, err := svc.CreateCampaign(context.Background(), req); !errors.Is(err, port.ErrInvalidRequest) {
			t.Fatalf("req %+v: expected ErrInvalidRequest, got %v", req, err)
		}
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)
	svc := NewCampaignUseCase(repo)

	c := draftCampaign()
	c.Status = domain.StatusBuilt
	repo.On("GetCampaign", mock.Anything, "c1").Return(c, nil)
	repo.On("UpdateStatus", mock.Anything, "c1", domain.StatusActive).Return(nil)

	if err := svc.UpdateStatus(context.Background(), "c1", domain.StatusActive); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	// built may not jump straight to completed
	if err := svc.UpdateStatus(context.Background(), "c1", domain.StatusCompleted); !errors.Is(err, port.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// built is only reachable through BuildCampaign
	if err := svc.UpdateStatus(context.Background(), "c1", domain.StatusBuilt); !errors.Is(err, port.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRecordWeeklyUpdateOnDraft(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)
	svc := NewCampaignUseCase(repo)

	repo.On("GetCampaign", mock.Anything, "c1").Return(draftCampaign(), nil)

	_, err := svc.RecordWeeklyUpdate(context.Background(), port.WeeklyUpdateReq{CampaignID: "c1", Streams: 500})
	if !errors.Is(err, port.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

// TestGetReport checks the derived metrics against the worked numbers: a
// 1000.00 budget owes a 200.00 commission, and 7500 of 10000 streams is 75%.
func TestGetReport(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)

	rate := int64(250) // 2.50 per 1k streams
	c := &domain.Campaign{
		ID:           "c1",
		Status:       domain.StatusActive,
		StreamGoal:   10000,
		DurationDays: 7,
		BudgetCents:  100000,
		VendorAllocations: map[string]domain.VendorAllocation{
			"v1": {Streams: 10000, Playlists: []string{"p1"}},
		},
		ProjectedStreams: 10000,
	}
	repo.On("GetCampaign", mock.Anything, "c1").Return(c, nil)
	repo.On("SumWeeklyStreams", mock.Anything, "c1").Return(int64(7500), nil)
	repo.On("GetVendor", mock.Anything, "v1").Return(&domain.Vendor{ID: "v1", CostPer1kStreamsCents: &rate}, nil)

	svc := NewCampaignUseCase(repo)
	rep, err := svc.GetReport(context.Background(), "c1")
	if err != nil {
		t.Fatalf("GetReport error: %v", err)
	}
	if rep.ProgressPct != 75 {
		t.Fatalf("progress: got %d, want 75", rep.ProgressPct)
	}
	if rep.CommissionCents != 20000 {
		t.Fatalf("commission: got %d, want 20000", rep.CommissionCents)
	}
	if rep.TotalCostCents != 2500 {
		t.Fatalf("total cost: got %d, want 2500", rep.TotalCostCents)
	}
	if rep.VendorCosts["v1"] != 2500 {
		t.Fatalf("vendor cost: got %d", rep.VendorCosts["v1"])
	}
	// roi = (100000 - 2500) / 2500 * 100 = 3900
	if rep.ROIPct != 3900 {
		t.Fatalf("roi: got %v, want 3900", rep.ROIPct)
	}
}

// TestConcurrentBuilds ensures the usecase holds no shared mutable state:
// parallel builds over a mocked repository never interfere.
func TestConcurrentBuilds(t *testing.T) {
	repo := mocks.NewCampaignRepository(t)

	c := draftCampaign()
	repo.On("GetCampaign", mock.Anything, "c1").Return(c, nil)
	repo.On("ListCandidates", mock.Anything, []string{"indie"}).Return([]port.Candidate{
		{
			Playlist: domain.Playlist{ID: "p1", VendorID: "v1", Genres: []string{"indie"}, AvgDailyStreams: 10000},
			Vendor:   domain.Vendor{ID: "v1", MaxDailyStreams: 20000, IsActive: true},
		},
	}, nil)
	repo.On("SavePlan", mock.Anything, "c1", mock.AnythingOfType("allocation.Plan"), domain.StatusBuilt).Return(nil)

	svc := NewCampaignUseCase(repo)

	wg := sync.WaitGroup{}
	count := 10
	results := make([]int64, count)
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(i int) {
			defer wg.Done()
			resp, err := svc.BuildCampaign(context.Background(), "c1", nil)
			if err != nil {
				t.Errorf("BuildCampaign error: %v", err)
				return
			}
			results[i] = resp.Plan.Total
		}(i)
	}
	wg.Wait()

	for i, total := range results {
		if total != 50000 {
			t.Fatalf("run %d: got total %d, want 50000", i, total)
		}
	}
}
