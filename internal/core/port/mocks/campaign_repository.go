// Package mocks provides testify mocks for the core ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"streamlane/internal/core/allocation"
	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
)

// CampaignRepository is a mock implementation of port.CampaignRepository.
type CampaignRepository struct {
	mock.Mock
}

// NewCampaignRepository returns a mock whose expectations are asserted when
// the test finishes.
func NewCampaignRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CampaignRepository {
	m := &CampaignRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CampaignRepository) ListCandidates(ctx context.Context, genres []string) ([]port.Candidate, error) {
	args := m.Called(ctx, genres)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.Candidate), args.Error(1)
}

func (m *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *CampaignRepository) ListCampaigns(ctx context.Context, status string) ([]domain.Campaign, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *CampaignRepository) SavePlan(ctx context.Context, campaignID string, plan allocation.Plan, status string) error {
	return m.Called(ctx, campaignID, plan, status).Error(0)
}

func (m *CampaignRepository) UpdateStatus(ctx context.Context, campaignID, status string) error {
	return m.Called(ctx, campaignID, status).Error(0)
}

func (m *CampaignRepository) AppendWeeklyUpdate(ctx context.Context, u *domain.WeeklyUpdate) error {
	return m.Called(ctx, u).Error(0)
}

func (m *CampaignRepository) ListWeeklyUpdates(ctx context.Context, campaignID string) ([]domain.WeeklyUpdate, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyUpdate), args.Error(1)
}

func (m *CampaignRepository) SumWeeklyStreams(ctx context.Context, campaignID string) (int64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CampaignRepository) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}
