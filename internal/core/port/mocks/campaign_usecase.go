package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
)

// CampaignUseCase is a mock implementation of port.CampaignUseCase.
type CampaignUseCase struct {
	mock.Mock
}

// NewCampaignUseCase returns a mock whose expectations are asserted when the
// test finishes.
func NewCampaignUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *CampaignUseCase {
	m := &CampaignUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CampaignUseCase) CreateCampaign(ctx context.Context, req port.CreateCampaignReq) (*domain.Campaign, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *CampaignUseCase) BuildCampaign(ctx context.Context, campaignID string, vendorCaps map[string]int64) (*port.BuildResp, error) {
	args := m.Called(ctx, campaignID, vendorCaps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.BuildResp), args.Error(1)
}

func (m *CampaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *CampaignUseCase) ListCampaigns(ctx context.Context, status string) ([]domain.Campaign, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *CampaignUseCase) UpdateStatus(ctx context.Context, campaignID, status string) error {
	return m.Called(ctx, campaignID, status).Error(0)
}

func (m *CampaignUseCase) RecordWeeklyUpdate(ctx context.Context, req port.WeeklyUpdateReq) (*domain.WeeklyUpdate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyUpdate), args.Error(1)
}

func (m *CampaignUseCase) ListWeeklyUpdates(ctx context.Context, campaignID string) ([]domain.WeeklyUpdate, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyUpdate), args.Error(1)
}

func (m *CampaignUseCase) GetReport(ctx context.Context, campaignID string) (*port.Report, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Report), args.Error(1)
}
