// Package jobs hosts the background maintenance work that keeps campaign
// lifecycle state honest without an operator clicking through the dashboard.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
	"streamlane/internal/metrics"
)

// Sweeper completes active campaigns whose observed streams have reached the
// goal or whose scheduled run has elapsed. It never touches plans or the
// weekly-update log.
type Sweeper struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	cron   *cron.Cron
}

// NewSweeper creates a sweeper around the given use case.
func NewSweeper(svc port.CampaignUseCase, logger *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, logger: logger, cron: cron.New()}
}

// Start registers the sweep on the given cron schedule and starts the
// scheduler. The returned error only reflects a bad schedule expression.
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop shuts the scheduler down and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep runs one pass over active campaigns. Failures on individual
// campaigns are logged and skipped so one bad row cannot stall the rest.
func (s *Sweeper) Sweep(ctx context.Context) {
	campaigns, err := s.svc.ListCampaigns(ctx, domain.StatusActive)
	if err != nil {
		s.logger.Error("sweep: list campaigns", slog.Any("error", err))
		return
	}
	now := time.Now().UTC()
	for _, c := range campaigns {
		done, err := s.shouldComplete(ctx, &c, now)
		if err != nil {
			s.logger.Error("sweep: inspect campaign", slog.String("campaign", c.ID), slog.Any("error", err))
			continue
		}
		if !done {
			continue
		}
		if err := s.svc.UpdateStatus(ctx, c.ID, domain.StatusCompleted); err != nil {
			s.logger.Error("sweep: complete campaign", slog.String("campaign", c.ID), slog.Any("error", err))
			continue
		}
		metrics.SweptCampaigns.Inc()
		s.logger.Info("campaign completed by sweeper", slog.String("campaign", c.ID))
	}
}

func (s *Sweeper) shouldComplete(ctx context.Context, c *domain.Campaign, now time.Time) (bool, error) {
	if c.StartDate != nil {
		end := c.StartDate.AddDate(0, 0, c.DurationDays)
		if now.After(end) {
			return true, nil
		}
	}
	rep, err := s.svc.GetReport(ctx, c.ID)
	if err != nil {
		return false, err
	}
	return rep.ActualStreams >= c.StreamGoal, nil
}
