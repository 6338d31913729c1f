package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"streamlane/internal/core/allocation"
	"streamlane/internal/core/domain"
	"streamlane/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Allocation plans are stored normalized in campaign_allocations
// and folded back into the campaign's map shape on read, so untyped JSON
// never reaches the engine.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// ListCandidates returns playlists whose genre set overlaps the requested
// genres, joined with their active vendors. Vendors already carrying their
// maximum number of concurrent campaigns are excluded from the pool.
func (r *CampaignRepository) ListCandidates(ctx context.Context, genres []string) ([]port.Candidate, error) {
	query := `
        SELECT
            p.id,
            p.vendor_id,
            p.name,
            p.genres,
            p.avg_daily_streams,
            p.follower_count,
            p.created_at,
            p.updated_at,
            v.id,
            v.name,
            v.max_daily_streams,
            v.max_concurrent_campaigns,
            v.cost_per_1k_streams,
            v.is_active,
            v.created_at,
            v.updated_at
        FROM playlists p
        JOIN vendors v ON p.vendor_id = v.id
        WHERE v.is_active
          AND p.avg_daily_streams > 0
          AND p.genres && $1
          AND (
              SELECT count(DISTINCT ca.campaign_id)
              FROM campaign_allocations ca
              JOIN campaigns c ON c.id = ca.campaign_id
              WHERE ca.vendor_id = v.id
                AND c.status IN ('built', 'unreleased', 'active')
          ) < v.max_concurrent_campaigns
        ORDER BY p.id`
	rows, err := r.pool.Query(ctx, query, genres)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.Candidate, error) {
		var c port.Candidate
		err := row.Scan(
			&c.Playlist.ID,
			&c.Playlist.VendorID,
			&c.Playlist.Name,
			&c.Playlist.Genres,
			&c.Playlist.AvgDailyStreams,
			&c.Playlist.FollowerCount,
			&c.Playlist.CreatedAt,
			&c.Playlist.UpdatedAt,
			&c.Vendor.ID,
			&c.Vendor.Name,
			&c.Vendor.MaxDailyStreams,
			&c.Vendor.MaxConcurrentCampaigns,
			&c.Vendor.CostPer1kStreamsCents,
			&c.Vendor.IsActive,
			&c.Vendor.CreatedAt,
			&c.Vendor.UpdatedAt,
		)
		return c, err
	})
}

// CreateCampaign inserts a new draft campaign.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
        (id, name, status, stream_goal, duration_days, sub_genre, music_genres, budget, projected_streams, start_date, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.Name, c.Status, c.StreamGoal, c.DurationDays, c.SubGenre, c.MusicGenres, c.BudgetCents, c.ProjectedStreams, c.StartDate, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetCampaign returns a campaign with its allocation rows folded back into
// SelectedPlaylists and VendorAllocations, or port.ErrNotFound.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.pool.QueryRow(ctx, `SELECT id, name, status, stream_goal, duration_days, sub_genre, music_genres, budget, projected_streams, start_date, created_at, updated_at
        FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Status, &c.StreamGoal, &c.DurationDays, &c.SubGenre, &c.MusicGenres, &c.BudgetCents, &c.ProjectedStreams, &c.StartDate, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT playlist_id, vendor_id, streams
        FROM campaign_allocations WHERE campaign_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (allocation.Entry, error) {
		var e allocation.Entry
		err := row.Scan(&e.PlaylistID, &e.VendorID, &e.Streams)
		return e, err
	})
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		plan := allocation.Plan{Entries: entries}
		c.SelectedPlaylists = plan.PlaylistIDs()
		c.VendorAllocations = plan.VendorTotals()
	}
	return &c, nil
}

// ListCampaigns returns campaigns ordered by creation time, newest first.
// Allocation rows are not loaded for listings; use GetCampaign for the full
// record.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, status string) ([]domain.Campaign, error) {
	query := `SELECT id, name, status, stream_goal, duration_days, sub_genre, music_genres, budget, projected_streams, start_date, created_at, updated_at
        FROM campaigns`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.Name, &c.Status, &c.StreamGoal, &c.DurationDays, &c.SubGenre, &c.MusicGenres, &c.BudgetCents, &c.ProjectedStreams, &c.StartDate, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}

// SavePlan replaces a campaign's allocation rows and projected total in a
// serializable transaction, moving the campaign to the given status.
func (r *CampaignRepository) SavePlan(ctx context.Context, campaignID string, plan allocation.Plan, status string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `UPDATE campaigns SET projected_streams = $1, status = $2, updated_at = now() WHERE id = $3`,
		plan.Total, status, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("campaign %s: %w", campaignID, port.ErrNotFound)
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM campaign_allocations WHERE campaign_id = $1`, campaignID); err != nil {
		return err
	}
	for i, e := range plan.Entries {
		if _, err = tx.Exec(ctx, `INSERT INTO campaign_allocations (campaign_id, playlist_id, vendor_id, streams, position)
            VALUES ($1,$2,$3,$4,$5)`, campaignID, e.PlaylistID, e.VendorID, e.Streams, i); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus moves a campaign to the given status.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, campaignID, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", campaignID, port.ErrNotFound)
	}
	return nil
}

// AppendWeeklyUpdate stores an observed-performance record.
func (r *CampaignRepository) AppendWeeklyUpdate(ctx context.Context, u *domain.WeeklyUpdate) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO weekly_updates (id, campaign_id, streams, imported_on, notes)
        VALUES ($1,$2,$3,$4,$5)`, u.ID, u.CampaignID, u.Streams, u.ImportedOn, u.Notes)
	return err
}

// ListWeeklyUpdates returns a campaign's updates, oldest first.
func (r *CampaignRepository) ListWeeklyUpdates(ctx context.Context, campaignID string) ([]domain.WeeklyUpdate, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, campaign_id, streams, imported_on, notes
        FROM weekly_updates WHERE campaign_id = $1 ORDER BY imported_on`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WeeklyUpdate, error) {
		var u domain.WeeklyUpdate
		err := row.Scan(&u.ID, &u.CampaignID, &u.Streams, &u.ImportedOn, &u.Notes)
		return u, err
	})
}

// SumWeeklyStreams returns the total observed streams for a campaign.
func (r *CampaignRepository) SumWeeklyStreams(ctx context.Context, campaignID string) (int64, error) {
	var sum int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(sum(streams), 0) FROM weekly_updates WHERE campaign_id = $1`, campaignID).Scan(&sum)
	return sum, err
}

// GetVendor returns a vendor by id, or port.ErrNotFound.
func (r *CampaignRepository) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.pool.QueryRow(ctx, `SELECT id, name, max_daily_streams, max_concurrent_campaigns, cost_per_1k_streams, is_active, created_at, updated_at
        FROM vendors WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.MaxDailyStreams, &v.MaxConcurrentCampaigns, &v.CostPer1kStreamsCents, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("vendor %s: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
