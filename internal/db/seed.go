package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var seedGenres = [][]string{
	{"indie", "indie pop"},
	{"lofi", "chillhop"},
	{"house", "deep house"},
	{"hip hop", "rap"},
	{"techno", "electronic"},
}

// Seed inserts demo vendors, playlists and a couple of draft campaigns into
// the database. Inserts are idempotent via ON CONFLICT DO NOTHING.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 1; i <= 5; i++ {
		id := uuid.NewString()
		name := fmt.Sprintf("Vendor %d", i)
		maxDaily := int64(5000 + r.Intn(20)*1000)
		costPer1k := int64(150 + r.Intn(8)*25) // 1.50 - 3.25 per 1k streams
		_, err := db.Exec(ctx, `INSERT INTO vendors
    (id, name, max_daily_streams, max_concurrent_campaigns, cost_per_1k_streams, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,now(),now()) ON CONFLICT DO NOTHING`,
			id, name, maxDaily, 2+r.Intn(3), costPer1k, true)
		if err != nil {
			return err
		}

		// playlists for the vendor
		for j := 1; j <= 4; j++ {
			genres := seedGenres[r.Intn(len(seedGenres))]
			followers := int64(1000 + r.Intn(200)*500)
			_, err = db.Exec(ctx, `INSERT INTO playlists
    (id, vendor_id, name, genres, avg_daily_streams, follower_count, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,now(),now()) ON CONFLICT DO NOTHING`,
				uuid.NewString(), id, fmt.Sprintf("%s Playlist %d", name, j),
				genres, int64(500+r.Intn(10)*500), followers)
			if err != nil {
				return err
			}
		}
	}

	// draft campaigns ready to build
	for i := 1; i <= 3; i++ {
		genres := seedGenres[r.Intn(len(seedGenres))]
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, name, status, stream_goal, duration_days, sub_genre, music_genres, budget, projected_streams, created_at, updated_at)
VALUES ($1,$2,'draft',$3,$4,$5,$6,$7,0,now(),now()) ON CONFLICT DO NOTHING`,
			uuid.NewString(), fmt.Sprintf("Demo Campaign %d", i),
			int64(10000+r.Intn(10)*5000), 7*(1+r.Intn(4)),
			genres[0], genres, int64(50000+r.Intn(10)*10000))
		if err != nil {
			return err
		}
	}
	return nil
}
