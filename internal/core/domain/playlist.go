package domain

import "time"

// Playlist is a candidate allocation target owned by exactly one vendor.
type Playlist struct {
	ID              string
	VendorID        string
	Name            string
	Genres          []string // up to 4 tags, non-empty when used for matching
	AvgDailyStreams int64    // streams per day the playlist can deliver
	FollowerCount   *int64   // informational only
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MatchesGenre reports whether the playlist's genre set intersects the
// requested filter. An empty filter matches nothing; eligibility always
// requires an explicit genre.
func (p Playlist) MatchesGenre(genres []string) bool {
	for _, want := range genres {
		for _, g := range p.Genres {
			if g == want {
				return true
			}
		}
	}
	return false
}
