// Package allocation decides how a campaign's stream goal is split across
// candidate playlists. The engine is a pure function: it never touches the
// database, never mutates its input and always produces the same plan for
// the same input.
package allocation

import (
	"errors"
	"fmt"
	"sort"

	"streamlane/internal/core/domain"
)

// ErrInvalidInput is returned when the request itself is malformed. Capacity
// shortfalls are not errors; they come back in the plan.
var ErrInvalidInput = errors.New("allocation: invalid input")

// Input bundles everything the engine needs to build a plan.
type Input struct {
	Playlists    []domain.Playlist
	Vendors      []domain.Vendor
	Goal         int64
	VendorCaps   map[string]int64 // per-campaign negotiated vendor limits, optional per vendor
	SubGenre     string
	MusicGenres  []string
	DurationDays int
}

// Entry is the stream count assigned to one playlist.
type Entry struct {
	PlaylistID string `json:"playlist_id"`
	VendorID   string `json:"vendor_id"`
	Streams    int64  `json:"allocation"`
}

// Plan is the engine's output: per-playlist assignments plus how much of the
// goal could not be covered. Shortfall > 0 is a normal outcome the caller is
// expected to surface, not an error.
type Plan struct {
	Entries   []Entry
	Total     int64
	Shortfall int64
}

// VendorTotals folds the plan into per-vendor stream counts and playlist
// lists, the shape persisted on the campaign record.
func (p Plan) VendorTotals() map[string]domain.VendorAllocation {
	out := make(map[string]domain.VendorAllocation, len(p.Entries))
	for _, e := range p.Entries {
		va := out[e.VendorID]
		va.Streams += e.Streams
		va.Playlists = append(va.Playlists, e.PlaylistID)
		out[e.VendorID] = va
	}
	return out
}

// PlaylistIDs returns the ids of every playlist that received streams, in
// plan order.
func (p Plan) PlaylistIDs() []string {
	ids := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		ids[i] = e.PlaylistID
	}
	return ids
}

type candidate struct {
	playlistID string
	vendorID   string
	ceiling    int64 // avg daily streams x duration
}

// Allocate builds a stream plan for the given input.
//
// Eligibility: a playlist qualifies when its genre set intersects the
// requested genres, its vendor is active and it has daily capacity. Each
// playlist may carry at most avg_daily_streams x duration_days; each vendor
// may carry at most min(its negotiated cap, max_daily_streams x
// duration_days) across all its playlists.
//
// Fill order is deterministic: candidates sorted by descending ceiling, ties
// broken by ascending playlist id, each assigned the lesser of its remaining
// ceiling and the unmet goal. Filtering down to zero candidates returns an
// empty plan with Shortfall == Goal rather than an error, so callers can
// present "no matching playlists" without treating it as a fault.
func Allocate(in Input) (Plan, error) {
	if in.Goal <= 0 {
		return Plan{}, fmt.Errorf("%w: goal must be positive, got %d", ErrInvalidInput, in.Goal)
	}
	if in.DurationDays <= 0 {
		return Plan{}, fmt.Errorf("%w: duration must be positive, got %d days", ErrInvalidInput, in.DurationDays)
	}

	genres := in.MusicGenres
	if in.SubGenre != "" {
		genres = append([]string{in.SubGenre}, genres...)
	}

	vendors := make(map[string]domain.Vendor, len(in.Vendors))
	for _, v := range in.Vendors {
		vendors[v.ID] = v
	}

	duration := int64(in.DurationDays)

	// Remaining capacity per vendor: the negotiated per-campaign cap when
	// one exists, never more than the vendor's own daily ceiling over the
	// campaign's life.
	vendorRemaining := make(map[string]int64, len(vendors))
	for id, v := range vendors {
		budget := v.MaxDailyStreams * duration
		if negotiated, ok := in.VendorCaps[id]; ok && negotiated < budget {
			budget = negotiated
		}
		vendorRemaining[id] = budget
	}

	candidates := make([]candidate, 0, len(in.Playlists))
	for _, p := range in.Playlists {
		v, ok := vendors[p.VendorID]
		if !ok || !v.IsActive {
			continue
		}
		if p.AvgDailyStreams <= 0 || !p.MatchesGenre(genres) {
			continue
		}
		candidates = append(candidates, candidate{
			playlistID: p.ID,
			vendorID:   p.VendorID,
			ceiling:    p.AvgDailyStreams * duration,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ceiling != candidates[j].ceiling {
			return candidates[i].ceiling > candidates[j].ceiling
		}
		return candidates[i].playlistID < candidates[j].playlistID
	})

	plan := Plan{Entries: make([]Entry, 0, len(candidates))}
	remaining := in.Goal
	for _, c := range candidates {
		if remaining == 0 {
			break
		}
		amount := c.ceiling
		if vr := vendorRemaining[c.vendorID]; vr < amount {
			amount = vr
		}
		if amount > remaining {
			amount = remaining
		}
		if amount <= 0 {
			continue
		}
		plan.Entries = append(plan.Entries, Entry{
			PlaylistID: c.playlistID,
			VendorID:   c.vendorID,
			Streams:    amount,
		})
		plan.Total += amount
		remaining -= amount
		vendorRemaining[c.vendorID] -= amount
	}
	plan.Shortfall = remaining
	return plan, nil
}
