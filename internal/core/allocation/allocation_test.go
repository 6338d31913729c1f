package allocation

import (
	"errors"
	"reflect"
	"testing"

	"streamlane/internal/core/domain"
)

func playlist(id, vendorID string, daily int64, genres ...string) domain.Playlist {
	return domain.Playlist{ID: id, VendorID: vendorID, Genres: genres, AvgDailyStreams: daily}
}

func vendor(id string, maxDaily int64) domain.Vendor {
	return domain.Vendor{ID: id, MaxDailyStreams: maxDaily, IsActive: true}
}

func TestAllocateInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero goal", Input{Goal: 0, DurationDays: 7}},
		{"negative goal", Input{Goal: -100, DurationDays: 7}},
		{"zero duration", Input{Goal: 1000, DurationDays: 0}},
		{"negative duration", Input{Goal: 1000, DurationDays: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Allocate(tc.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// Zero candidates after filtering is a reportable outcome, not an error: the
// plan comes back empty with the full goal as shortfall.
func TestAllocateNoEligibleCandidates(t *testing.T) {
	in := Input{
		Playlists:    []domain.Playlist{playlist("p1", "v1", 1000, "techno")},
		Vendors:      []domain.Vendor{vendor("v1", 5000)},
		Goal:         10000,
		SubGenre:     "jazz",
		DurationDays: 7,
	}
	plan, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if len(plan.Entries) != 0 {
		t.Fatalf("expected empty plan, got %d entries", len(plan.Entries))
	}
	if plan.Shortfall != in.Goal {
		t.Fatalf("expected shortfall %d, got %d", in.Goal, plan.Shortfall)
	}
}

func TestAllocateSkipsInactiveVendors(t *testing.T) {
	inactive := vendor("v2", 9000)
	inactive.IsActive = false
	in := Input{
		Playlists: []domain.Playlist{
			playlist("p1", "v1", 1000, "house"),
			playlist("p2", "v2", 9000, "house"),
		},
		Vendors:      []domain.Vendor{vendor("v1", 5000), inactive},
		Goal:         20000,
		SubGenre:     "house",
		DurationDays: 7,
	}
	plan, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	for _, e := range plan.Entries {
		if e.VendorID == "v2" {
			t.Fatalf("inactive vendor received allocation: %+v", e)
		}
	}
}

// The worked scenario: two vendors, three playlists, combined caps above the
// goal, so the plan must reach the goal exactly.
func TestAllocateScenario(t *testing.T) {
	in := Input{
		Playlists: []domain.Playlist{
			playlist("p1", "v1", 10000, "indie"),
			playlist("p2", "v1", 5000, "indie"),
			playlist("p3", "v2", 8000, "indie"),
		},
		Vendors:      []domain.Vendor{vendor("v1", 20000), vendor("v2", 10000)},
		Goal:         50000,
		VendorCaps:   map[string]int64{"v1": 60000, "v2": 40000},
		SubGenre:     "indie",
		DurationDays: 7,
	}
	plan, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if plan.Total != 50000 || plan.Shortfall != 0 {
		t.Fatalf("expected full fill, got total %d shortfall %d", plan.Total, plan.Shortfall)
	}
	// Fill order is by descending 7-day ceiling: p1 (70000 capped to 60000
	// by the vendor cap), then p3 (56000 capped to 40000), then p2.
	want := []Entry{
		{PlaylistID: "p1", VendorID: "v1", Streams: 50000},
	}
	if !reflect.DeepEqual(plan.Entries, want) {
		t.Fatalf("unexpected plan: %+v", plan.Entries)
	}
}

func TestAllocatePartialFulfillment(t *testing.T) {
	in := Input{
		Playlists: []domain.Playlist{
			playlist("p1", "v1", 100, "lofi"),
			playlist("p2", "v2", 200, "lofi"),
		},
		Vendors:      []domain.Vendor{vendor("v1", 100), vendor("v2", 200)},
		Goal:         10000,
		SubGenre:     "lofi",
		DurationDays: 7,
	}
	plan, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	// combined 7-day capacity is 2100
	if plan.Total != 2100 {
		t.Fatalf("expected total 2100, got %d", plan.Total)
	}
	if plan.Shortfall != 7900 {
		t.Fatalf("expected shortfall 7900, got %d", plan.Shortfall)
	}
}

func TestAllocateCapacityInvariants(t *testing.T) {
	in := Input{
		Playlists: []domain.Playlist{
			playlist("p1", "v1", 10000, "pop"),
			playlist("p2", "v1", 5000, "pop"),
			playlist("p3", "v2", 8000, "pop"),
			playlist("p4", "v2", 8000, "pop"),
		},
		Vendors:      []domain.Vendor{vendor("v1", 12000), vendor("v2", 9000)},
		Goal:         1000000,
		VendorCaps:   map[string]int64{"v1": 70000},
		SubGenre:     "pop",
		DurationDays: 10,
	}
	plan, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}

	perVendor := map[string]int64{}
	var sum int64
	for _, e := range plan.Entries {
		if e.Streams <= 0 {
			t.Fatalf("zero or negative entry emitted: %+v", e)
		}
		perVendor[e.VendorID] += e.Streams
		sum += e.Streams
	}
	if sum > in.Goal {
		t.Fatalf("allocated %d beyond goal %d", sum, in.Goal)
	}
	// per-playlist ceiling: avg daily x duration
	ceilings := map[string]int64{"p1": 100000, "p2": 50000, "p3": 80000, "p4": 80000}
	for _, e := range plan.Entries {
		if e.Streams > ceilings[e.PlaylistID] {
			t.Fatalf("playlist %s over ceiling: %d > %d", e.PlaylistID, e.Streams, ceilings[e.PlaylistID])
		}
	}
	// vendor caps: v1 negotiated 70000 (< 120000 daily budget), v2 90000
	if perVendor["v1"] > 70000 {
		t.Fatalf("v1 over cap: %d", perVendor["v1"])
	}
	if perVendor["v2"] > 90000 {
		t.Fatalf("v2 over cap: %d", perVendor["v2"])
	}
	if sum != plan.Total || in.Goal-sum != plan.Shortfall {
		t.Fatalf("plan totals inconsistent: sum %d total %d shortfall %d", sum, plan.Total, plan.Shortfall)
	}
}

func TestAllocateDeterminism(t *testing.T) {
	in := Input{
		Playlists: []domain.Playlist{
			playlist("p3", "v2", 8000, "pop"),
			playlist("p1", "v1", 8000, "pop"),
			playlist("p2", "v1", 5000, "pop"),
		},
		Vendors:      []domain.Vendor{vendor("v1", 12000), vendor("v2", 9000)},
		Goal:         90000,
		SubGenre:     "pop",
		DurationDays: 7,
	}
	first, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Allocate(in)
		if err != nil {
			t.Fatalf("Allocate error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, first, again)
		}
	}
	// p1 and p3 tie on ceiling (56000); ascending id breaks the tie.
	if first.Entries[0].PlaylistID != "p1" {
		t.Fatalf("expected p1 first, got %s", first.Entries[0].PlaylistID)
	}
}

// Raising the goal with everything else fixed must never shrink any
// individual playlist's allocation.
func TestAllocateMonotonicFill(t *testing.T) {
	base := Input{
		Playlists: []domain.Playlist{
			playlist("p1", "v1", 9000, "pop"),
			playlist("p2", "v1", 9000, "pop"),
			playlist("p3", "v2", 4000, "pop"),
		},
		Vendors:      []domain.Vendor{vendor("v1", 10000), vendor("v2", 4000)},
		SubGenre:     "pop",
		DurationDays: 7,
	}
	prev := map[string]int64{}
	for goal := int64(1000); goal <= 200000; goal += 1000 {
		in := base
		in.Goal = goal
		plan, err := Allocate(in)
		if err != nil {
			t.Fatalf("goal %d: %v", goal, err)
		}
		got := map[string]int64{}
		for _, e := range plan.Entries {
			got[e.PlaylistID] = e.Streams
		}
		for id, before := range prev {
			if got[id] < before {
				t.Fatalf("goal %d: playlist %s shrank from %d to %d", goal, id, before, got[id])
			}
		}
		prev = got
	}
}

func TestPlanVendorTotals(t *testing.T) {
	plan := Plan{Entries: []Entry{
		{PlaylistID: "p1", VendorID: "v1", Streams: 30000},
		{PlaylistID: "p3", VendorID: "v2", Streams: 15000},
		{PlaylistID: "p2", VendorID: "v1", Streams: 5000},
	}}
	totals := plan.VendorTotals()
	if totals["v1"].Streams != 35000 {
		t.Fatalf("v1 streams: got %d, want 35000", totals["v1"].Streams)
	}
	if !reflect.DeepEqual(totals["v1"].Playlists, []string{"p1", "p2"}) {
		t.Fatalf("v1 playlists: %v", totals["v1"].Playlists)
	}
	if totals["v2"].Streams != 15000 {
		t.Fatalf("v2 streams: got %d, want 15000", totals["v2"].Streams)
	}
}
