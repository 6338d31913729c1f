package domain

import "time"

// Campaign statuses. A campaign starts as a draft, gets an allocation at
// build time and then moves through release states as streams are observed.
const (
	StatusDraft      = "draft"
	StatusBuilt      = "built"
	StatusUnreleased = "unreleased"
	StatusActive     = "active"
	StatusCompleted  = "completed"
)

// Campaign represents a stream-promotion campaign.
// Money amounts are stored in integer units (cents).
type Campaign struct {
	ID                string
	Name              string
	Status            string // draft, built, unreleased, active, completed
	StreamGoal        int64
	DurationDays      int
	SubGenre          string
	MusicGenres       []string
	BudgetCents       int64
	SelectedPlaylists []string
	VendorAllocations map[string]VendorAllocation
	ProjectedStreams  int64 // sum of all allocation entries, engine-owned
	StartDate         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// VendorAllocation is the per-vendor slice of a campaign's allocation as
// persisted on the campaign record: the total stream count assigned to the
// vendor plus the playlists that carry it.
type VendorAllocation struct {
	Streams   int64    `json:"streams"`
	Playlists []string `json:"playlists"`
}

// ValidTransition reports whether a campaign may move from one status to
// another. Drafts must be built before release; built campaigns may go out
// unreleased or straight to active; completed is terminal.
func ValidTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusBuilt
	case StatusBuilt:
		return to == StatusUnreleased || to == StatusActive
	case StatusUnreleased:
		return to == StatusActive
	case StatusActive:
		return to == StatusCompleted
	default:
		return false
	}
}
