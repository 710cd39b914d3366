package stats

import "time"

// Snapshot is one mutually consistent set of directory counts, taken from a
// single read-only transaction.
type Snapshot struct {
	TotalNGOs            int             `json:"total_ngos"`
	VerifiedNGOs         int             `json:"verified_ngos"`
	BlacklistedNGOs      int             `json:"blacklisted_ngos"`
	ActiveVolunteerPosts int             `json:"active_volunteer_posts"`
	UpcomingEvents       int             `json:"upcoming_events"`
	ByCategory           []CategoryCount `json:"by_category"`
	ByState              []StateCount    `json:"by_state"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// CategoryCount is the number of visible NGOs tagged with one category
type CategoryCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// StateCount is the number of visible NGOs registered in one state
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}
