package models

// RewardFlags are the three per-student reward toggles shared by the
// Students and Rewards views.
type RewardFlags struct {
	Badge       bool `json:"badge"`
	Certificate bool `json:"certificate"`
	Comment     bool `json:"comment"`
}

// Empty reports whether every flag is off. Empty entries are pruned from
// storage: a missing key means "no rewards", not "rewards cleared".
func (f RewardFlags) Empty() bool {
	return !f.Badge && !f.Certificate && !f.Comment
}

// Reward flag names accepted by the toggle API.
const (
	RewardBadge       = "badge"
	RewardCertificate = "certificate"
	RewardComment     = "comment"
)

// RewardSets groups the ids holding each flag, derived from one full read of
// the persisted map.
type RewardSets struct {
	Badge       map[string]struct{} `json:"-"`
	Certificate map[string]struct{} `json:"-"`
	Comment     map[string]struct{} `json:"-"`
}

// ViewPreference remembers the last-selected week and class for one
// semester+quarter so related views stay in sync.
type ViewPreference struct {
	WeekID  string `json:"week_id,omitempty"`
	ClassID string `json:"class_id,omitempty"`
}
