package models

// Difficulty levels. Stored as a float so league files can carry custom
// values between the named levels.
const (
	DifficultyEasy   = -0.25
	DifficultyNormal = 0.0
	DifficultyHard   = 0.25
	DifficultyInsane = 1.0
)

// GameAttributes is the single mutable configuration record of a league:
// current season and phase, the user's team(s), and every numeric knob the
// engines consult. One record exists per league; it is flushed with the rest
// of the cache. Keys absent from an imported file keep their defaults.
type GameAttributes struct {
	LeagueName     string `json:"leagueName"`
	Season         int    `json:"season"`
	StartingSeason int    `json:"startingSeason"`
	Phase          Phase  `json:"phase"`

	UserTID  int   `json:"userTid"`
	UserTIDs []int `json:"userTids"`

	// NextPhase remembers where the normal cycle left off while a fantasy
	// draft is in progress.
	NextPhase *Phase `json:"nextPhase,omitempty"`

	NumTeams         int `json:"numTeams"`
	NumGames         int `json:"numGames"`
	QuarterLength    int `json:"quarterLength"`
	NumPlayoffRounds int `json:"numPlayoffRounds"`

	SalaryCap         int `json:"salaryCap"`   // thousands
	SalaryFloor       int `json:"luxuryPayroll"` // legacy key name kept for file compatibility
	MinContract       int `json:"minContract"`
	MaxContract       int `json:"maxContract"`
	MinContractLength int `json:"minContractLength"`
	MaxContractLength int `json:"maxContractLength"`
	MinRosterSize     int `json:"minRosterSize"`
	MaxRosterSize     int `json:"maxRosterSize"`

	InjuryRate     float64 `json:"injuryRate"`
	TragicDeathRate float64 `json:"tragicDeathRate"`

	DaysLeft       int     `json:"daysLeft"` // days remaining in free agency
	GracePeriodEnd int     `json:"gracePeriodEnd"`
	Difficulty     float64 `json:"difficulty"`
	EasyDifficultyInPast bool `json:"easyDifficultyInPast"`
	GodMode        bool    `json:"godMode"`
	GodModeInPast  bool    `json:"godModeInPast"`

	AutoDeleteOldBoxScores bool `json:"autoDeleteOldBoxScores"`
	ShowFirstOwnerMessage  bool `json:"showFirstOwnerMessage"`

	// Lookup caches, rebuilt from the teams collection at load time.
	TeamAbbrevsCache []string `json:"teamAbbrevsCache"`
	TeamRegionsCache []string `json:"teamRegionsCache"`
	TeamNamesCache   []string `json:"teamNamesCache"`
}

// DefaultGameAttributes returns the built-in configuration. Values not
// recognized in an imported file fall back to these.
func DefaultGameAttributes() *GameAttributes {
	return &GameAttributes{
		Season:           2026,
		StartingSeason:   2026,
		Phase:            PhasePreseason,
		UserTID:          0,
		UserTIDs:         []int{0},
		NumTeams:         30,
		NumGames:         82,
		QuarterLength:    12,
		NumPlayoffRounds: 4,

		SalaryCap:         90000,
		SalaryFloor:       60000,
		MinContract:       750,
		MaxContract:       30000,
		MinContractLength: 1,
		MaxContractLength: 5,
		MinRosterSize:     10,
		MaxRosterSize:     15,

		InjuryRate:      0.00087,
		TragicDeathRate: 0.00001,

		DaysLeft:              0,
		Difficulty:            DifficultyNormal,
		ShowFirstOwnerMessage: true,
	}
}

// TeamAbbrev returns the cached abbreviation for a team ID, "FA" for the
// free-agent sentinel, and "" for other sentinels or unknown IDs.
func (g *GameAttributes) TeamAbbrev(tid int) string {
	if RosterSlot(tid) == SlotFreeAgent {
		return "FA"
	}
	if tid < 0 || tid >= len(g.TeamAbbrevsCache) {
		return ""
	}
	return g.TeamAbbrevsCache[tid]
}

// TeamName returns the cached full name for a team ID.
func (g *GameAttributes) TeamName(tid int) string {
	if tid < 0 || tid >= len(g.TeamNamesCache) {
		return ""
	}
	return g.TeamRegionsCache[tid] + " " + g.TeamNamesCache[tid]
}

// IsUserTeam reports whether tid is one of the user-controlled teams.
func (g *GameAttributes) IsUserTeam(tid int) bool {
	for _, u := range g.UserTIDs {
		if u == tid {
			return true
		}
	}
	return false
}
