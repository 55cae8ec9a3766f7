package models

// Strategy is a team's roster-building posture for the current season.
type Strategy string

const (
	StrategyContending Strategy = "contending"
	StrategyRebuilding Strategy = "rebuilding"
)

// Team is a franchise's static identity. Identity never changes; everything
// per-season lives in TeamSeason and TeamStats.
type Team struct {
	TID    int    `json:"tid"`
	CID    int    `json:"cid"`
	DID    int    `json:"did"`
	Region string `json:"region"`
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`

	Pop     float64  `json:"pop"`     // metro population, millions
	PopRank int      `json:"popRank"` // 1 = largest market
	Strategy Strategy `json:"strategy"`
}

// BudgetItem is one line of a team's budget, with the team's league-wide
// spending rank for that line.
type BudgetItem struct {
	Amount int `json:"amount"`
	Rank   int `json:"rank"`
}

// TeamSeason is a team's record for one season.
type TeamSeason struct {
	RID    int `json:"rid"`
	TID    int `json:"tid"`
	Season int `json:"season"`

	Won            int `json:"won"`
	Lost           int `json:"lost"`
	WonDiv         int `json:"wonDiv"`
	LostDiv        int `json:"lostDiv"`
	WonConf        int `json:"wonConf"`
	LostConf       int `json:"lostConf"`
	PlayoffRoundsWon int `json:"playoffRoundsWon"` // -1 means missed playoffs

	Pop             float64 `json:"pop"`
	StadiumCapacity int     `json:"stadiumCapacity"`
	Hype            float64 `json:"hype"` // 0-1
	Cash            int     `json:"cash"`
	OwnerMood       OwnerMood `json:"ownerMood"`

	Budget   map[string]BudgetItem `json:"budget"`
	Expenses map[string]BudgetItem `json:"expenses"`
	Revenues map[string]BudgetItem `json:"revenues"`
}

// WinP returns the season winning percentage, 0 for an unplayed season.
func (ts *TeamSeason) WinP() float64 {
	games := ts.Won + ts.Lost
	if games == 0 {
		return 0
	}
	return float64(ts.Won) / float64(games)
}

// OwnerMood tracks the owner's satisfaction. The components sum to the
// overall mood; below -1 the user is fired.
type OwnerMood struct {
	Wins     float64 `json:"wins"`
	Playoffs float64 `json:"playoffs"`
	Money    float64 `json:"money"`
}

// Total returns the overall owner mood.
func (m OwnerMood) Total() float64 { return m.Wins + m.Playoffs + m.Money }

// TeamStats is a team's aggregate stat row for one season. The simulation
// engine creates rows; the game simulator fills them.
type TeamStats struct {
	RID      int  `json:"rid"`
	TID      int  `json:"tid"`
	Season   int  `json:"season"`
	Playoffs bool `json:"playoffs"`

	GP     int `json:"gp"`
	Pts    int `json:"pts"`
	OppPts int `json:"oppPts"`
	Min    int `json:"min"`
}
