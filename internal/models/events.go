package models

// Event is an append-only transaction log entry for UI display. Simulation
// logic never reads these back.
type Event struct {
	EID    int    `json:"eid"`
	Season int    `json:"season"`
	Type   string `json:"type"`
	Text   string `json:"text"`
	PIDs   []int  `json:"pids,omitempty"`
	TIDs   []int  `json:"tids,omitempty"`
	ShowNotification bool `json:"showNotification"`
}

// Message is an in-game message to the user, usually from the owner or the
// commissioner.
type Message struct {
	MID  int    `json:"mid"`
	From string `json:"from"`
	Year int    `json:"year"`
	Text string `json:"text"`
	Read bool   `json:"read"`
}

// Award is one season's league-wide award results.
type Award struct {
	Season int        `json:"season"`
	MVP    *AwardPlayer `json:"mvp,omitempty"`
	ROY    *AwardPlayer `json:"roy,omitempty"`
	FinalsMVP *AwardPlayer `json:"finalsMvp,omitempty"`
}

// AwardPlayer identifies an individual award winner.
type AwardPlayer struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
	TID  int    `json:"tid"`
	Abbrev string `json:"abbrev"`
}

// PlayerFeat records a single-game statistical feat. Created by the game
// simulator; carried here for league file round trips.
type PlayerFeat struct {
	FID    int    `json:"fid"`
	PID    int    `json:"pid"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	TID    int    `json:"tid"`
	Playoffs bool `json:"playoffs"`
}

// ScheduleGame is one unplayed game on the season schedule.
type ScheduleGame struct {
	GID     int `json:"gid"`
	HomeTID int `json:"homeTid"`
	AwayTID int `json:"awayTid"`
	Day     int `json:"day"`
}

// Game is a completed game's box score shell.
type Game struct {
	GID      int  `json:"gid"`
	Season   int  `json:"season"`
	Playoffs bool `json:"playoffs"`
	Won      GameTeam `json:"won"`
	Lost     GameTeam `json:"lost"`
}

// GameTeam is one side of a completed game.
type GameTeam struct {
	TID int `json:"tid"`
	Pts int `json:"pts"`
}

// PlayoffSeries is the playoff bracket for one season.
type PlayoffSeries struct {
	Season      int                `json:"season"`
	CurrentRound int               `json:"currentRound"`
	Series      [][]PlayoffMatchup `json:"series"`
}

// PlayoffMatchup is one series in a playoff round.
type PlayoffMatchup struct {
	Home PlayoffSeriesTeam `json:"home"`
	Away PlayoffSeriesTeam `json:"away"`
}

// PlayoffSeriesTeam is one side of a playoff matchup.
type PlayoffSeriesTeam struct {
	TID  int `json:"tid"`
	Seed int `json:"seed"`
	Won  int `json:"won"`
}

// Trade is the persisted state of the trade negotiation screen.
type Trade struct {
	RID   int         `json:"rid"`
	Teams []TradeSide `json:"teams"`
}

// TradeSide is one team's assets in a proposed trade.
type TradeSide struct {
	TID   int   `json:"tid"`
	PIDs  []int `json:"pids"`
	DPIDs []int `json:"dpids"`
}
