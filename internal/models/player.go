package models

// RatingKey names one of the 14 base skill ratings.
type RatingKey string

const (
	RatingStre RatingKey = "stre"
	RatingSpd  RatingKey = "spd"
	RatingJmp  RatingKey = "jmp"
	RatingEndu RatingKey = "endu"
	RatingIns  RatingKey = "ins"
	RatingDnk  RatingKey = "dnk"
	RatingFT   RatingKey = "ft"
	RatingFG   RatingKey = "fg"
	RatingTP   RatingKey = "tp"
	RatingOIQ  RatingKey = "oiq"
	RatingDIQ  RatingKey = "diq"
	RatingDrb  RatingKey = "drb"
	RatingPss  RatingKey = "pss"
	RatingReb  RatingKey = "reb"
)

// RatingKeys lists the base ratings in canonical order.
var RatingKeys = []RatingKey{
	RatingStre, RatingSpd, RatingJmp, RatingEndu, RatingIns, RatingDnk,
	RatingFT, RatingFG, RatingTP, RatingOIQ, RatingDIQ, RatingDrb,
	RatingPss, RatingReb,
}

// PlayerRatings is one season's ratings row. Rows are append-only by season;
// only the latest row may be modified.
type PlayerRatings struct {
	Season int `json:"season"`

	Hgt  int `json:"hgt"` // height rating 0-100, not inches
	Stre int `json:"stre"`
	Spd  int `json:"spd"`
	Jmp  int `json:"jmp"`
	Endu int `json:"endu"`
	Ins  int `json:"ins"`
	Dnk  int `json:"dnk"`
	FT   int `json:"ft"`
	FG   int `json:"fg"`
	TP   int `json:"tp"`
	OIQ  int `json:"oiq"`
	DIQ  int `json:"diq"`
	Drb  int `json:"drb"`
	Pss  int `json:"pss"`
	Reb  int `json:"reb"`

	Ovr int      `json:"ovr"`
	Pot int      `json:"pot"`
	Pos string   `json:"pos"`
	Fuzz float64 `json:"fuzz"`

	Skills []string `json:"skills"`
}

// Get returns the value of a base rating by key.
func (r *PlayerRatings) Get(key RatingKey) int {
	switch key {
	case RatingStre:
		return r.Stre
	case RatingSpd:
		return r.Spd
	case RatingJmp:
		return r.Jmp
	case RatingEndu:
		return r.Endu
	case RatingIns:
		return r.Ins
	case RatingDnk:
		return r.Dnk
	case RatingFT:
		return r.FT
	case RatingFG:
		return r.FG
	case RatingTP:
		return r.TP
	case RatingOIQ:
		return r.OIQ
	case RatingDIQ:
		return r.DIQ
	case RatingDrb:
		return r.Drb
	case RatingPss:
		return r.Pss
	case RatingReb:
		return r.Reb
	}
	return 0
}

// Set assigns a base rating by key.
func (r *PlayerRatings) Set(key RatingKey, v int) {
	switch key {
	case RatingStre:
		r.Stre = v
	case RatingSpd:
		r.Spd = v
	case RatingJmp:
		r.Jmp = v
	case RatingEndu:
		r.Endu = v
	case RatingIns:
		r.Ins = v
	case RatingDnk:
		r.Dnk = v
	case RatingFT:
		r.FT = v
	case RatingFG:
		r.FG = v
	case RatingTP:
		r.TP = v
	case RatingOIQ:
		r.OIQ = v
	case RatingDIQ:
		r.DIQ = v
	case RatingDrb:
		r.Drb = v
	case RatingPss:
		r.Pss = v
	case RatingReb:
		r.Reb = v
	}
}

// Contract is a player contract. Amount is in thousands of league dollars per
// season; Exp is the season the contract runs through.
type Contract struct {
	Amount int `json:"amount"`
	Exp    int `json:"exp"`
}

// Salary is one season of a player's salary ledger.
type Salary struct {
	Season int `json:"season"`
	Amount int `json:"amount"`
}

// Injury is a player's current injury state.
type Injury struct {
	Type           string `json:"type"`
	GamesRemaining int    `json:"gamesRemaining"`
}

// Healthy is the injury state of an uninjured player.
func Healthy() Injury { return Injury{Type: "Healthy"} }

// DraftInfo records where (and whether) a player was drafted.
type DraftInfo struct {
	Round       int      `json:"round"`
	Pick        int      `json:"pick"`
	TID         int      `json:"tid"`
	OriginalTID int      `json:"originalTid"`
	Year        int      `json:"year"`
	Ovr         int      `json:"ovr"`
	Pot         int      `json:"pot"`
	Skills      []string `json:"skills"`
}

// Born holds a player's birth year and place.
type Born struct {
	Year int    `json:"year"`
	Loc  string `json:"loc"`
}

// PlayerAward is one entry in a player's awards list.
type PlayerAward struct {
	Season int    `json:"season"`
	Type   string `json:"type"`
}

// PlayerStats is one season stat row for a player. The simulation engine only
// creates and tags rows; populating box-score numbers is the game simulator's
// job.
type PlayerStats struct {
	Season   int  `json:"season"`
	TID      int  `json:"tid"`
	Playoffs bool `json:"playoffs"`

	GP  int     `json:"gp"`
	GS  int     `json:"gs"`
	Min float64 `json:"min"`
	Pts int     `json:"pts"`
	Trb int     `json:"trb"`
	Ast int     `json:"ast"`
}

// Player is the full player record.
type Player struct {
	PID int        `json:"pid"`
	TID RosterSlot `json:"tid"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Born      Born   `json:"born"`
	College   string `json:"college"`

	Hgt    int `json:"hgt"` // inches
	Weight int `json:"weight"`

	Ratings  []PlayerRatings `json:"ratings"`
	Contract Contract        `json:"contract"`
	Salaries []Salary        `json:"salaries"`

	// FreeAgentMood has one scalar per team; 0 means eager to sign, higher
	// values make the player harder to negotiate with.
	FreeAgentMood []float64 `json:"freeAgentMood"`

	Injury  Injury        `json:"injury"`
	Draft   DraftInfo     `json:"draft"`
	Awards  []PlayerAward `json:"awards"`
	Stats   []PlayerStats `json:"stats"`
	StatsTids []int       `json:"statsTids"`

	GamesUntilTradable int  `json:"gamesUntilTradable"`
	YearsFreeAgent     int  `json:"yearsFreeAgent"`
	RosterOrder        int  `json:"rosterOrder"`
	PtModifier         float64 `json:"ptModifier"`
	RetiredYear        int  `json:"retiredYear"` // 0 when still active
	HOF                bool `json:"hof"`
	Watch              bool `json:"watch"`

	// Derived value scores; recomputed whenever ratings or contract change.
	Value           float64 `json:"value"`
	ValueNoPot      float64 `json:"valueNoPot"`
	ValueFuzz       float64 `json:"valueFuzz"`
	ValueNoPotFuzz  float64 `json:"valueNoPotFuzz"`
	ValueWithContract float64 `json:"valueWithContract"`
}

// CurrentRatings returns the latest ratings row, or nil for an empty history.
func (p *Player) CurrentRatings() *PlayerRatings {
	if len(p.Ratings) == 0 {
		return nil
	}
	return &p.Ratings[len(p.Ratings)-1]
}

// Age returns the player's age in the given season.
func (p *Player) Age(season int) int { return season - p.Born.Year }

// Name returns "First Last".
func (p *Player) Name() string { return p.FirstName + " " + p.LastName }

// ReleasedPlayer is a salary obligation that outlives a player's stay on a
// roster. It is purged once the contract expires.
type ReleasedPlayer struct {
	RID      int      `json:"rid"`
	PID      int      `json:"pid"`
	TID      int      `json:"tid"`
	Contract Contract `json:"contract"`
}
