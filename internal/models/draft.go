package models

// FantasySeason is the DraftPick season tag used during a fantasy draft.
const FantasySeason = "fantasy"

// DraftPick is a tradable pick in a future (or in-progress) draft. Season is
// the draft year as a decimal string, or "fantasy" during a fantasy draft.
// Pick is 0 until the slot is resolved at the start of that draft.
type DraftPick struct {
	DPID        int    `json:"dpid"`
	TID         int    `json:"tid"` // current owner
	OriginalTID int    `json:"originalTid"`
	Round       int    `json:"round"`
	Pick        int    `json:"pick"`
	Season      string `json:"season"`
}

// DraftLotteryResult records the outcome of one season's lottery.
type DraftLotteryResult struct {
	Season int                      `json:"season"`
	Result []DraftLotteryResultTeam `json:"result"`
}

// DraftLotteryResultTeam is one team's slot in a lottery result, ordered by
// final pick position.
type DraftLotteryResultTeam struct {
	TID          int     `json:"tid"`
	OriginalTID  int     `json:"originalTid"`
	Chances      float64 `json:"chances"`
	Pick         int     `json:"pick"`
	Won          int     `json:"won"`
	Lost         int     `json:"lost"`
}
