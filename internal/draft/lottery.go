package draft

import (
	"sort"
	"strconv"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state"
)

// LotteryTeam is one non-playoff team entering the lottery, worst record
// first.
type LotteryTeam struct {
	TID     int
	Won     int
	Lost    int
	Chances float64
}

// LotteryPolicy orders the lottery teams into first-round pick positions.
// Implementations must be deterministic given the RNG.
type LotteryPolicy interface {
	Run(rng *random.Source, teams []LotteryTeam) []LotteryTeam
}

// WeightedLottery is the default policy: every seed gets record-weighted
// chances and slots are drawn without replacement, worst teams most likely
// to pick first.
type WeightedLottery struct{}

// chancesBySeed follows a descending-odds table; seeds past the table share
// the last value.
var chancesBySeed = []float64{250, 199, 156, 119, 88, 63, 43, 28, 17, 11, 8, 7, 6, 5}

func lotteryChances(seed int) float64 {
	if seed < len(chancesBySeed) {
		return chancesBySeed[seed]
	}
	return chancesBySeed[len(chancesBySeed)-1]
}

func (WeightedLottery) Run(rng *random.Source, teams []LotteryTeam) []LotteryTeam {
	pool := make([]LotteryTeam, len(teams))
	copy(pool, teams)
	for i := range pool {
		pool[i].Chances = lotteryChances(i)
	}

	order := make([]LotteryTeam, 0, len(pool))
	for len(pool) > 0 {
		pick := random.WeightedChoice(rng, pool, func(t LotteryTeam) float64 { return t.Chances })
		order = append(order, pick)
		rest := pool[:0]
		for _, t := range pool {
			if t.TID != pick.TID {
				rest = append(rest, t)
			}
		}
		pool = rest
	}
	return order
}

// GenOrder resolves the current season's pick numbers: lottery teams first by
// lottery outcome, then playoff teams by record, champions picking last. The
// second round follows reverse record order with no lottery. The lottery
// outcome is recorded for display.
func GenOrder(ls *state.League, policy LotteryPolicy) error {
	g := ls.G()
	if policy == nil {
		policy = WeightedLottery{}
	}

	rows := ls.Cache.TeamSeasons.ByIndex(g.Season)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinP() != rows[j].WinP() {
			return rows[i].WinP() < rows[j].WinP()
		}
		return rows[i].TID < rows[j].TID
	})

	var lottery []LotteryTeam
	var playoff []*models.TeamSeason
	for _, ts := range rows {
		if ts.PlayoffRoundsWon < 0 {
			lottery = append(lottery, LotteryTeam{TID: ts.TID, Won: ts.Won, Lost: ts.Lost})
		} else {
			playoff = append(playoff, ts)
		}
	}
	// Deeper playoff runs pick later; ties fall back to regular-season record.
	sort.SliceStable(playoff, func(i, j int) bool {
		return playoff[i].PlayoffRoundsWon < playoff[j].PlayoffRoundsWon
	})

	drawn := policy.Run(ls.Rand, lottery)

	firstRound := make([]int, 0, g.NumTeams)
	result := make([]models.DraftLotteryResultTeam, 0, len(drawn))
	for i, t := range drawn {
		firstRound = append(firstRound, t.TID)
		result = append(result, models.DraftLotteryResultTeam{
			TID:         t.TID,
			OriginalTID: t.TID,
			Chances:     t.Chances,
			Pick:        i + 1,
			Won:         t.Won,
			Lost:        t.Lost,
		})
	}
	for _, ts := range playoff {
		firstRound = append(firstRound, ts.TID)
	}

	// Second round: straight reverse record order.
	secondRound := make([]int, 0, g.NumTeams)
	for _, ts := range rows {
		secondRound = append(secondRound, ts.TID)
	}

	ls.Cache.DraftLotteryResults.Put(&models.DraftLotteryResult{
		Season: g.Season,
		Result: result,
	})

	season := strconv.Itoa(g.Season)
	assign := func(round int, order []int) {
		for i, origTID := range order {
			for _, dp := range ls.Cache.DraftPicks.All() {
				if dp.Season == season && dp.Round == round && dp.OriginalTID == origTID {
					dp.Pick = i + 1
					ls.Cache.DraftPicks.Put(dp)
					break
				}
			}
		}
	}
	assign(1, firstRound)
	assign(2, secondRound)
	return nil
}

// GenOrderFantasy gives every team one pick per round in a serpentine order
// for the given number of rounds, tagged with the fantasy season.
func GenOrderFantasy(ls *state.League, rounds int) {
	g := ls.G()

	tids := make([]int, g.NumTeams)
	for i := range tids {
		tids[i] = i
	}
	random.Shuffle(ls.Rand, tids)

	for round := 1; round <= rounds; round++ {
		order := make([]int, len(tids))
		copy(order, tids)
		if round%2 == 0 {
			for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
				order[i], order[j] = order[j], order[i]
			}
		}
		for i, tid := range order {
			ls.Cache.DraftPicks.Add(&models.DraftPick{
				TID:         tid,
				OriginalTID: tid,
				Round:       round,
				Pick:        i + 1,
				Season:      models.FantasySeason,
			})
		}
	}
}
