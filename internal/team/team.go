// Package team covers franchise bookkeeping: season and stat rows, payroll,
// budget ranks, roster ordering, and the contending/rebuilding strategy call
// the signing engines consult.
package team

import (
	"math"
	"sort"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

// BudgetItems are the spending lines every team carries.
var BudgetItems = []string{"scouting", "coaching", "health", "facilities"}

// defaultBudgetAmount scales a budget line by market size and the salary cap.
// Bigger markets spend more; amounts are in thousands per season.
func defaultBudgetAmount(g *models.GameAttributes, popRank int) int {
	frac := 0.0
	if g.NumTeams > 1 {
		frac = float64(g.NumTeams-popRank) / float64(g.NumTeams-1)
	}
	amount := float64(g.SalaryCap) / 90000 * (90 + 30*frac)
	return 10 * int(math.Round(amount/10))
}

// GenSeasonRow builds a team's row for the current season. Hype, cash, and
// population carry over from the previous season's row when one exists.
func GenSeasonRow(g *models.GameAttributes, rng *random.Source, t *models.Team, prev *models.TeamSeason) *models.TeamSeason {
	ts := &models.TeamSeason{
		TID:              t.TID,
		Season:           g.Season,
		PlayoffRoundsWon: -1,
		Pop:              t.Pop,
		StadiumCapacity:  25000,
		Hype:             rng.Float64(),
		Cash:             10000,
		Budget:           map[string]models.BudgetItem{},
		Expenses:         map[string]models.BudgetItem{},
		Revenues:         map[string]models.BudgetItem{},
	}
	if prev != nil {
		ts.Pop = prev.Pop
		ts.Hype = prev.Hype
		ts.Cash = prev.Cash
		ts.OwnerMood = prev.OwnerMood
		ts.StadiumCapacity = prev.StadiumCapacity
	}

	for _, item := range BudgetItems {
		ts.Budget[item] = models.BudgetItem{
			Amount: defaultBudgetAmount(g, t.PopRank),
			Rank:   t.PopRank,
		}
		ts.Expenses[item] = models.BudgetItem{Rank: t.PopRank}
	}
	ts.Revenues["ticket"] = models.BudgetItem{Rank: t.PopRank}
	return ts
}

// GenStatsRow builds an empty aggregate stat row for the current season.
func GenStatsRow(g *models.GameAttributes, tid int, playoffs bool) *models.TeamStats {
	return &models.TeamStats{
		TID:      tid,
		Season:   g.Season,
		Playoffs: playoffs,
	}
}

// RankLastThree averages a budget line's league rank over a team's three most
// recent season rows. With no rows at all it reports a middle-of-the-pack
// rank. The rank feeds scouting fuzz and coaching-driven development.
func RankLastThree(g *models.GameAttributes, rows []*models.TeamSeason, item string) int {
	sorted := make([]*models.TeamSeason, 0, len(rows))
	sorted = append(sorted, rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Season > sorted[j].Season })

	total, n := 0, 0
	for _, ts := range sorted {
		if n == 3 {
			break
		}
		if b, ok := ts.Budget[item]; ok {
			total += b.Rank
			n++
		}
	}
	if n == 0 {
		return (g.NumTeams + 1) / 2
	}
	return int(math.Round(float64(total) / float64(n)))
}
