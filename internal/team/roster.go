package team

import (
	"sort"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
)

// Payroll sums a team's current contract obligations, including salary still
// owed to released players.
func Payroll(ls *state.League, tid int) int {
	total := 0
	for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(tid)) {
		total += p.Contract.Amount
	}
	for _, rp := range ls.Cache.ReleasedPlayers.All() {
		if rp.TID == tid {
			total += rp.Contract.Amount
		}
	}
	return total
}

// SeasonRow returns a team's row for the given season, or nil if it has none.
func SeasonRow(ls *state.League, tid, season int) *models.TeamSeason {
	for _, ts := range ls.Cache.TeamSeasons.ByIndex(season) {
		if ts.TID == tid {
			return ts
		}
	}
	return nil
}

// RosterAutoSort orders a team's roster by current ability, best first, and
// writes the new order back to the cache.
func RosterAutoSort(ls *state.League, tid int) {
	players := ls.Cache.PlayersByTeam(models.RosterSlot(tid))
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].ValueNoPot != players[j].ValueNoPot {
			return players[i].ValueNoPot > players[j].ValueNoPot
		}
		return players[i].PID < players[j].PID
	})
	for i, p := range players {
		p.RosterOrder = i
		ls.Cache.Players.Put(p)
	}
}

// UpdateStrategies reclassifies every team as contending or rebuilding.
// A team with a winning-enough record contends; a team that has not played
// yet contends if its roster value is in the league's top half.
func UpdateStrategies(ls *state.League) {
	g := ls.G()

	rosterValue := make(map[int]float64, g.NumTeams)
	for _, t := range ls.Cache.Teams.All() {
		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(t.TID)) {
			rosterValue[t.TID] += p.Value
		}
	}

	ranked := make([]int, 0, len(rosterValue))
	for tid := range rosterValue {
		ranked = append(ranked, tid)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if rosterValue[ranked[i]] != rosterValue[ranked[j]] {
			return rosterValue[ranked[i]] > rosterValue[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	valueRank := make(map[int]int, len(ranked))
	for i, tid := range ranked {
		valueRank[tid] = i + 1
	}

	for _, t := range ls.Cache.Teams.All() {
		strategy := models.StrategyRebuilding

		ts := SeasonRow(ls, t.TID, g.Season)
		switch {
		case ts != nil && ts.Won+ts.Lost > 0:
			if ts.WinP() >= 0.45 {
				strategy = models.StrategyContending
			}
		default:
			if valueRank[t.TID] <= g.NumTeams/2 {
				strategy = models.StrategyContending
			}
		}

		if t.Strategy != strategy {
			t.Strategy = strategy
			ls.Cache.Teams.Put(t)
		}
	}
}
