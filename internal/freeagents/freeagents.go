// Package freeagents runs the free-agent market: mood-adjusted demands, the
// refusal rule, the daily demand decay, and the pass where AI teams sign
// players.
package freeagents

import (
	"fmt"
	"math"
	"sort"

	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

// refuseThreshold is the mood-scaled demand above which a player will not
// negotiate at all, in thousands times mood.
const refuseThreshold = 9500

// AmountWithMood inflates a contract demand by the player's mood toward the
// negotiating team. The result is a multiple of 50 within the legal contract
// range.
func AmountWithMood(g *models.GameAttributes, amount int, mood float64) int {
	adjusted := float64(amount) * (1 + 0.2*mood)
	if adjusted <= float64(g.MinContract) {
		return g.MinContract
	}
	if adjusted > float64(g.MaxContract) {
		adjusted = float64(g.MaxContract)
	}
	return 50 * int(math.Round(adjusted/50))
}

// RefuseToNegotiate reports whether a player flatly refuses to talk. Minimum
// contract players never refuse; stars with a grudge always do.
func RefuseToNegotiate(amount int, mood float64) bool {
	return float64(amount)*mood > refuseThreshold
}

// AutoSign runs one signing pass for the AI teams. During free agency a team
// acts with low probability early and near-certainty as the days run out;
// in other phases every eligible team acts. The user's teams are skipped
// unless auto-play is on.
func AutoSign(ls *state.League) {
	g := ls.G()

	freeAgents := ls.Cache.PlayersByTeam(models.SlotFreeAgent)
	if len(freeAgents) == 0 {
		return
	}

	// Best players come off the board first.
	sorted := make([]*models.Player, len(freeAgents))
	copy(sorted, freeAgents)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	strategies := make(map[int]models.Strategy, g.NumTeams)
	for _, t := range ls.Cache.Teams.All() {
		strategies[t.TID] = t.Strategy
	}

	tids := make([]int, g.NumTeams)
	for i := range tids {
		tids[i] = i
	}
	random.Shuffle(ls.Rand, tids)

	for _, tid := range tids {
		if g.IsUserTeam(tid) && ls.AutoPlaySeasons == 0 {
			continue
		}
		if g.Phase == models.PhaseFreeAgency && ls.Rand.Float64() < 0.99*float64(g.DaysLeft)/30 {
			continue
		}
		if strategies[tid] == models.StrategyRebuilding && ls.Rand.Float64() < 0.7 {
			continue
		}

		numOnRoster := len(ls.Cache.PlayersByTeam(models.RosterSlot(tid)))
		if numOnRoster >= g.MaxRosterSize {
			continue
		}
		payroll := team.Payroll(ls, tid)

		for i, p := range sorted {
			// Minimum-contract players only fill out a thin roster.
			fits := p.Contract.Amount+payroll <= g.SalaryCap ||
				(p.Contract.Amount == g.MinContract && numOnRoster < g.MaxRosterSize-2)
			if !fits {
				continue
			}

			p.TID = models.RosterSlot(tid)
			if g.Phase <= models.PhasePlayoffs {
				player.AddStatsRow(g, p, tid, g.Phase == models.PhasePlayoffs)
			}
			player.SetContract(g, p, p.Contract, true)
			p.GamesUntilTradable = 15

			events.Log(ls, models.Event{
				Type: "freeAgent",
				Text: fmt.Sprintf("The %s signed %s for $%dk/year through %d.",
					g.TeamName(tid), p.Name(), p.Contract.Amount, p.Contract.Exp),
				PIDs: []int{p.PID},
				TIDs: []int{tid},
			})

			sorted = append(sorted[:i], sorted[i+1:]...)
			ls.Cache.Players.Put(p)
			team.RosterAutoSort(ls, tid)
			break
		}
	}
}

// DecreaseDemands runs once per simulated day: free agents lower their asking
// amounts, their resistance to signing decays, and they heal.
func DecreaseDemands(ls *state.League) {
	g := ls.G()

	for _, p := range ls.Cache.PlayersByTeam(models.SlotFreeAgent) {
		p.Contract.Amount -= 50 * int(math.Round(math.Sqrt(float64(g.MaxContract)/20000)))
		if p.Contract.Amount < g.MinContract {
			p.Contract.Amount = g.MinContract
		}

		if g.Phase != models.PhaseFreeAgency {
			// The season is already underway, so ask for a short deal.
			if p.Contract.Amount < 1000 {
				p.Contract.Exp = g.Season
			} else {
				p.Contract.Exp = g.Season + 1
			}
		}

		for i := range p.FreeAgentMood {
			p.FreeAgentMood[i] -= 0.075
			if p.FreeAgentMood[i] < 0 {
				p.FreeAgentMood[i] = 0
			}
		}

		if p.Injury.GamesRemaining > 0 {
			p.Injury.GamesRemaining--
		} else {
			p.Injury = models.Healthy()
		}

		ls.Cache.Players.Put(p)
	}
}

// GenBaseMoods computes each team's baseline desirability for players hitting
// free agency. A championship team is nearly irresistible; otherwise low hype
// and a small market push mood up (worse for the team).
func GenBaseMoods(ls *state.League) []float64 {
	g := ls.G()
	moods := make([]float64, g.NumTeams)

	for tid := range moods {
		ts := team.SeasonRow(ls, tid, g.Season)
		if ts == nil {
			moods[tid] = 0.5
			continue
		}
		if ts.PlayoffRoundsWon == g.NumPlayoffRounds && ls.Rand.Float64() < 0.99 {
			moods[tid] = -0.5 // winning cures everything
			continue
		}

		mood := 0.5 * (1 - ts.Hype)
		mood += 0.2 * (1 - ts.Pop/10)
		mood += ls.Rand.Uniform(-0.2, 0.2)
		moods[tid] = random.Bound(mood, 0, 1)
	}
	return moods
}
