// Package draft runs the annual draft: prospect class generation, the
// lottery, pick-order resolution, and the consumption of picks one selection
// at a time. Fantasy drafts reuse the same pick plumbing under the "fantasy"
// season tag.
package draft

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

// ClassSize returns the target number of prospects in one draft-class tier,
// scaled to the league size.
func ClassSize(g *models.GameAttributes) int {
	return int(float64(70*g.NumTeams)/30 + 0.5)
}

// GenPlayersWithoutSaving builds a draft class for the given undrafted tier.
// The returned players have no pids; the caller stores them.
func GenPlayersWithoutSaving(g *models.GameAttributes, rng *random.Source, tid models.RosterSlot, scoutingRank, numPlayers int) []*models.Player {
	if numPlayers <= 0 {
		numPlayers = ClassSize(g)
	}

	draftYear := g.Season + tid.UndraftedTier() - 1
	if g.Phase >= models.PhaseAfterDraft {
		// This season's draft already happened.
		draftYear++
	}

	players := make([]*models.Player, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		p := player.Generate(g, rng, tid, 19, draftYear, false, scoutingRank)
		player.Develop(g, rng, p, 0, (g.NumTeams+1)/2)
		player.UpdateValues(g, p)
		players = append(players, p)
	}
	return players
}

// GenPlayers builds a draft class and stores it in the cache.
func GenPlayers(ls *state.League, tid models.RosterSlot, scoutingRank, numPlayers int) {
	for _, p := range GenPlayersWithoutSaving(ls.G(), ls.Rand, tid, scoutingRank, numPlayers) {
		ls.Cache.Players.Add(p)
	}
}

// GenPicks ensures every team owns its own picks for numSeasons drafts
// beginning with firstSeason, two rounds each. Picks already present
// (possibly traded) are left alone.
func GenPicks(ls *state.League, firstSeason, numSeasons int) {
	g := ls.G()
	existing := map[string]bool{}
	for _, dp := range ls.Cache.DraftPicks.All() {
		existing[fmt.Sprintf("%d/%d/%s", dp.OriginalTID, dp.Round, dp.Season)] = true
	}

	for season := firstSeason; season < firstSeason+numSeasons; season++ {
		for tid := 0; tid < g.NumTeams; tid++ {
			for round := 1; round <= 2; round++ {
				key := fmt.Sprintf("%d/%d/%d", tid, round, season)
				if existing[key] {
					continue
				}
				ls.Cache.DraftPicks.Add(&models.DraftPick{
					TID:         tid,
					OriginalTID: tid,
					Round:       round,
					Season:      strconv.Itoa(season),
				})
			}
		}
	}
}

// GetOrder returns the current draft's unresolved picks in selection order.
func GetOrder(ls *state.League) []*models.DraftPick {
	season := strconv.Itoa(ls.G().Season)
	if hasFantasyPicks(ls) {
		season = models.FantasySeason
	}

	picks := ls.Cache.DraftPicks.Find(func(dp *models.DraftPick) bool {
		return dp.Season == season && dp.Pick > 0
	})
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Round != picks[j].Round {
			return picks[i].Round < picks[j].Round
		}
		return picks[i].Pick < picks[j].Pick
	})
	return picks
}

func hasFantasyPicks(ls *state.League) bool {
	return len(ls.Cache.DraftPicks.Find(func(dp *models.DraftPick) bool {
		return dp.Season == models.FantasySeason
	})) > 0
}

// SelectPlayer consumes one pick: the prospect joins the picking team on a
// rookie-scale contract and the pick is deleted. Exactly one pick is resolved
// per call.
func SelectPlayer(ls *state.League, dp *models.DraftPick, pid int) error {
	g := ls.G()

	p, ok := ls.Cache.Players.Get(pid)
	if !ok {
		return fmt.Errorf("player %d not found", pid)
	}
	if p.TID.UndraftedTier() != 1 {
		return fmt.Errorf("player %d is not in the current draft class", pid)
	}

	r := p.CurrentRatings()
	p.TID = models.RosterSlot(dp.TID)
	p.Draft = models.DraftInfo{
		Round:       dp.Round,
		Pick:        dp.Pick,
		TID:         dp.TID,
		OriginalTID: dp.OriginalTID,
		Year:        g.Season,
		Ovr:         r.Ovr,
		Pot:         r.Pot,
		Skills:      r.Skills,
	}

	// Rookie contracts scale down by draft position. Fantasy drafts keep the
	// contracts players already have.
	if g.Phase != models.PhaseFantasyDraft {
		years := 4 - dp.Round
		slot := dp.Pick + (dp.Round-1)*g.NumTeams
		amount := rookieAmount(g, slot)
		player.SetContract(g, p, models.Contract{Amount: amount, Exp: g.Season + years}, true)
	}
	player.UpdateValues(g, p)

	ls.Cache.Players.Put(p)
	ls.Cache.DraftPicks.Delete(dp.DPID)
	team.RosterAutoSort(ls, dp.TID)
	return nil
}

// UntilUserOrEnd resolves picks for AI teams until the next pick belongs to
// the user or no picks remain. While auto-play is on the user's picks are
// resolved too. Returns the resolved picks in selection order.
func UntilUserOrEnd(ls *state.League) ([]*models.DraftPick, error) {
	g := ls.G()
	if g.Phase != models.PhaseDraft && g.Phase != models.PhaseFantasyDraft {
		return nil, fmt.Errorf("no draft in progress during %s", g.Phase)
	}

	var made []*models.DraftPick
	for {
		order := GetOrder(ls)
		if len(order) == 0 {
			return made, nil
		}
		dp := order[0]
		if g.IsUserTeam(dp.TID) && ls.AutoPlaySeasons == 0 {
			return made, nil
		}

		prospects := ls.Cache.Players.Find(func(p *models.Player) bool {
			return p.TID.UndraftedTier() == 1
		})
		if len(prospects) == 0 {
			return made, nil
		}

		// AI boards mostly agree on talent, but not exactly.
		best := prospects[0]
		bestScore := best.Value + ls.Rand.Uniform(-2, 2)
		for _, p := range prospects[1:] {
			if score := p.Value + ls.Rand.Uniform(-2, 2); score > bestScore {
				best, bestScore = p, score
			}
		}

		if err := SelectPlayer(ls, dp, best.PID); err != nil {
			return made, err
		}
		made = append(made, dp)
	}
}

// rookieAmount interpolates the rookie salary scale from the first overall
// slot down to the minimum.
func rookieAmount(g *models.GameAttributes, slot int) int {
	top := float64(g.MaxContract) / 4
	bottom := float64(g.MinContract)
	total := 2 * g.NumTeams
	frac := float64(slot-1) / float64(total-1)
	amount := top - (top-bottom)*frac
	if amount < bottom {
		amount = bottom
	}
	return 50 * int(math.Round(amount/50))
}
