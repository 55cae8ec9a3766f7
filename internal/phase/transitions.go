package phase

import (
	"context"
	"fmt"
	"sort"

	"github.com/mcdev12/courtside/internal/draft"
	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/freeagents"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/negotiation"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/season"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

func seasonRows(ls *state.League, tid int) []*models.TeamSeason {
	return ls.Cache.TeamSeasons.Find(func(ts *models.TeamSeason) bool { return ts.TID == tid })
}

func middleRank(g *models.GameAttributes) int { return (g.NumTeams + 1) / 2 }

// newPhasePreseason starts the next season: fresh team rows, a new ratings
// row for every active player, and one year of development.
func newPhasePreseason(ls *state.League) (Result, error) {
	g := ls.G()
	g.Season++
	ls.Cache.PutGameAttributes(g)

	coaching := make(map[int]int, g.NumTeams)
	scouting := make(map[int]int, g.NumTeams)
	for _, t := range ls.Cache.Teams.All() {
		rows := seasonRows(ls, t.TID)
		coaching[t.TID] = team.RankLastThree(g, rows, "coaching")
		scouting[t.TID] = team.RankLastThree(g, rows, "scouting")

		prev := team.SeasonRow(ls, t.TID, g.Season-1)
		ls.Cache.TeamSeasons.Add(team.GenSeasonRow(g, ls.Rand, t, prev))
		ls.Cache.TeamStats.Add(team.GenStatsRow(g, t.TID, false))
	}

	develop := func(p *models.Player, coachingRank, scoutingRank int) {
		player.AddRatingsRow(g, ls.Rand, p, scoutingRank)
		player.Develop(g, ls.Rand, p, 1, coachingRank)
		player.UpdateValues(g, p)
		ls.Cache.Players.Put(p)
	}

	// Free agents develop without anyone's coaching staff behind them.
	for _, p := range ls.Cache.PlayersByTeam(models.SlotFreeAgent) {
		develop(p, middleRank(g), middleRank(g))
	}
	for _, t := range ls.Cache.Teams.All() {
		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(t.TID)) {
			develop(p, coaching[t.TID], scouting[t.TID])
		}
	}

	return Result{UpdateEvents: []events.UpdateEvent{events.UpdatePlayerMovement, events.UpdateTeamFinances}}, nil
}

// newPhaseRegularSeason lays down the schedule and delivers the season-opening
// message, either the owner's welcome or an occasional note from the
// commissioner.
func newPhaseRegularSeason(ctx context.Context, ls *state.League, policy season.SchedulePolicy) (Result, error) {
	g := ls.G()
	if policy == nil {
		policy = season.DivisionWeighted{}
	}
	season.SetSchedule(ls, policy.Schedule(g, ls.Cache.Teams.All()))

	if g.AutoDeleteOldBoxScores {
		for _, game := range ls.Cache.Games.All() {
			ls.Cache.Games.Delete(game.GID)
		}
	}

	if g.ShowFirstOwnerMessage {
		season.GenMessage(ls, models.OwnerMood{})
		g.ShowFirstOwnerMessage = false
		ls.Cache.PutGameAttributes(g)
	} else if ls.Meta != nil && ls.AutoPlaySeasons == 0 {
		if err := maybeNag(ctx, ls); err != nil {
			return Result{}, err
		}
	}

	return Result{}, nil
}

// maybeNag sends the commissioner's occasional check-in messages. A
// process-wide counter caps how often the user hears from him across every
// league they ever create.
func maybeNag(ctx context.Context, ls *state.League) error {
	g := ls.G()

	nagged, err := ls.Meta.MetaAttributeInt(ctx, "nagged")
	if err != nil {
		return err
	}
	orig := nagged

	switch {
	case nagged == 0 && g.Season == g.StartingSeason+3:
		nagged = 1
		ls.Cache.Messages.Add(&models.Message{
			From: "The Commissioner",
			Year: g.Season,
			Text: "Three seasons in already. How do you like running a franchise? If anything about the league rubs you the wrong way, my office door is always open.",
		})
	case (nagged == 1 && ls.Rand.Float64() < 0.125) || (nagged >= 2 && ls.Rand.Float64() < 0.0125):
		nagged = 2
		ls.Cache.Messages.Add(&models.Message{
			From: "The Commissioner",
			Year: g.Season,
			Text: "Still at it, I see. The league grows when its owners talk it up, so if you are enjoying yourself, tell a friend to start a franchise of their own.",
		})
	}

	if nagged >= 2 && nagged <= 3 && ls.Rand.Float64() < 0.5 {
		nagged = 4
		ls.Cache.Messages.Add(&models.Message{
			From: "The Commissioner",
			Year: g.Season,
			Text: "A few owners have been asking about running leagues against each other. Keep an eye on your inbox; there may be news on that front soon.",
		})
	}

	if nagged == orig {
		return nil
	}
	return ls.Meta.SetMetaAttributeInt(ctx, "nagged", nagged)
}

// newPhasePlayoffs seeds the bracket from the standings and opens playoff
// stat rows for every qualifier.
func newPhasePlayoffs(ls *state.League) (Result, error) {
	g := ls.G()
	numPlayoffTeams := 1 << g.NumPlayoffRounds
	if numPlayoffTeams > g.NumTeams {
		return Result{}, fmt.Errorf("%d playoff teams but only %d teams in the league", numPlayoffTeams, g.NumTeams)
	}

	cid := make(map[int]int, g.NumTeams)
	for _, t := range ls.Cache.Teams.All() {
		cid[t.TID] = t.CID
	}

	rows := ls.Cache.TeamSeasons.ByIndex(g.Season)
	standings := make([]*models.TeamSeason, len(rows))
	copy(standings, rows)
	sortByRecord(standings)

	byConf := map[int][]*models.TeamSeason{}
	for _, ts := range standings {
		byConf[cid[ts.TID]] = append(byConf[cid[ts.TID]], ts)
	}

	perConf := numPlayoffTeams / 2
	var round []models.PlayoffMatchup
	if perConf == 1 {
		// One round means the two conference leaders meet directly, better
		// record at home.
		a, b := byConf[0], byConf[1]
		if len(a) == 0 || len(b) == 0 {
			return Result{}, fmt.Errorf("both conferences need at least one team for the final")
		}
		home, away := a[0], b[0]
		if away.WinP() > home.WinP() {
			home, away = away, home
		}
		round = append(round, models.PlayoffMatchup{
			Home: models.PlayoffSeriesTeam{TID: home.TID, Seed: 1},
			Away: models.PlayoffSeriesTeam{TID: away.TID, Seed: 1},
		})
	}
	for conf := 0; conf < 2; conf++ {
		seeds := byConf[conf]
		if len(seeds) < perConf {
			return Result{}, fmt.Errorf("conference %d has %d teams, need %d for the bracket", conf, len(seeds), perConf)
		}
		for i := 0; i < perConf/2; i++ {
			round = append(round, models.PlayoffMatchup{
				Home: models.PlayoffSeriesTeam{TID: seeds[i].TID, Seed: i + 1},
				Away: models.PlayoffSeriesTeam{TID: seeds[perConf-1-i].TID, Seed: perConf - i},
			})
		}
		for _, ts := range seeds[:perConf] {
			ts.PlayoffRoundsWon = 0
			ts.Hype += 0.05
			if ts.Hype > 1 {
				ts.Hype = 1
			}
			ls.Cache.TeamSeasons.Put(ts)

			ls.Cache.TeamStats.Add(team.GenStatsRow(g, ts.TID, true))
			for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(ts.TID)) {
				player.AddStatsRow(g, p, ts.TID, true)
				ls.Cache.Players.Put(p)
			}
		}
	}

	ls.Cache.PlayoffSeries.Put(&models.PlayoffSeries{
		Season:       g.Season,
		CurrentRound: 0,
		Series:       [][]models.PlayoffMatchup{round},
	})

	return Result{Redirect: "/playoffs"}, nil
}

func sortByRecord(rows []*models.TeamSeason) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinP() != rows[j].WinP() {
			return rows[i].WinP() > rows[j].WinP()
		}
		return rows[i].TID < rows[j].TID
	})
}

// newPhaseBeforeDraft closes out the season: awards, retirements, free-agent
// attrition, offseason healing, strategy updates, and the owner's review.
func newPhaseBeforeDraft(ls *state.League, liveGameSim bool) (Result, error) {
	g := ls.G()

	season.ComputeAwards(ls)
	season.GrantChampionshipAwards(ls)

	for _, p := range ls.Cache.Players.All() {
		if int(p.TID) < int(models.SlotFreeAgent) {
			continue
		}

		if player.ShouldRetire(g, ls.Rand, p) {
			player.Retire(g, p)
			events.Log(ls, models.Event{
				Type: "retired",
				Text: fmt.Sprintf("%s retired.", p.Name()),
				PIDs: []int{p.PID},
			})
			ls.Cache.Players.Put(p)
			continue
		}

		switch {
		case p.TID.FreeAgent():
			// A player unsigned for a full year gives up on a comeback.
			if p.YearsFreeAgent >= 1 {
				player.Retire(g, p)
				events.Log(ls, models.Event{
					Type: "retired",
					Text: fmt.Sprintf("%s retired.", p.Name()),
					PIDs: []int{p.PID},
				})
			} else {
				p.YearsFreeAgent++
				p.Contract.Exp++
			}
		case p.TID.OnTeam():
			p.YearsFreeAgent = 0
		}

		// The offseason is worth 82 games of healing.
		if p.Injury.GamesRemaining > 0 {
			if p.Injury.GamesRemaining <= 82 {
				p.Injury = models.Healthy()
			} else {
				p.Injury.GamesRemaining -= 82
			}
		}

		ls.Cache.Players.Put(p)
	}

	for _, rp := range ls.Cache.ReleasedPlayers.All() {
		if rp.Contract.Exp <= g.Season {
			ls.Cache.ReleasedPlayers.Delete(rp.RID)
		}
	}

	team.UpdateStrategies(ls)

	deltas := season.UpdateOwnerMood(ls, g.UserTID)
	season.GenMessage(ls, deltas)

	res := Result{
		Redirect:     "/history",
		UpdateEvents: []events.UpdateEvent{events.UpdatePlayerMovement},
	}
	if liveGameSim {
		res.Redirect = ""
	}
	return res, nil
}

func newPhaseDraftLottery(ls *state.League, policy draft.LotteryPolicy) (Result, error) {
	if err := draft.GenOrder(ls, policy); err != nil {
		return Result{}, err
	}
	return Result{Redirect: "/draft_lottery"}, nil
}

// newPhaseDraft tops up the incoming class if imports or edits left it empty.
func newPhaseDraft(ls *state.League) (Result, error) {
	g := ls.G()
	if len(ls.Cache.PlayersByTeam(models.SlotUndrafted)) == 0 {
		draft.GenPlayers(ls, models.SlotUndrafted, middleRank(g), 0)
	}
	return Result{Redirect: "/draft"}, nil
}

// newPhaseAfterDraft extends pick ownership another year out, keeping four
// future drafts' worth of picks on the books.
func newPhaseAfterDraft(ls *state.League) (Result, error) {
	g := ls.G()
	draft.GenPicks(ls, g.Season+1, 4)
	return Result{UpdateEvents: []events.UpdateEvent{events.UpdatePlayerMovement}}, nil
}

// newPhaseResignPlayers opens a re-signing negotiation for every expiring
// contract on the user's teams.
func newPhaseResignPlayers(ls *state.League) (Result, error) {
	g := ls.G()
	baseMoods := freeagents.GenBaseMoods(ls)

	for _, tid := range g.UserTIDs {
		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(tid)) {
			if p.Contract.Exp != g.Season {
				continue
			}

			mood := 0.0
			if tid >= 0 && tid < len(baseMoods) {
				mood = baseMoods[tid]
			}
			ask := player.GenContract(g, ls.Rand, p, false, true)
			years := ask.Exp - g.Season
			if years < 1 {
				years = 1
			}
			offer := models.NegotiationOffer{
				Amount: freeagents.AmountWithMood(g, ask.Amount, mood),
				Years:  years,
			}
			ls.Cache.Negotiations.Put(&models.Negotiation{
				PID:       p.PID,
				TID:       tid,
				Team:      offer,
				Player:    offer,
				Orig:      offer,
				Resigning: true,
			})
		}
	}

	return Result{Redirect: "/negotiation", UpdateEvents: []events.UpdateEvent{events.UpdatePlayerMovement}}, nil
}

// newPhaseFreeAgency opens the market: expiring contracts resolve, the
// incoming draft-class tiers shift forward, and the signing clock starts.
func newPhaseFreeAgency(ls *state.League) (Result, error) {
	g := ls.G()
	g.DaysLeft = 30
	ls.Cache.PutGameAttributes(g)

	negotiation.CancelAll(ls)
	baseMoods := freeagents.GenBaseMoods(ls)

	for _, t := range ls.Cache.Teams.All() {
		userControlled := g.IsUserTeam(t.TID) && ls.AutoPlaySeasons == 0

		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(t.TID)) {
			if p.Contract.Exp > g.Season {
				continue
			}

			if userControlled {
				// The user had their chance during the re-sign window.
				player.AddToFreeAgents(g, ls.Rand, p, models.PhaseResignPlayers, baseMoods)
				ls.Cache.Players.Put(p)
				continue
			}

			factor := 0.0
			if t.Strategy == models.StrategyRebuilding {
				factor = 0.4
			}
			contract := player.GenContract(g, ls.Rand, p, true, true)
			keeps := ls.Rand.Float64() < p.Value/100-factor &&
				team.Payroll(ls, t.TID)-p.Contract.Amount+contract.Amount <= g.SalaryCap
			if keeps {
				contract.Exp++ // the new deal starts next season
				player.SetContract(g, p, contract, true)
				events.Log(ls, models.Event{
					Type: "reSigned",
					Text: fmt.Sprintf("The %s re-signed %s for $%dk/year through %d.",
						g.TeamName(t.TID), p.Name(), contract.Amount, contract.Exp),
					PIDs: []int{p.PID},
					TIDs: []int{t.TID},
				})
				ls.Cache.Players.Put(p)
			} else {
				player.AddToFreeAgents(g, ls.Rand, p, models.PhaseFreeAgency, baseMoods)
				ls.Cache.Players.Put(p)
			}
		}
	}

	// Leftover prospects from this year's draft join the free-agent pool and
	// the later classes each move up a tier.
	for _, p := range ls.Cache.PlayersByTeam(models.SlotUndrafted) {
		player.AddToFreeAgents(g, ls.Rand, p, models.PhaseFreeAgency, baseMoods)
		ls.Cache.Players.Put(p)
	}
	for _, p := range ls.Cache.PlayersByTeam(models.SlotUndrafted2) {
		p.TID = models.SlotUndrafted
		ls.Cache.Players.Put(p)
	}
	for _, p := range ls.Cache.PlayersByTeam(models.SlotUndrafted3) {
		p.TID = models.SlotUndrafted2
		ls.Cache.Players.Put(p)
	}
	draft.GenPlayers(ls, models.SlotUndrafted3, middleRank(g), 0)

	return Result{
		Redirect:     "/free_agents",
		UpdateEvents: []events.UpdateEvent{events.UpdatePlayerMovement, events.UpdateTeamFinances},
	}, nil
}

// newPhaseFantasyDraft throws every rostered player back into the pool,
// contracts intact, and deals out a serpentine order.
func newPhaseFantasyDraft(ls *state.League) (Result, error) {
	g := ls.G()

	negotiation.CancelAll(ls)

	for _, t := range ls.Cache.Teams.All() {
		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(t.TID)) {
			p.TID = models.SlotUndrafted
			ls.Cache.Players.Put(p)
		}
	}

	// Old release obligations make no sense once every roster is rebuilt.
	for _, rp := range ls.Cache.ReleasedPlayers.All() {
		ls.Cache.ReleasedPlayers.Delete(rp.RID)
	}

	draft.GenOrderFantasy(ls, g.MaxRosterSize)

	return Result{
		Redirect:     "/draft",
		UpdateEvents: []events.UpdateEvent{events.UpdatePlayerMovement},
	}, nil
}
