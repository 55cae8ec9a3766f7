// Package league manages league lifecycle: bootstrap of a brand-new league,
// import of a league file, export back to one, and deletion. Bootstrap writes
// only to the cache; Create is where a league first touches the durable
// store.
package league

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mcdev12/courtside/internal/draft"
	"github.com/mcdev12/courtside/internal/freeagents"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

// numPastSeasons is how many historical draft classes seed a fresh league's
// player pool.
const numPastSeasons = 20

// CreateOptions parameterize league bootstrap.
type CreateOptions struct {
	Name           string
	TID            int // -1 picks a random team
	StartingSeason int
	Difficulty     float64

	// File is the imported league file; nil bootstraps a fresh league.
	File *models.LeagueFile
	// RandomizeRosters shuffles imported players across teams.
	RandomizeRosters bool
}

// CreateWithoutSaving fills an empty cache with a playable league: teams,
// game attributes, draft picks, and a full player population. Nothing is
// flushed; the caller decides when the league becomes durable.
func CreateWithoutSaving(ls *state.League, opts CreateOptions) error {
	file := opts.File
	if file == nil {
		file = &models.LeagueFile{}
	}

	teams := buildTeams(file)

	userTid := opts.TID
	if userTid < 0 || userTid >= len(teams) {
		userTid = ls.Rand.RandInt(0, len(teams)-1)
	}

	g, err := buildGameAttributes(file, teams, userTid, opts)
	if err != nil {
		return err
	}
	ls.Cache.PutGameAttributes(g)

	for _, t := range teams {
		ls.Cache.Teams.Put(t)
	}

	// Draft picks for the first four drafts, the ones tradable from day one.
	if len(file.DraftPicks) > 0 {
		for i := range file.DraftPicks {
			dp := file.DraftPicks[i]
			ls.Cache.DraftPicks.Put(&dp)
		}
	} else {
		draft.GenPicks(ls, g.Season, 4)
	}
	for i := range file.DraftLotteryResults {
		r := file.DraftLotteryResults[i]
		ls.Cache.DraftLotteryResults.Put(&r)
	}

	fillTeamRows(ls, file, teams)
	scoutingRank := team.RankLastThree(g, ls.Cache.TeamSeasons.Find(func(ts *models.TeamSeason) bool {
		return ts.TID == userTid
	}), "scouting")

	fillTrade(ls, file, userTid)
	fillPassthrough(ls, file)

	if file.HasPlayers() {
		if err := importPlayers(ls, file, opts.RandomizeRosters, scoutingRank); err != nil {
			return err
		}
	} else {
		if err := generatePlayers(ls, scoutingRank); err != nil {
			return err
		}
	}

	topUpDraftClasses(ls, scoutingRank)
	return nil
}

func buildTeams(file *models.LeagueFile) []*models.Team {
	defaults := team.DefaultTeams()
	if !file.HasTeams() {
		return defaults
	}

	teams := make([]*models.Team, len(file.Teams))
	for i := range file.Teams {
		t := file.Teams[i]
		// Sparse rows in files smaller than the default league borrow the
		// default identity for their slot.
		if i < len(defaults) {
			d := defaults[i]
			if t.Region == "" && t.Name == "" && t.Abbrev == "" {
				t.Region, t.Name, t.Abbrev = d.Region, d.Name, d.Abbrev
				t.CID, t.DID = d.CID, d.DID
			}
			if t.Pop == 0 {
				t.Pop = d.Pop
			}
		}
		t.TID = i
		teams[i] = &t
	}
	team.AddPopRank(teams)
	return teams
}

func buildGameAttributes(file *models.LeagueFile, teams []*models.Team, userTid int, opts CreateOptions) (*models.GameAttributes, error) {
	g := models.DefaultGameAttributes()
	g.Season = opts.StartingSeason
	g.StartingSeason = opts.StartingSeason

	// Imported attributes merge over defaults, but the user's form input wins
	// for the team, name, and difficulty.
	if len(file.GameAttributes) > 0 {
		if err := json.Unmarshal(file.GameAttributes, g); err != nil {
			return nil, fmt.Errorf("decode gameAttributes: %w", err)
		}
	}
	g.UserTID = userTid
	g.LeagueName = opts.Name
	g.Difficulty = opts.Difficulty
	if !g.IsUserTeam(userTid) {
		g.UserTIDs = []int{userTid}
	}
	if opts.Difficulty <= models.DifficultyEasy {
		g.EasyDifficultyInPast = true
	}

	g.NumTeams = len(teams)
	// No firings for the first two seasons.
	g.GracePeriodEnd = g.StartingSeason + 2

	g.TeamAbbrevsCache = make([]string, len(teams))
	g.TeamRegionsCache = make([]string, len(teams))
	g.TeamNamesCache = make([]string, len(teams))
	for i, t := range teams {
		g.TeamAbbrevsCache[i] = t.Abbrev
		g.TeamRegionsCache[i] = t.Region
		g.TeamNamesCache[i] = t.Name
	}
	return g, nil
}

func fillTeamRows(ls *state.League, file *models.LeagueFile, teams []*models.Team) {
	g := ls.G()

	imported := map[int]bool{}
	for i := range file.TeamSeasons {
		ts := file.TeamSeasons[i]
		if ts.StadiumCapacity == 0 {
			ts.StadiumCapacity = 25000
		}
		imported[ts.TID] = true
		ls.Cache.TeamSeasons.Add(&ts)
	}
	importedStats := map[int]bool{}
	for i := range file.TeamStats {
		st := file.TeamStats[i]
		importedStats[st.TID] = true
		ls.Cache.TeamStats.Add(&st)
	}

	for _, t := range teams {
		if !imported[t.TID] {
			ls.Cache.TeamSeasons.Add(team.GenSeasonRow(g, ls.Rand, t, nil))
		}
		if !importedStats[t.TID] {
			ls.Cache.TeamStats.Add(team.GenStatsRow(g, t.TID, false))
		}
	}
}

func fillTrade(ls *state.League, file *models.LeagueFile, userTid int) {
	if len(file.Trade) > 0 {
		for i := range file.Trade {
			tr := file.Trade[i]
			ls.Cache.Trade.Put(&tr)
		}
		return
	}
	other := 0
	if userTid == 0 {
		other = 1
	}
	ls.Cache.Trade.Put(&models.Trade{
		RID: 0,
		Teams: []models.TradeSide{
			{TID: userTid, PIDs: []int{}, DPIDs: []int{}},
			{TID: other, PIDs: []int{}, DPIDs: []int{}},
		},
	})
}

// fillPassthrough copies the collections that bootstrap never synthesizes.
func fillPassthrough(ls *state.League, file *models.LeagueFile) {
	for i := range file.Schedule {
		sg := file.Schedule[i]
		ls.Cache.Schedule.Put(&sg)
	}
	for i := range file.PlayoffSeries {
		ps := file.PlayoffSeries[i]
		ls.Cache.PlayoffSeries.Put(&ps)
	}
	for i := range file.Negotiations {
		n := file.Negotiations[i]
		ls.Cache.Negotiations.Put(&n)
	}
	for i := range file.Messages {
		m := file.Messages[i]
		ls.Cache.Messages.Put(&m)
	}
	for i := range file.Games {
		gm := file.Games[i]
		ls.Cache.Games.Put(&gm)
	}
	for i := range file.Events {
		e := file.Events[i]
		ls.Cache.Events.Put(&e)
	}
	for i := range file.ReleasedPlayers {
		rp := file.ReleasedPlayers[i]
		ls.Cache.ReleasedPlayers.Put(&rp)
	}
	for i := range file.Awards {
		a := file.Awards[i]
		ls.Cache.Awards.Put(&a)
	}
	for i := range file.PlayerFeats {
		f := file.PlayerFeats[i]
		ls.Cache.PlayerFeats.Put(&f)
	}
}

func importPlayers(ls *state.League, file *models.LeagueFile, randomize bool, scoutingRank int) error {
	g := ls.G()

	if randomize {
		// Only established players swap teams; prospects stay in their
		// classes.
		var tids []int
		for i := range file.Players {
			if file.Players[i].TID > models.SlotFreeAgent {
				tids = append(tids, int(file.Players[i].TID))
			}
		}
		random.Shuffle(ls.Rand, tids)
		for i := range file.Players {
			p := &file.Players[i]
			if p.TID <= models.SlotFreeAgent {
				continue
			}
			p.TID = models.RosterSlot(tids[len(tids)-1])
			tids = tids[:len(tids)-1]
			if len(p.Stats) > 0 {
				p.Stats[len(p.Stats)-1].TID = int(p.TID)
				p.StatsTids = append(p.StatsTids, int(p.TID))
			}
		}
	}

	for i := range file.Players {
		p := file.Players[i]
		if err := player.AugmentPartialPlayer(g, ls.Rand, &p, scoutingRank); err != nil {
			return fmt.Errorf("player %d (%s): %w", i, p.Name(), err)
		}
		player.UpdateValues(g, &p)
		if p.PID > 0 {
			ls.Cache.Players.Put(&p)
		} else {
			ls.Cache.Players.Add(&p)
		}
	}
	return nil
}

// generatePlayers seeds a fresh league from twenty seasons of simulated draft
// classes: each class ages one more year than the next, retirements thin the
// pool, the best of the survivors fill rosters, and the next tier hits free
// agency.
func generatePlayers(ls *state.League, scoutingRank int) error {
	g := ls.G()

	var pool []*models.Player
	for i := 0; i < numPastSeasons; i++ {
		pool = append(pool, draft.GenPlayersWithoutSaving(g, ls.Rand, models.SlotUndrafted, scoutingRank, 0)...)
	}
	perSeason := len(pool) / numPastSeasons

	var kept []*models.Player
	aging := 0
	for i, p := range pool {
		if i%perSeason == 0 {
			aging++
		}
		player.Develop(g, ls.Rand, p, aging, (g.NumTeams+1)/2)
		p.Draft.Year -= aging
		player.UpdateValues(g, p)
		if !player.ShouldRetire(g, ls.Rand, p) {
			kept = append(kept, p)
		}
	}

	// 16 per team rather than 13 leaves room for minimum-contract fill-ins.
	if len(kept) < 16*g.NumTeams {
		return fmt.Errorf("only %d usable players generated for %d teams", len(kept), g.NumTeams)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Ratings[0].Pot > kept[j].Ratings[0].Pot
	})

	rostered := kept[:13*g.NumTeams]
	numFA := len(kept) - len(rostered)
	if numFA > 150 {
		numFA = 150
	}
	freeAgents := kept[len(rostered) : len(rostered)+numFA]

	random.Shuffle(ls.Rand, rostered)
	for i, p := range rostered {
		p.TID = models.RosterSlot(i / 13)
		player.SetContract(g, p, player.GenContract(g, ls.Rand, p, true, true), true)
		player.AddStatsRow(g, p, int(p.TID), g.Phase == models.PhasePlayoffs)
		ls.Cache.Players.Add(p)
	}

	baseMoods := freeagents.GenBaseMoods(ls)
	for _, p := range freeAgents {
		// Half the pool is a year into free agency already, so attrition
		// starts after the first season.
		p.YearsFreeAgent = 0
		if ls.Rand.Float64() > 0.5 {
			p.YearsFreeAgent = 1
		}
		player.SetContract(g, p, player.GenContract(g, ls.Rand, p, false, true), false)
		player.AddToFreeAgents(g, ls.Rand, p, g.Phase, baseMoods)
		ls.Cache.Players.Add(p)
	}
	return nil
}

// topUpDraftClasses fills the three future draft-class tiers to size,
// counting any prospects an imported file already carried. The top tier is
// skipped mid-cycle, after its draft has happened but before the classes
// shift.
func topUpDraftClasses(ls *state.League, scoutingRank int) {
	g := ls.G()
	size := draft.ClassSize(g)

	need := map[models.RosterSlot]int{
		models.SlotUndrafted:  size,
		models.SlotUndrafted2: size,
		models.SlotUndrafted3: size,
	}
	for slot := range need {
		need[slot] -= len(ls.Cache.PlayersByTeam(slot))
	}

	for _, slot := range []models.RosterSlot{models.SlotUndrafted, models.SlotUndrafted2, models.SlotUndrafted3} {
		if need[slot] <= 0 {
			continue
		}
		if slot == models.SlotUndrafted && g.Phase > models.PhaseDraftLottery && g.Phase < models.PhaseFreeAgency {
			continue
		}
		draft.GenPlayers(ls, slot, scoutingRank, need[slot])
	}
}
