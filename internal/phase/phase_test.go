package phase

import (
	"context"
	"errors"
	"testing"

	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/state/statetest"
)

func setupLeague(t *testing.T, numTeams int) *state.League {
	t.Helper()
	ls := statetest.NewLeague(t, 7)
	g := ls.G()
	g.NumTeams = numTeams
	g.NumGames = 8
	g.NumPlayoffRounds = 1
	for tid := 0; tid < numTeams; tid++ {
		ls.Cache.Teams.Put(&models.Team{
			TID: tid, CID: tid % 2, DID: tid % 2,
			PopRank:  tid + 1,
			Strategy: models.StrategyContending,
		})
	}
	return ls
}

func addRosterPlayer(ls *state.League, tid int, exp int) *models.Player {
	g := ls.G()
	p := player.Generate(g, ls.Rand, models.RosterSlot(tid), 25, g.Season-5, false, 15)
	p.Contract.Exp = exp
	ls.Cache.Players.Add(p)
	return p
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from, to models.Phase
		ok       bool
	}{
		{models.PhasePreseason, models.PhaseRegularSeason, true},
		{models.PhasePreseason, models.PhasePlayoffs, false},
		{models.PhaseRegularSeason, models.PhaseAfterTradeDeadline, true},
		{models.PhaseRegularSeason, models.PhaseFantasyDraft, false},
		{models.PhaseAfterTradeDeadline, models.PhaseFantasyDraft, true},
		{models.PhasePlayoffs, models.PhaseBeforeDraft, true},
		{models.PhasePlayoffs, models.PhasePreseason, false},
		{models.PhaseFreeAgency, models.PhasePreseason, true},
		{models.PhaseFreeAgency, models.PhaseRegularSeason, false},
	}
	for _, tt := range tests {
		g := models.DefaultGameAttributes()
		g.Phase = tt.from
		if got := transitionAllowed(g, tt.to); got != tt.ok {
			t.Errorf("%s -> %s: allowed = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestFantasyDraftReturnsToSavedPhase(t *testing.T) {
	g := models.DefaultGameAttributes()
	g.Phase = models.PhaseFantasyDraft

	if transitionAllowed(g, models.PhasePreseason) {
		t.Error("fantasy draft with no saved phase allowed a transition")
	}

	saved := models.PhasePreseason
	g.NextPhase = &saved
	if !transitionAllowed(g, models.PhasePreseason) {
		t.Error("transition to the saved phase rejected")
	}
	if transitionAllowed(g, models.PhaseRegularSeason) {
		t.Error("transition to a phase other than the saved one allowed")
	}
}

func TestNewPhaseRejectsBadTransition(t *testing.T) {
	ls := setupLeague(t, 4)
	ls.G().Phase = models.PhasePreseason

	if _, err := NewPhase(context.Background(), ls, models.PhasePlayoffs, Options{}); err == nil {
		t.Fatal("preseason to playoffs was accepted")
	}
	if ls.G().Phase != models.PhasePreseason {
		t.Errorf("phase changed to %s after a rejected transition", ls.G().Phase)
	}
}

func TestNewPhaseFailsFastWhenLocked(t *testing.T) {
	ls := setupLeague(t, 4)
	ls.G().Phase = models.PhaseRegularSeason
	ls.Locks.Set(lock.NewPhase, true)

	_, err := NewPhase(context.Background(), ls, models.PhaseAfterTradeDeadline, Options{})
	if !errors.Is(err, lock.ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
}

func TestNewPhaseAdvancesAndReleasesLock(t *testing.T) {
	ls := setupLeague(t, 4)
	ls.G().Phase = models.PhaseRegularSeason

	res, err := NewPhase(context.Background(), ls, models.PhaseAfterTradeDeadline, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if ls.G().Phase != models.PhaseAfterTradeDeadline {
		t.Errorf("phase = %s, want after trade deadline", ls.G().Phase)
	}
	if ls.Locks.Get(lock.NewPhase) {
		t.Error("newPhase lock still held after the transition")
	}
	if len(res.UpdateEvents) == 0 {
		t.Error("no update events emitted")
	}
}

func TestPreseasonStartsNewSeason(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhaseFreeAgency
	p := addRosterPlayer(ls, 0, g.Season+2)
	rowsBefore := len(p.Ratings)
	seasonBefore := g.Season

	if _, err := NewPhase(context.Background(), ls, models.PhasePreseason, Options{}); err != nil {
		t.Fatal(err)
	}

	if g.Season != seasonBefore+1 {
		t.Errorf("season = %d, want %d", g.Season, seasonBefore+1)
	}
	if len(ls.Cache.TeamSeasons.ByIndex(g.Season)) != 4 {
		t.Errorf("got %d team season rows", len(ls.Cache.TeamSeasons.ByIndex(g.Season)))
	}
	if len(p.Ratings) != rowsBefore+1 {
		t.Errorf("player has %d ratings rows, want %d", len(p.Ratings), rowsBefore+1)
	}
	if p.CurrentRatings().Season != g.Season {
		t.Errorf("latest ratings row season = %d, want %d", p.CurrentRatings().Season, g.Season)
	}
}

func TestRegularSeasonSchedulesAndWelcomes(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhasePreseason
	g.ShowFirstOwnerMessage = true

	if _, err := NewPhase(context.Background(), ls, models.PhaseRegularSeason, Options{}); err != nil {
		t.Fatal(err)
	}

	if got := ls.Cache.Schedule.Len(); got != 4*g.NumGames/2 {
		t.Errorf("schedule has %d games, want %d", got, 4*g.NumGames/2)
	}
	if g.ShowFirstOwnerMessage {
		t.Error("first owner message flag still set")
	}
	if ls.Cache.Messages.Len() != 1 {
		t.Errorf("got %d messages, want the owner's welcome", ls.Cache.Messages.Len())
	}
}

func TestRegularSeasonNagCounter(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhasePreseason
	g.ShowFirstOwnerMessage = false
	g.Season = g.StartingSeason + 3

	if _, err := newPhaseRegularSeason(context.Background(), ls, nil); err != nil {
		t.Fatal(err)
	}

	meta := ls.Meta.(*statetest.Meta)
	if meta.Ints["nagged"] < 1 {
		t.Errorf("nagged = %d, want at least 1", meta.Ints["nagged"])
	}
	if ls.Cache.Messages.Len() == 0 {
		t.Error("no commissioner message sent")
	}
}

func TestPlayoffsSeedsBracket(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhaseAfterTradeDeadline

	// Conference 0 holds teams 0 and 1, conference 1 holds 2 and 3, so the
	// leaders below are 0 (6-2) and 2 (5-3).
	for tid := 0; tid < 4; tid++ {
		tm, _ := ls.Cache.Teams.Get(tid)
		tm.CID = tid / 2
		tm.DID = tid / 2
		ls.Cache.Teams.Put(tm)
	}

	records := []struct{ won, lost int }{{6, 2}, {2, 6}, {5, 3}, {3, 5}}
	for tid, r := range records {
		ls.Cache.TeamSeasons.Add(&models.TeamSeason{
			TID: tid, Season: g.Season,
			Won: r.won, Lost: r.lost,
			PlayoffRoundsWon: -1,
		})
		addRosterPlayer(ls, tid, g.Season+1)
	}

	if _, err := NewPhase(context.Background(), ls, models.PhasePlayoffs, Options{}); err != nil {
		t.Fatal(err)
	}

	ps, ok := ls.Cache.PlayoffSeries.Get(g.Season)
	if !ok {
		t.Fatal("no playoff series stored")
	}
	if len(ps.Series) != 1 || len(ps.Series[0]) != 1 {
		t.Fatalf("bracket shape = %+v", ps.Series)
	}
	m := ps.Series[0][0]
	if m.Home.TID != 0 || m.Away.TID != 2 {
		t.Errorf("matchup %d vs %d, want conference winners 0 vs 2", m.Home.TID, m.Away.TID)
	}

	for _, tid := range []int{0, 2} {
		ts := ls.Cache.TeamSeasons.ByIndex(g.Season)
		for _, row := range ts {
			if row.TID == tid && row.PlayoffRoundsWon != 0 {
				t.Errorf("qualifier %d has playoffRoundsWon %d, want 0", tid, row.PlayoffRoundsWon)
			}
		}
	}
}

func TestBeforeDraftChampionshipGrantedOnce(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhasePlayoffs

	for tid := 0; tid < 4; tid++ {
		rounds := -1
		if tid == 0 {
			rounds = g.NumPlayoffRounds
		}
		ls.Cache.TeamSeasons.Add(&models.TeamSeason{
			TID: tid, Season: g.Season,
			Won: 4, Lost: 4,
			PlayoffRoundsWon: rounds,
		})
	}
	champ := addRosterPlayer(ls, 0, g.Season+2)

	if _, err := NewPhase(context.Background(), ls, models.PhaseBeforeDraft, Options{}); err != nil {
		t.Fatal(err)
	}
	// A crashed and re-run boundary must not double-grant.
	if _, err := newPhaseBeforeDraft(ls, false); err != nil {
		t.Fatal(err)
	}

	n := 0
	for _, a := range champ.Awards {
		if a.Season == g.Season && a.Type == "Won Championship" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("championship granted %d times, want 1", n)
	}
}

func TestBeforeDraftFreeAgentAttrition(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhasePlayoffs

	fresh := addRosterPlayer(ls, 0, g.Season)
	fresh.TID = models.SlotFreeAgent
	fresh.YearsFreeAgent = 0
	fresh.CurrentRatings().Pot = 60 // nobody this good retires at 25
	ls.Cache.Players.Put(fresh)

	stale := addRosterPlayer(ls, 0, g.Season)
	stale.TID = models.SlotFreeAgent
	stale.YearsFreeAgent = 1
	stale.CurrentRatings().Pot = 60
	ls.Cache.Players.Put(stale)

	hurt := addRosterPlayer(ls, 1, g.Season+2)
	hurt.Injury = models.Injury{Type: "Torn ACL", GamesRemaining: 100}
	hurt.CurrentRatings().Pot = 60
	ls.Cache.Players.Put(hurt)

	if _, err := newPhaseBeforeDraft(ls, false); err != nil {
		t.Fatal(err)
	}

	if !stale.TID.Retired() {
		t.Error("player unsigned for a full year did not retire")
	}
	if fresh.TID.Retired() {
		t.Error("first-year free agent retired")
	}
	if !fresh.TID.Retired() && fresh.YearsFreeAgent != 1 {
		t.Errorf("yearsFreeAgent = %d, want 1", fresh.YearsFreeAgent)
	}
	if hurt.Injury.GamesRemaining != 18 {
		t.Errorf("injury games remaining = %d, want 18 after offseason healing", hurt.Injury.GamesRemaining)
	}
}

func TestFreeAgencyShiftsDraftClasses(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhaseResignPlayers

	leftover := player.Generate(g, ls.Rand, models.SlotUndrafted, 19, g.Season, false, 15)
	ls.Cache.Players.Add(leftover)
	next := player.Generate(g, ls.Rand, models.SlotUndrafted2, 19, g.Season+1, false, 15)
	ls.Cache.Players.Add(next)

	if _, err := NewPhase(context.Background(), ls, models.PhaseFreeAgency, Options{}); err != nil {
		t.Fatal(err)
	}

	if g.DaysLeft != 30 {
		t.Errorf("daysLeft = %d, want 30", g.DaysLeft)
	}
	if !leftover.TID.FreeAgent() {
		t.Errorf("undrafted leftover tid = %d, want free agent", leftover.TID)
	}
	if next.TID != models.SlotUndrafted {
		t.Errorf("next class tid = %d, want top tier", next.TID)
	}
	if len(ls.Cache.PlayersByTeam(models.SlotUndrafted3)) == 0 {
		t.Error("deepest class was not refilled")
	}
}

func TestResignPlayersOpensNegotiations(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhaseAfterDraft
	g.UserTID = 0
	g.UserTIDs = []int{0}

	expiring := addRosterPlayer(ls, 0, g.Season)
	addRosterPlayer(ls, 0, g.Season+2)
	addRosterPlayer(ls, 1, g.Season) // not the user's problem

	if _, err := NewPhase(context.Background(), ls, models.PhaseResignPlayers, Options{}); err != nil {
		t.Fatal(err)
	}

	if ls.Cache.Negotiations.Len() != 1 {
		t.Fatalf("got %d negotiations, want 1", ls.Cache.Negotiations.Len())
	}
	n, ok := ls.Cache.Negotiations.Get(expiring.PID)
	if !ok {
		t.Fatal("no negotiation for the expiring player")
	}
	if !n.Resigning || n.TID != 0 {
		t.Errorf("negotiation = %+v", n)
	}
	if n.Player.Years < 1 || n.Player.Amount < g.MinContract {
		t.Errorf("seeded offer = %+v", n.Player)
	}
}

func TestFantasyDraftRoundTrip(t *testing.T) {
	ls := setupLeague(t, 4)
	g := ls.G()
	g.Phase = models.PhasePreseason

	p := addRosterPlayer(ls, 2, g.Season+3)
	contract := p.Contract

	if _, err := NewPhase(context.Background(), ls, models.PhaseFantasyDraft, Options{}); err != nil {
		t.Fatal(err)
	}

	if p.TID != models.SlotUndrafted {
		t.Errorf("rostered player tid = %d, want undrafted pool", p.TID)
	}
	if p.Contract != contract {
		t.Errorf("contract changed entering the fantasy draft: %+v", p.Contract)
	}
	if g.NextPhase == nil || *g.NextPhase != models.PhasePreseason {
		t.Fatalf("nextPhase = %v, want preseason", g.NextPhase)
	}
	if got := ls.Cache.DraftPicks.Len(); got != 4*g.MaxRosterSize {
		t.Errorf("got %d fantasy picks, want %d", got, 4*g.MaxRosterSize)
	}

	if _, err := NewPhase(context.Background(), ls, models.PhasePreseason, Options{}); err != nil {
		t.Fatal(err)
	}
	if g.NextPhase != nil {
		t.Error("nextPhase not cleared after returning from the fantasy draft")
	}
	if g.Phase != models.PhasePreseason {
		t.Errorf("phase = %s, want preseason", g.Phase)
	}
}
