package team

import (
	"testing"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state/statetest"
)

func TestDefaultTeams(t *testing.T) {
	teams := DefaultTeams()
	if len(teams) != 30 {
		t.Fatalf("got %d teams, want 30", len(teams))
	}

	byAbbrev := map[string]*models.Team{}
	for i, tm := range teams {
		if tm.TID != i {
			t.Errorf("team %d has tid %d", i, tm.TID)
		}
		byAbbrev[tm.Abbrev] = tm
	}

	// Largest and smallest markets anchor the rank order.
	if got := byAbbrev["MXC"].PopRank; got != 1 {
		t.Errorf("Mexico City popRank = %d, want 1", got)
	}
	if got := byAbbrev["NYC"].PopRank; got != 2 {
		t.Errorf("New York popRank = %d, want 2", got)
	}
}

func TestAddPopRankIndependentOfOrder(t *testing.T) {
	build := func() []*models.Team {
		return []*models.Team{
			{TID: 0, Pop: 2.0},
			{TID: 1, Pop: 8.0},
			{TID: 2, Pop: 2.0},
			{TID: 3, Pop: 5.0},
		}
	}

	a := build()
	AddPopRank(a)

	b := build()
	b[0], b[3] = b[3], b[0]
	AddPopRank(b)

	for i := range a {
		var match *models.Team
		for _, tm := range b {
			if tm.TID == a[i].TID {
				match = tm
			}
		}
		if match.PopRank != a[i].PopRank {
			t.Errorf("tid %d: rank %d vs %d depending on slice order", a[i].TID, a[i].PopRank, match.PopRank)
		}
	}

	// Ties break toward the lower tid.
	if a[0].PopRank != 3 || a[2].PopRank != 4 {
		t.Errorf("tied pops ranked %d and %d, want 3 and 4", a[0].PopRank, a[2].PopRank)
	}
}

func TestGenSeasonRowCarryover(t *testing.T) {
	g := models.DefaultGameAttributes()
	rng := random.NewSource(1)
	tm := &models.Team{TID: 4, Pop: 3.1, PopRank: 10}

	first := GenSeasonRow(g, rng, tm, nil)
	if first.Season != g.Season || first.TID != 4 {
		t.Fatalf("row = %+v", first)
	}
	if first.PlayoffRoundsWon != -1 {
		t.Errorf("playoffRoundsWon = %d, want -1", first.PlayoffRoundsWon)
	}
	if _, ok := first.Budget["scouting"]; !ok {
		t.Error("budget missing scouting line")
	}

	first.Hype = 0.9
	first.Cash = 55555
	g.Season++
	second := GenSeasonRow(g, rng, tm, first)
	if second.Hype != 0.9 || second.Cash != 55555 {
		t.Errorf("carryover lost: hype %f cash %d", second.Hype, second.Cash)
	}
	if second.Won != 0 || second.Lost != 0 {
		t.Error("record should reset each season")
	}
}

func TestRankLastThree(t *testing.T) {
	g := models.DefaultGameAttributes()
	rows := []*models.TeamSeason{
		{Season: 2023, Budget: map[string]models.BudgetItem{"scouting": {Rank: 30}}},
		{Season: 2024, Budget: map[string]models.BudgetItem{"scouting": {Rank: 10}}},
		{Season: 2025, Budget: map[string]models.BudgetItem{"scouting": {Rank: 4}}},
		{Season: 2026, Budget: map[string]models.BudgetItem{"scouting": {Rank: 1}}},
	}

	// Only the three most recent rows count: (1 + 4 + 10) / 3 = 5.
	if got := RankLastThree(g, rows, "scouting"); got != 5 {
		t.Errorf("rank = %d, want 5", got)
	}
	if got := RankLastThree(g, nil, "scouting"); got != 15 {
		t.Errorf("empty rank = %d, want 15", got)
	}
}

func TestPayroll(t *testing.T) {
	ls := statetest.NewLeague(t, 1)

	ls.Cache.Players.Add(&models.Player{TID: 0, Contract: models.Contract{Amount: 10000}})
	ls.Cache.Players.Add(&models.Player{TID: 0, Contract: models.Contract{Amount: 5000}})
	ls.Cache.Players.Add(&models.Player{TID: 1, Contract: models.Contract{Amount: 30000}})
	ls.Cache.ReleasedPlayers.Add(&models.ReleasedPlayer{TID: 0, Contract: models.Contract{Amount: 750}})

	if got := Payroll(ls, 0); got != 15750 {
		t.Errorf("payroll = %d, want 15750", got)
	}
	if got := Payroll(ls, 1); got != 30000 {
		t.Errorf("payroll = %d, want 30000", got)
	}
}

func TestRosterAutoSort(t *testing.T) {
	ls := statetest.NewLeague(t, 1)

	ls.Cache.Players.Add(&models.Player{TID: 2, ValueNoPot: 40, RosterOrder: 666})
	ls.Cache.Players.Add(&models.Player{TID: 2, ValueNoPot: 70, RosterOrder: 666})
	ls.Cache.Players.Add(&models.Player{TID: 2, ValueNoPot: 55, RosterOrder: 666})

	RosterAutoSort(ls, 2)

	wantOrder := map[float64]int{70: 0, 55: 1, 40: 2}
	for _, p := range ls.Cache.PlayersByTeam(2) {
		if want := wantOrder[p.ValueNoPot]; p.RosterOrder != want {
			t.Errorf("player value %.0f has order %d, want %d", p.ValueNoPot, p.RosterOrder, want)
		}
	}
}

func TestUpdateStrategies(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()

	ls.Cache.Teams.Put(&models.Team{TID: 0})
	ls.Cache.Teams.Put(&models.Team{TID: 1})

	ls.Cache.TeamSeasons.Add(&models.TeamSeason{TID: 0, Season: g.Season, Won: 50, Lost: 20})
	ls.Cache.TeamSeasons.Add(&models.TeamSeason{TID: 1, Season: g.Season, Won: 15, Lost: 55})

	UpdateStrategies(ls)

	if got, _ := ls.Cache.Teams.Get(0); got.Strategy != models.StrategyContending {
		t.Errorf("winning team strategy = %s", got.Strategy)
	}
	if got, _ := ls.Cache.Teams.Get(1); got.Strategy != models.StrategyRebuilding {
		t.Errorf("losing team strategy = %s", got.Strategy)
	}
}
