package season

import (
	"testing"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/state/statetest"
	"github.com/mcdev12/courtside/internal/team"
)

func TestDivisionWeightedScheduleFillsBudget(t *testing.T) {
	g := models.DefaultGameAttributes()
	teams := team.DefaultTeams()

	games := DivisionWeighted{}.Schedule(g, teams)

	count := make(map[int]int)
	homes := make(map[int]int)
	for _, m := range games {
		count[m.HomeTID]++
		count[m.AwayTID]++
		homes[m.HomeTID]++
	}
	for _, tm := range teams {
		if count[tm.TID] != g.NumGames {
			t.Errorf("team %d has %d games, want %d", tm.TID, count[tm.TID], g.NumGames)
		}
		if homes[tm.TID] != g.NumGames/2 {
			t.Errorf("team %d has %d home games, want %d", tm.TID, homes[tm.TID], g.NumGames/2)
		}
	}

	// Division rivals meet more often than cross-conference opponents.
	pair := func(a, b int) int {
		n := 0
		for _, m := range games {
			if (m.HomeTID == a && m.AwayTID == b) || (m.HomeTID == b && m.AwayTID == a) {
				n++
			}
		}
		return n
	}
	// Boston and New York share a division; Boston and Los Angeles do not
	// share a conference.
	if div, cross := pair(2, 16), pair(2, 11); div <= cross {
		t.Errorf("division pair plays %d, cross-conference pair plays %d", div, cross)
	}
}

func TestDivisionWeightedScheduleSmallLeague(t *testing.T) {
	g := models.DefaultGameAttributes()
	g.NumTeams = 4
	g.NumGames = 8
	teams := []*models.Team{
		{TID: 0, CID: 0, DID: 0}, {TID: 1, CID: 0, DID: 0},
		{TID: 2, CID: 1, DID: 1}, {TID: 3, CID: 1, DID: 1},
	}

	games := DivisionWeighted{}.Schedule(g, teams)
	count := make(map[int]int)
	for _, m := range games {
		count[m.HomeTID]++
		count[m.AwayTID]++
	}
	for tid := 0; tid < 4; tid++ {
		if count[tid] != 8 {
			t.Errorf("team %d has %d games, want 8", tid, count[tid])
		}
	}
}

func TestSetScheduleReplaces(t *testing.T) {
	ls := statetest.NewLeague(t, 1)

	SetSchedule(ls, []Matchup{{HomeTID: 0, AwayTID: 1}, {HomeTID: 1, AwayTID: 0}})
	if ls.Cache.Schedule.Len() != 2 {
		t.Fatalf("schedule has %d games, want 2", ls.Cache.Schedule.Len())
	}

	SetSchedule(ls, []Matchup{{HomeTID: 2, AwayTID: 3}})
	if ls.Cache.Schedule.Len() != 1 {
		t.Fatalf("schedule has %d games after replace, want 1", ls.Cache.Schedule.Len())
	}
}

func addPlayer(ls *state.League, tid int, value float64, draftYear int) *models.Player {
	p := &models.Player{
		TID:       models.RosterSlot(tid),
		FirstName: "Award",
		LastName:  "Candidate",
		Value:     value,
		Draft:     models.DraftInfo{Year: draftYear},
	}
	ls.Cache.Players.Add(p)
	return p
}

func TestComputeAwards(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()

	ls.Cache.Teams.Put(&models.Team{TID: 0})
	ls.Cache.Teams.Put(&models.Team{TID: 1})

	veteran := addPlayer(ls, 0, 90, g.Season-8)
	rookie := addPlayer(ls, 1, 60, g.Season-1)
	addPlayer(ls, 1, 40, g.Season-1)

	award := ComputeAwards(ls)

	if award.MVP == nil || award.MVP.PID != veteran.PID {
		t.Fatalf("MVP = %+v, want pid %d", award.MVP, veteran.PID)
	}
	if award.ROY == nil || award.ROY.PID != rookie.PID {
		t.Fatalf("ROY = %+v, want pid %d", award.ROY, rookie.PID)
	}
	if len(veteran.Awards) != 1 || veteran.Awards[0].Type != "Most Valuable Player" {
		t.Errorf("MVP awards = %+v", veteran.Awards)
	}

	// A second run returns the stored result without granting again.
	ComputeAwards(ls)
	if len(veteran.Awards) != 1 {
		t.Errorf("re-run double-granted: %+v", veteran.Awards)
	}
}

func TestGrantChampionshipAwardsIdempotent(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()

	ls.Cache.TeamSeasons.Add(&models.TeamSeason{TID: 0, Season: g.Season, PlayoffRoundsWon: g.NumPlayoffRounds})
	ls.Cache.TeamSeasons.Add(&models.TeamSeason{TID: 1, Season: g.Season, PlayoffRoundsWon: 2})

	champ := addPlayer(ls, 0, 50, g.Season-5)
	loser := addPlayer(ls, 1, 50, g.Season-5)

	GrantChampionshipAwards(ls)
	GrantChampionshipAwards(ls)

	if len(champ.Awards) != 1 || champ.Awards[0].Type != "Won Championship" {
		t.Errorf("champion awards = %+v, want exactly one championship entry", champ.Awards)
	}
	if len(loser.Awards) != 0 {
		t.Errorf("non-champion got awards: %+v", loser.Awards)
	}
}

func TestUpdateOwnerMood(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()

	ls.Cache.TeamSeasons.Add(&models.TeamSeason{
		TID: 0, Season: g.Season,
		Won: 62, Lost: 20,
		PlayoffRoundsWon: g.NumPlayoffRounds,
		Cash:             30000,
	})

	deltas := UpdateOwnerMood(ls, 0)
	if deltas.Wins <= 0 {
		t.Errorf("62 wins should please the owner, delta = %f", deltas.Wins)
	}
	if deltas.Playoffs != 0.2 {
		t.Errorf("championship playoff delta = %f, want 0.2", deltas.Playoffs)
	}

	ts := team.SeasonRow(ls, 0, g.Season)
	if ts.OwnerMood.Total() <= 0 {
		t.Errorf("owner mood = %f after a title season", ts.OwnerMood.Total())
	}

	// Satisfaction saturates at 1 per component.
	for i := 0; i < 20; i++ {
		UpdateOwnerMood(ls, 0)
	}
	if ts.OwnerMood.Wins > 1 || ts.OwnerMood.Playoffs > 1 {
		t.Errorf("mood components exceed 1: %+v", ts.OwnerMood)
	}
}

func TestUpdateOwnerMoodMissedPlayoffs(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()

	ls.Cache.TeamSeasons.Add(&models.TeamSeason{
		TID: 0, Season: g.Season,
		Won: 20, Lost: 62,
		PlayoffRoundsWon: -1,
	})

	deltas := UpdateOwnerMood(ls, 0)
	if deltas.Wins >= 0 || deltas.Playoffs != -0.2 {
		t.Errorf("deltas = %+v, want negative wins and -0.2 playoffs", deltas)
	}
}

func TestGenMessage(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()
	g.UserTID = 0

	ls.Cache.TeamSeasons.Add(&models.TeamSeason{TID: 0, Season: g.Season, Won: 50, Lost: 32, PlayoffRoundsWon: 1})
	deltas := UpdateOwnerMood(ls, 0)
	GenMessage(ls, deltas)

	if ls.Cache.Messages.Len() != 1 {
		t.Fatalf("got %d messages, want 1", ls.Cache.Messages.Len())
	}
	m := ls.Cache.Messages.All()[0]
	if m.From != "The Owner" || m.Year != g.Season || m.Text == "" {
		t.Errorf("message = %+v", m)
	}
}
