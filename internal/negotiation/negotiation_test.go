package negotiation

import (
	"errors"
	"strings"
	"testing"

	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/state/statetest"
)

func addFreeAgent(ls *state.League, amount int, mood float64) *models.Player {
	g := ls.G()
	p := &models.Player{
		TID:       models.SlotFreeAgent,
		FirstName: "Bob",
		LastName:  "Barker",
		Born:      models.Born{Year: g.Season - 27},
		Ratings:   []models.PlayerRatings{{Season: g.Season, Ovr: 55, Pot: 60}},
		Contract:  models.Contract{Amount: amount, Exp: g.Season + 2},
		Injury:    models.Healthy(),
	}
	p.FreeAgentMood = make([]float64, g.NumTeams)
	for i := range p.FreeAgentMood {
		p.FreeAgentMood[i] = mood
	}
	ls.Cache.Players.Add(p)
	return p
}

func TestCreateRejections(t *testing.T) {
	t.Run("phase gate blocks new signings", func(t *testing.T) {
		ls := statetest.NewLeague(t, 1)
		ls.G().Phase = models.PhasePlayoffs
		p := addFreeAgent(ls, 2000, 0)

		err := Create(ls, p.PID, false, 0)
		var rej Rejection
		if !errors.As(err, &rej) {
			t.Fatalf("err = %v, want rejection", err)
		}

		// The same phase allows re-signings.
		if err := Create(ls, p.PID, true, 0); err != nil {
			t.Fatalf("resigning rejected: %v", err)
		}
	})

	t.Run("lock held", func(t *testing.T) {
		ls := statetest.NewLeague(t, 1)
		ls.G().Phase = models.PhaseFreeAgency
		p := addFreeAgent(ls, 2000, 0)
		ls.Locks.Set(lock.GameSim, true)

		if err := Create(ls, p.PID, false, 0); err == nil {
			t.Fatal("expected rejection while gameSim is held")
		}
	})

	t.Run("roster full", func(t *testing.T) {
		ls := statetest.NewLeague(t, 1)
		g := ls.G()
		g.Phase = models.PhaseFreeAgency
		for i := 0; i < g.MaxRosterSize; i++ {
			ls.Cache.Players.Add(&models.Player{TID: 0})
		}
		p := addFreeAgent(ls, 2000, 0)

		err := Create(ls, p.PID, false, 0)
		if err == nil || !strings.Contains(err.Error(), "roster is full") {
			t.Fatalf("err = %v, want roster-full rejection", err)
		}
	})

	t.Run("not a free agent", func(t *testing.T) {
		ls := statetest.NewLeague(t, 1)
		ls.G().Phase = models.PhaseFreeAgency
		p := addFreeAgent(ls, 2000, 0)
		p.TID = 5
		ls.Cache.Players.Put(p)

		err := Create(ls, p.PID, false, 0)
		if err == nil || !strings.Contains(err.Error(), "Bob Barker is not a free agent.") {
			t.Fatalf("err = %v, want not-a-free-agent rejection", err)
		}
	})

	t.Run("player refuses", func(t *testing.T) {
		ls := statetest.NewLeague(t, 1)
		ls.G().Phase = models.PhaseFreeAgency
		p := addFreeAgent(ls, 10000, 1)

		err := Create(ls, p.PID, false, 0)
		if err == nil || !strings.Contains(err.Error(), "refuses to sign") {
			t.Fatalf("err = %v, want refusal", err)
		}
	})
}

func TestCreateSeedsOffers(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()
	g.Phase = models.PhaseFreeAgency
	p := addFreeAgent(ls, 2000, 0.5)

	if err := Create(ls, p.PID, false, 3); err != nil {
		t.Fatal(err)
	}

	n, ok := ls.Cache.Negotiations.Get(p.PID)
	if !ok {
		t.Fatal("negotiation not stored")
	}
	if n.TID != 3 || n.Resigning {
		t.Errorf("negotiation = %+v", n)
	}
	// Mood 0.5 inflates the 2000 demand by 10%.
	if n.Player.Amount != 2200 {
		t.Errorf("opening amount = %d, want 2200", n.Player.Amount)
	}
	if n.Team != n.Player || n.Orig != n.Player {
		t.Error("both sides and orig should start from the player's demand")
	}
	// FreeAgency is after the trade deadline, so no bonus year.
	if n.Player.Years != 2 {
		t.Errorf("years = %d, want 2", n.Player.Years)
	}
}

func TestCreateInSeasonAddsYear(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	ls.G().Phase = models.PhaseRegularSeason
	p := addFreeAgent(ls, 2000, 0)

	if err := Create(ls, p.PID, false, 0); err != nil {
		t.Fatal(err)
	}
	n, _ := ls.Cache.Negotiations.Get(p.PID)
	if n.Player.Years != 3 {
		t.Errorf("years = %d, want 3 (remaining 2 plus the current season)", n.Player.Years)
	}
}

func TestAcceptSignsPlayer(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()
	g.Phase = models.PhaseFreeAgency
	p := addFreeAgent(ls, 2000, 0)

	if err := Create(ls, p.PID, false, 0); err != nil {
		t.Fatal(err)
	}
	if err := Accept(ls, p.PID, 2200, g.Season+1); err != nil {
		t.Fatal(err)
	}

	if p.TID != 0 {
		t.Fatalf("tid = %d, want 0", p.TID)
	}
	if p.Contract.Amount != 2200 || p.Contract.Exp != g.Season+1 {
		t.Errorf("contract = %+v", p.Contract)
	}
	if len(p.Salaries) == 0 {
		t.Error("accept should write the salary ledger")
	}
	if p.GamesUntilTradable != 15 {
		t.Errorf("gamesUntilTradable = %d, want 15", p.GamesUntilTradable)
	}
	if _, ok := ls.Cache.Negotiations.Get(p.PID); ok {
		t.Error("negotiation should be removed after accept")
	}
}

func TestAcceptCapCheck(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	g := ls.G()
	g.Phase = models.PhaseFreeAgency

	// Existing payroll at the cap.
	ls.Cache.Players.Add(&models.Player{TID: 0, Contract: models.Contract{Amount: g.SalaryCap, Exp: g.Season}})
	p := addFreeAgent(ls, 2000, 0)

	if err := Create(ls, p.PID, false, 0); err != nil {
		t.Fatal(err)
	}
	err := Accept(ls, p.PID, 2200, g.Season+1)
	var rej Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want cap rejection", err)
	}
	if p.TID != models.SlotFreeAgent {
		t.Error("rejected accept must not move the player")
	}
}

func TestCancelAll(t *testing.T) {
	ls := statetest.NewLeague(t, 1)
	ls.G().Phase = models.PhaseFreeAgency

	a := addFreeAgent(ls, 2000, 0)
	b := addFreeAgent(ls, 1500, 0)
	if err := Create(ls, a.PID, true, 0); err != nil {
		t.Fatal(err)
	}
	if err := Create(ls, b.PID, true, 0); err != nil {
		t.Fatal(err)
	}

	CancelAll(ls)
	if n := ls.Cache.Negotiations.Len(); n != 0 {
		t.Errorf("%d negotiations left after CancelAll", n)
	}
	if a.TID != models.SlotFreeAgent || b.TID != models.SlotFreeAgent {
		t.Error("cancel must not touch players")
	}
}
