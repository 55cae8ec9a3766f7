// Package negotiation is the contract negotiation state machine between a
// team and a free agent. A negotiation is rejected up front for phase, lock,
// roster, or mood reasons; once open it ends in a signed contract or a
// cancellation.
package negotiation

import (
	"fmt"

	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/freeagents"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

// Rejection is a refusal the UI shows to the user. It marks expected
// outcomes, as opposed to internal failures.
type Rejection string

func (r Rejection) Error() string { return string(r) }

// Create starts a negotiation with a free agent. resigning allows many
// concurrent negotiations during the re-sign phase; otherwise only one
// non-resigning negotiation may be open at a time.
func Create(ls *state.League, pid int, resigning bool, tid int) error {
	g := ls.G()

	if g.Phase >= models.PhaseAfterTradeDeadline && g.Phase <= models.PhaseResignPlayers && !resigning {
		return Rejection("You're not allowed to sign free agents now.")
	}

	if !ls.Locks.CanStartNegotiation(resigning) {
		return Rejection("You cannot initiate a new negotiation while game simulation is in progress or a previous contract negotiation is in process.")
	}

	if !resigning && len(ls.Cache.PlayersByTeam(models.RosterSlot(tid))) >= g.MaxRosterSize {
		return Rejection("Your roster is full. Before you can sign a free agent, you'll have to release or trade away one of your current players.")
	}

	p, ok := ls.Cache.Players.Get(pid)
	if !ok {
		return fmt.Errorf("player %d not found", pid)
	}
	if p.TID != models.SlotFreeAgent {
		return Rejection(fmt.Sprintf("%s %s is not a free agent.", p.FirstName, p.LastName))
	}

	mood := 0.5
	if tid >= 0 && tid < len(p.FreeAgentMood) {
		mood = p.FreeAgentMood[tid]
	}

	playerAmount := freeagents.AmountWithMood(g, p.Contract.Amount, mood)
	playerYears := p.Contract.Exp - g.Season
	// An in-season signing covers the rest of this season too.
	if g.Phase <= models.PhaseAfterTradeDeadline {
		playerYears++
	}

	if freeagents.RefuseToNegotiate(playerAmount, mood) {
		return Rejection(fmt.Sprintf("%s %s refuses to sign with you, no matter what you offer.", p.FirstName, p.LastName))
	}

	offer := models.NegotiationOffer{Amount: playerAmount, Years: playerYears}
	ls.Cache.Negotiations.Put(&models.Negotiation{
		PID:       pid,
		TID:       tid,
		Team:      offer,
		Player:    offer,
		Orig:      offer,
		Resigning: resigning,
	})
	return nil
}

// Accept signs the negotiated contract: the player joins the team, the salary
// ledger is written, and the negotiation is removed.
func Accept(ls *state.League, pid, amount, exp int) error {
	g := ls.G()

	n, ok := ls.Cache.Negotiations.Get(pid)
	if !ok {
		return fmt.Errorf("no negotiation with player %d", pid)
	}

	// Re-signing your own player may exceed the cap; outside signings may not.
	if !n.Resigning && team.Payroll(ls, n.TID)+amount > g.SalaryCap {
		return Rejection("This contract would put you over the salary cap. You cannot go over the salary cap to sign free agents to contracts higher than the minimum.")
	}
	if len(ls.Cache.PlayersByTeam(models.RosterSlot(n.TID))) >= g.MaxRosterSize {
		return Rejection("Your roster is full.")
	}

	p, ok := ls.Cache.Players.Get(pid)
	if !ok {
		return fmt.Errorf("player %d not found", pid)
	}

	p.TID = models.RosterSlot(n.TID)
	p.GamesUntilTradable = 15
	p.YearsFreeAgent = 0
	if g.Phase <= models.PhasePlayoffs {
		player.AddStatsRow(g, p, n.TID, g.Phase == models.PhasePlayoffs)
	}
	player.SetContract(g, p, models.Contract{Amount: amount, Exp: exp}, true)
	player.UpdateValues(g, p)
	ls.Cache.Players.Put(p)

	events.Log(ls, models.Event{
		Type: "freeAgent",
		Text: fmt.Sprintf("The %s signed %s for $%dk/year through %d.",
			g.TeamName(n.TID), p.Name(), amount, exp),
		PIDs:             []int{pid},
		TIDs:             []int{n.TID},
		ShowNotification: false,
	})

	Cancel(ls, pid)
	team.RosterAutoSort(ls, n.TID)
	return nil
}

// Cancel removes a negotiation with no effect on the player.
func Cancel(ls *state.League, pid int) {
	ls.Cache.Negotiations.Delete(pid)
}

// CancelAll removes every open negotiation.
func CancelAll(ls *state.League) {
	for _, n := range ls.Cache.Negotiations.All() {
		ls.Cache.Negotiations.Delete(n.PID)
	}
}
