// Package phase is the league's season state machine. NewPhase is the only
// entry point; it validates the transition, runs the transition's work while
// holding the newPhase lock, advances the phase flag, and flushes, so a
// failed transition never leaves a half-applied season boundary behind.
package phase

import (
	"context"
	"fmt"

	"github.com/mcdev12/courtside/internal/draft"
	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/season"
	"github.com/mcdev12/courtside/internal/state"
)

// Result tells the caller where to send the user and which cached views to
// invalidate.
type Result struct {
	Redirect     string
	UpdateEvents []events.UpdateEvent
}

// Options tweak a transition without changing its semantics.
type Options struct {
	// LiveGameSim suppresses the redirect when the boundary was triggered
	// from a live game view.
	LiveGameSim bool

	// Schedule overrides the schedule policy; nil means DivisionWeighted.
	Schedule season.SchedulePolicy
	// Lottery overrides the lottery policy; nil means WeightedLottery.
	Lottery draft.LotteryPolicy
}

// allowed is the transition table. A target phase absent from the current
// phase's row is rejected outright. The fantasy draft is reachable from any
// phase where rosters are stable, and returns to wherever the cycle left off.
var allowed = map[models.Phase][]models.Phase{
	models.PhasePreseason:          {models.PhaseRegularSeason, models.PhaseFantasyDraft},
	models.PhaseRegularSeason:      {models.PhaseAfterTradeDeadline},
	models.PhaseAfterTradeDeadline: {models.PhasePlayoffs, models.PhaseFantasyDraft},
	models.PhasePlayoffs:           {models.PhaseBeforeDraft},
	models.PhaseBeforeDraft:        {models.PhaseDraftLottery},
	models.PhaseDraftLottery:       {models.PhaseDraft},
	models.PhaseDraft:              {models.PhaseAfterDraft},
	models.PhaseAfterDraft:         {models.PhaseResignPlayers, models.PhaseFantasyDraft},
	models.PhaseResignPlayers:      {models.PhaseFreeAgency},
	models.PhaseFreeAgency:         {models.PhasePreseason, models.PhaseFantasyDraft},
	models.PhaseFantasyDraft:       {}, // resolved dynamically from nextPhase
}

func transitionAllowed(g *models.GameAttributes, target models.Phase) bool {
	if g.Phase == models.PhaseFantasyDraft {
		return g.NextPhase != nil && target == *g.NextPhase
	}
	for _, t := range allowed[g.Phase] {
		if t == target {
			return true
		}
	}
	return false
}

// NewPhase advances the league to the target phase. The newPhase lock is held
// for the whole transition and released on every exit path; the phase flag
// only advances after the transition's work succeeds, and everything is
// flushed together at the end.
func NewPhase(ctx context.Context, ls *state.League, target models.Phase, opts Options) (Result, error) {
	g := ls.G()

	if !target.Valid() {
		return Result{}, fmt.Errorf("unknown phase %d", target)
	}
	if !transitionAllowed(g, target) {
		return Result{}, fmt.Errorf("cannot transition from %s to %s", g.Phase, target)
	}

	var res Result
	err := ls.Locks.With(lock.NewPhase, func() error {
		var err error
		switch target {
		case models.PhasePreseason:
			res, err = newPhasePreseason(ls)
		case models.PhaseRegularSeason:
			res, err = newPhaseRegularSeason(ctx, ls, opts.Schedule)
		case models.PhaseAfterTradeDeadline:
			res = Result{UpdateEvents: []events.UpdateEvent{events.UpdateNewPhase}}
		case models.PhasePlayoffs:
			res, err = newPhasePlayoffs(ls)
		case models.PhaseBeforeDraft:
			res, err = newPhaseBeforeDraft(ls, opts.LiveGameSim)
		case models.PhaseDraftLottery:
			res, err = newPhaseDraftLottery(ls, opts.Lottery)
		case models.PhaseDraft:
			res, err = newPhaseDraft(ls)
		case models.PhaseAfterDraft:
			res, err = newPhaseAfterDraft(ls)
		case models.PhaseResignPlayers:
			res, err = newPhaseResignPlayers(ls)
		case models.PhaseFreeAgency:
			res, err = newPhaseFreeAgency(ls)
		case models.PhaseFantasyDraft:
			res, err = newPhaseFantasyDraft(ls)
		}
		if err != nil {
			return err
		}

		if target == models.PhaseFantasyDraft {
			next := g.Phase
			g.NextPhase = &next
		} else {
			g.NextPhase = nil
		}
		g.Phase = target
		ls.Cache.PutGameAttributes(g)
		return ls.Cache.Flush(ctx)
	})
	if err != nil {
		return Result{}, err
	}

	ls.Log.Info().Str("phase", target.String()).Int("season", g.Season).Msg("phase advanced")
	res.UpdateEvents = append(res.UpdateEvents, events.UpdateNewPhase, events.UpdateGameAttributes)
	return res, nil
}
