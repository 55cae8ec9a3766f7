package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/courtside/internal/draft"
	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/freeagents"
	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/negotiation"
	"github.com/mcdev12/courtside/internal/phase"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

// commandHandler runs one named command against the open league. The cache
// lock is already held. Expected refusals come back as negotiation.Rejection
// or lock.ErrLocked; anything else is an internal failure.
type commandHandler func(ctx context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error)

// commands maps command names to handlers. The names are the wire protocol;
// UI clients send them verbatim.
var commands = map[string]commandHandler{
	"newPhase":             cmdNewPhase,
	"draftGetOrder":        cmdDraftGetOrder,
	"draftSelectPlayer":    cmdDraftSelectPlayer,
	"draftUntilUserOrEnd":  cmdDraftUntilUserOrEnd,
	"negotiationCreate":    cmdNegotiationCreate,
	"negotiationAccept":    cmdNegotiationAccept,
	"negotiationCancel":    cmdNegotiationCancel,
	"negotiationCancelAll": cmdNegotiationCancelAll,
	"freeAgencyDay":        cmdFreeAgencyDay,
	"autoSortRoster":       cmdAutoSortRoster,
	"setGodMode":           cmdSetGodMode,
}

// isRejection reports whether err is an expected refusal the UI should show
// as-is, rather than an internal failure.
func isRejection(err error) (string, bool) {
	var rej negotiation.Rejection
	if errors.As(err, &rej) {
		return rej.Error(), true
	}
	if errors.Is(err, lock.ErrLocked) {
		return err.Error(), true
	}
	return "", false
}

func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("decode command args: %w", err)
	}
	return nil
}

func cmdNewPhase(ctx context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error) {
	var a struct {
		Phase       int  `json:"phase"`
		LiveGameSim bool `json:"liveGameSim"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, err
	}

	res, err := phase.NewPhase(ctx, ls, models.Phase(a.Phase), phase.Options{LiveGameSim: a.LiveGameSim})
	if err != nil {
		return nil, nil, err
	}
	return map[string]any{"redirect": res.Redirect}, res.UpdateEvents, nil
}

func cmdDraftGetOrder(_ context.Context, ls *state.League, _ json.RawMessage) (any, []events.UpdateEvent, error) {
	return draft.GetOrder(ls), nil, nil
}

func cmdDraftSelectPlayer(_ context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error) {
	var a struct {
		PID int `json:"pid"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, err
	}

	order := draft.GetOrder(ls)
	if len(order) == 0 {
		return nil, nil, negotiation.Rejection("The draft is over.")
	}
	dp := order[0]
	if !ls.G().IsUserTeam(dp.TID) {
		return nil, nil, negotiation.Rejection("It is not your turn to pick.")
	}

	if err := draft.SelectPlayer(ls, dp, a.PID); err != nil {
		return nil, nil, err
	}
	return dp, []events.UpdateEvent{events.UpdatePlayerMovement}, nil
}

func cmdDraftUntilUserOrEnd(ctx context.Context, ls *state.League, _ json.RawMessage) (any, []events.UpdateEvent, error) {
	made, err := draft.UntilUserOrEnd(ls)
	if err != nil {
		return nil, nil, err
	}
	updates := []events.UpdateEvent{events.UpdatePlayerMovement}

	// An exhausted draft rolls straight into the next phase.
	redirect := ""
	if len(draft.GetOrder(ls)) == 0 {
		g := ls.G()
		target := models.PhaseAfterDraft
		if g.Phase == models.PhaseFantasyDraft && g.NextPhase != nil {
			target = *g.NextPhase
		}
		res, err := phase.NewPhase(ctx, ls, target, phase.Options{})
		if err != nil {
			return nil, nil, err
		}
		redirect = res.Redirect
		updates = append(updates, res.UpdateEvents...)
	}

	return map[string]any{"picks": made, "redirect": redirect}, updates, nil
}

func cmdNegotiationCreate(_ context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error) {
	var a struct {
		PID       int  `json:"pid"`
		Resigning bool `json:"resigning"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, err
	}

	if err := negotiation.Create(ls, a.PID, a.Resigning, ls.G().UserTID); err != nil {
		return nil, nil, err
	}
	n, _ := ls.Cache.Negotiations.Get(a.PID)
	return n, nil, nil
}

func cmdNegotiationAccept(_ context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error) {
	var a struct {
		PID    int `json:"pid"`
		Amount int `json:"amount"`
		Exp    int `json:"exp"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, err
	}

	if err := negotiation.Accept(ls, a.PID, a.Amount, a.Exp); err != nil {
		return nil, nil, err
	}
	return nil, []events.UpdateEvent{events.UpdatePlayerMovement, events.UpdateTeamFinances}, nil
}

func cmdNegotiationCancel(_ context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error) {
	var a struct {
		PID int `json:"pid"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, err
	}
	negotiation.Cancel(ls, a.PID)
	return nil, nil, nil
}

func cmdNegotiationCancelAll(_ context.Context, ls *state.League, _ json.RawMessage) (any, []events.UpdateEvent, error) {
	negotiation.CancelAll(ls)
	return nil, nil, nil
}

// cmdFreeAgencyDay advances the free-agent market by one day: demands decay,
// AI teams sign players, and during free agency the countdown ticks down.
func cmdFreeAgencyDay(_ context.Context, ls *state.League, _ json.RawMessage) (any, []events.UpdateEvent, error) {
	g := ls.G()
	if g.Phase == models.PhaseFreeAgency {
		if g.DaysLeft <= 0 {
			return nil, nil, negotiation.Rejection("Free agency is over. Start the preseason to continue.")
		}
		g.DaysLeft--
		ls.Cache.PutGameAttributes(g)
	}

	freeagents.DecreaseDemands(ls)
	freeagents.AutoSign(ls)

	return map[string]any{"daysLeft": g.DaysLeft},
		[]events.UpdateEvent{events.UpdatePlayerMovement, events.UpdateGameAttributes}, nil
}

func cmdAutoSortRoster(_ context.Context, ls *state.League, _ json.RawMessage) (any, []events.UpdateEvent, error) {
	team.RosterAutoSort(ls, ls.G().UserTID)
	return nil, []events.UpdateEvent{events.UpdatePlayerMovement}, nil
}

// cmdSetGodMode toggles the direct-edit gate. Turning it on permanently marks
// the league as having used it.
func cmdSetGodMode(_ context.Context, ls *state.League, args json.RawMessage) (any, []events.UpdateEvent, error) {
	var a struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, nil, err
	}

	g := ls.G()
	g.GodMode = a.Enabled
	if a.Enabled {
		g.GodModeInPast = true
	}
	ls.Cache.PutGameAttributes(g)
	return map[string]any{"godMode": g.GodMode}, []events.UpdateEvent{events.UpdateGameAttributes}, nil
}
