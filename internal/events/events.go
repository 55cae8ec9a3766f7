// Package events defines the update-event tags emitted to the UI after
// state-changing commands, and the append-only transaction log.
package events

import (
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
)

// UpdateEvent tags tell the UI which cached views to invalidate.
type UpdateEvent string

const (
	UpdatePlayerMovement UpdateEvent = "playerMovement"
	UpdateGameSim        UpdateEvent = "gameSim"
	UpdateNewPhase       UpdateEvent = "newPhase"
	UpdateGameAttributes UpdateEvent = "gameAttributes"
	UpdateTeamFinances   UpdateEvent = "teamFinances"
	UpdateLeagues        UpdateEvent = "leagues"
)

// Log appends a transaction log entry for UI display. The season is stamped
// from the current league state; simulation logic never reads entries back.
func Log(ls *state.League, e models.Event) {
	e.Season = ls.G().Season
	ls.Cache.Events.Add(&e)
}
