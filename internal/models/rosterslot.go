package models

// RosterSlot is a player's current team assignment. Non-negative values are
// real team IDs; the negative sentinels mark players outside any roster. The
// numeric encoding matches the league file format, so these constants must
// never be renumbered.
type RosterSlot int

const (
	SlotFreeAgent  RosterSlot = -1
	SlotUndrafted  RosterSlot = -2 // next draft class
	SlotRetired    RosterSlot = -3
	SlotUndrafted2 RosterSlot = -4 // draft class one year out
	SlotUndrafted3 RosterSlot = -5 // draft class two years out
)

// OnTeam reports whether the slot is a real team ID.
func (s RosterSlot) OnTeam() bool { return s >= 0 }

// FreeAgent reports whether the player is an unsigned free agent.
func (s RosterSlot) FreeAgent() bool { return s == SlotFreeAgent }

// Retired reports whether the player has retired.
func (s RosterSlot) Retired() bool { return s == SlotRetired }

// UndraftedTier returns 1, 2 or 3 for the three future draft-class tiers, or
// 0 if the slot is not a draft prospect.
func (s RosterSlot) UndraftedTier() int {
	switch s {
	case SlotUndrafted:
		return 1
	case SlotUndrafted2:
		return 2
	case SlotUndrafted3:
		return 3
	}
	return 0
}

// TeamID returns the team ID for an on-team slot. Callers must check OnTeam
// first; TeamID returns -1 otherwise.
func (s RosterSlot) TeamID() int {
	if s.OnTeam() {
		return int(s)
	}
	return -1
}
