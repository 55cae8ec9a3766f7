package models

import "fmt"

// Phase is a stage of the annual season cycle. The integer values are part of
// the league file format and must not be renumbered.
type Phase int

const (
	PhaseFantasyDraft Phase = iota - 1
	PhasePreseason
	PhaseRegularSeason
	PhaseAfterTradeDeadline
	PhasePlayoffs
	PhaseBeforeDraft
	PhaseDraftLottery
	PhaseDraft
	PhaseAfterDraft
	PhaseResignPlayers
	PhaseFreeAgency
)

var phaseNames = map[Phase]string{
	PhaseFantasyDraft:       "fantasy draft",
	PhasePreseason:          "preseason",
	PhaseRegularSeason:      "regular season",
	PhaseAfterTradeDeadline: "regular season, after trade deadline",
	PhasePlayoffs:           "playoffs",
	PhaseBeforeDraft:        "before draft",
	PhaseDraftLottery:       "draft lottery",
	PhaseDraft:              "draft",
	PhaseAfterDraft:         "after draft",
	PhaseResignPlayers:      "re-sign players",
	PhaseFreeAgency:         "free agency",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown phase %d", int(p))
}

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool {
	_, ok := phaseNames[p]
	return ok
}
