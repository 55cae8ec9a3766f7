package models

import "encoding/json"

// LeagueFileMeta is the meta block of an exported league file.
type LeagueFileMeta struct {
	PhaseText string `json:"phaseText,omitempty"`
	Name      string `json:"name,omitempty"`
	Version   int    `json:"version,omitempty"`
}

// LeagueFile is the import/export document for a whole league. Every
// collection is optional on import; omitted ones default to empty or are
// synthesized at bootstrap. GameAttributes stays raw JSON so unknown keys
// from older schemas can be merged over defaults without failing the load.
type LeagueFile struct {
	Meta    *LeagueFileMeta `json:"meta,omitempty"`
	Version int             `json:"version,omitempty"`

	GameAttributes json.RawMessage `json:"gameAttributes,omitempty"`

	Players            []Player             `json:"players,omitempty"`
	Teams              []Team               `json:"teams,omitempty"`
	TeamSeasons        []TeamSeason         `json:"teamSeasons,omitempty"`
	TeamStats          []TeamStats          `json:"teamStats,omitempty"`
	DraftPicks         []DraftPick          `json:"draftPicks,omitempty"`
	DraftLotteryResults []DraftLotteryResult `json:"draftLotteryResults,omitempty"`
	Schedule           []ScheduleGame       `json:"schedule,omitempty"`
	PlayoffSeries      []PlayoffSeries      `json:"playoffSeries,omitempty"`
	Trade              []Trade              `json:"trade,omitempty"`
	Negotiations       []Negotiation        `json:"negotiations,omitempty"`
	Messages           []Message            `json:"messages,omitempty"`
	Games              []Game               `json:"games,omitempty"`
	Events             []Event              `json:"events,omitempty"`
	ReleasedPlayers    []ReleasedPlayer     `json:"releasedPlayers,omitempty"`
	Awards             []Award              `json:"awards,omitempty"`
	PlayerFeats        []PlayerFeat         `json:"playerFeats,omitempty"`

	hasPlayers bool
	hasTeams   bool
}

// UnmarshalJSON tracks which collections were actually present in the
// document, which bootstrap logic needs to distinguish "empty" from
// "omitted".
func (f *LeagueFile) UnmarshalJSON(data []byte) error {
	type alias LeagueFile
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = LeagueFile(a)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	_, f.hasPlayers = probe["players"]
	_, f.hasTeams = probe["teams"]
	return nil
}

// HasPlayers reports whether the file supplied a players collection, even an
// empty one.
func (f *LeagueFile) HasPlayers() bool { return f.hasPlayers || f.Players != nil }

// HasTeams reports whether the file supplied a teams collection.
func (f *LeagueFile) HasTeams() bool { return f.hasTeams || f.Teams != nil }
