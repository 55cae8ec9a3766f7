package league

import (
	"encoding/json"
	"fmt"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
)

// FileVersion is stamped on exported league files. Import accepts any version
// and falls back to defaults for unknown keys.
const FileVersion = 1

// Export snapshots an open league into a league file. collections selects
// which top-level collections to include; empty means all of them.
// gameAttributes and meta are always included. The export reflects the cache,
// so it includes writes that have not been flushed yet.
func Export(ls *state.League, collections []string) (*models.LeagueFile, error) {
	g := ls.G()

	want := func(name string) bool {
		if len(collections) == 0 {
			return true
		}
		for _, c := range collections {
			if c == name {
				return true
			}
		}
		return false
	}

	ga, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode gameAttributes: %w", err)
	}

	file := &models.LeagueFile{
		Meta: &models.LeagueFileMeta{
			Name:      g.LeagueName,
			PhaseText: fmt.Sprintf("%d %s", g.Season, g.Phase),
			Version:   FileVersion,
		},
		Version:        FileVersion,
		GameAttributes: ga,
	}

	if want("players") {
		for _, p := range ls.Cache.Players.All() {
			file.Players = append(file.Players, *p)
		}
	}
	if want("teams") {
		for _, t := range ls.Cache.Teams.All() {
			file.Teams = append(file.Teams, *t)
		}
	}
	if want("teamSeasons") {
		for _, ts := range ls.Cache.TeamSeasons.All() {
			file.TeamSeasons = append(file.TeamSeasons, *ts)
		}
	}
	if want("teamStats") {
		for _, st := range ls.Cache.TeamStats.All() {
			file.TeamStats = append(file.TeamStats, *st)
		}
	}
	if want("draftPicks") {
		for _, dp := range ls.Cache.DraftPicks.All() {
			file.DraftPicks = append(file.DraftPicks, *dp)
		}
	}
	if want("draftLotteryResults") {
		for _, r := range ls.Cache.DraftLotteryResults.All() {
			file.DraftLotteryResults = append(file.DraftLotteryResults, *r)
		}
	}
	if want("schedule") {
		for _, sg := range ls.Cache.Schedule.All() {
			file.Schedule = append(file.Schedule, *sg)
		}
	}
	if want("playoffSeries") {
		for _, ps := range ls.Cache.PlayoffSeries.All() {
			file.PlayoffSeries = append(file.PlayoffSeries, *ps)
		}
	}
	if want("trade") {
		for _, tr := range ls.Cache.Trade.All() {
			file.Trade = append(file.Trade, *tr)
		}
	}
	if want("negotiations") {
		for _, n := range ls.Cache.Negotiations.All() {
			file.Negotiations = append(file.Negotiations, *n)
		}
	}
	if want("messages") {
		for _, msg := range ls.Cache.Messages.All() {
			file.Messages = append(file.Messages, *msg)
		}
	}
	if want("games") {
		for _, gm := range ls.Cache.Games.All() {
			file.Games = append(file.Games, *gm)
		}
	}
	if want("events") {
		for _, e := range ls.Cache.Events.All() {
			file.Events = append(file.Events, *e)
		}
	}
	if want("releasedPlayers") {
		for _, rp := range ls.Cache.ReleasedPlayers.All() {
			file.ReleasedPlayers = append(file.ReleasedPlayers, *rp)
		}
	}
	if want("awards") {
		for _, a := range ls.Cache.Awards.All() {
			file.Awards = append(file.Awards, *a)
		}
	}
	if want("playerFeats") {
		for _, f := range ls.Cache.PlayerFeats.All() {
			file.PlayerFeats = append(file.PlayerFeats, *f)
		}
	}
	return file, nil
}
