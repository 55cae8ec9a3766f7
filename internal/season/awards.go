package season

import (
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
)

// ComputeAwards picks the season's individual awards and attaches them to the
// winning players. It is a pure function of current league state and is safe
// to re-run: a season's award rows are keyed by season, and player award
// entries are only appended once.
func ComputeAwards(ls *state.League) *models.Award {
	g := ls.G()

	if a, ok := ls.Cache.Awards.Get(g.Season); ok {
		return a
	}

	var mvp, roy *models.Player
	for _, t := range ls.Cache.Teams.All() {
		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(t.TID)) {
			if mvp == nil || p.Value > mvp.Value {
				mvp = p
			}
			if p.Draft.Year == g.Season-1 {
				if roy == nil || p.Value > roy.Value {
					roy = p
				}
			}
		}
	}

	award := &models.Award{Season: g.Season}
	grant := func(p *models.Player, kind string) *models.AwardPlayer {
		if p == nil {
			return nil
		}
		p.Awards = append(p.Awards, models.PlayerAward{Season: g.Season, Type: kind})
		ls.Cache.Players.Put(p)
		return &models.AwardPlayer{
			PID:    p.PID,
			Name:   p.Name(),
			TID:    int(p.TID),
			Abbrev: g.TeamAbbrev(int(p.TID)),
		}
	}
	award.MVP = grant(mvp, "Most Valuable Player")
	award.ROY = grant(roy, "Rookie of the Year")

	ls.Cache.Awards.Put(award)
	return award
}

// GrantChampionshipAwards adds a "Won Championship" entry for every player on
// the team that won the final playoff round. Idempotent per season: a player
// already holding this season's entry is skipped, so a re-run of the season
// boundary cannot double-grant.
func GrantChampionshipAwards(ls *state.League) {
	g := ls.G()

	for _, ts := range ls.Cache.TeamSeasons.ByIndex(g.Season) {
		if ts.PlayoffRoundsWon != g.NumPlayoffRounds {
			continue
		}
		for _, p := range ls.Cache.PlayersByTeam(models.RosterSlot(ts.TID)) {
			already := false
			for _, a := range p.Awards {
				if a.Season == g.Season && a.Type == "Won Championship" {
					already = true
					break
				}
			}
			if already {
				continue
			}
			p.Awards = append(p.Awards, models.PlayerAward{Season: g.Season, Type: "Won Championship"})
			ls.Cache.Players.Put(p)
		}
	}
}
