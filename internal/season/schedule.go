// Package season holds end-of-season and start-of-season logic: schedule
// construction, awards, and the owner's yearly performance review.
package season

import (
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
)

// Matchup is one scheduled game, home team first.
type Matchup struct {
	HomeTID int
	AwayTID int
}

// SchedulePolicy builds a season schedule from the league's teams. The
// default weights division and conference play; imported leagues with unusual
// shapes can plug in their own.
type SchedulePolicy interface {
	Schedule(g *models.GameAttributes, teams []*models.Team) []Matchup
}

// DivisionWeighted is the default schedule: a home-and-home against every
// team, then extra division and conference rounds until the per-team game
// budget is met.
type DivisionWeighted struct{}

func (DivisionWeighted) Schedule(g *models.GameAttributes, teams []*models.Team) []Matchup {
	count := make(map[int]int, len(teams))
	var games []Matchup

	addPass := func(include func(a, b *models.Team) bool) bool {
		added := false
		for i, a := range teams {
			for _, b := range teams[i+1:] {
				if !include(a, b) {
					continue
				}
				if count[a.TID]+2 > g.NumGames || count[b.TID]+2 > g.NumGames {
					continue
				}
				games = append(games,
					Matchup{HomeTID: a.TID, AwayTID: b.TID},
					Matchup{HomeTID: b.TID, AwayTID: a.TID},
				)
				count[a.TID] += 2
				count[b.TID] += 2
				added = true
			}
		}
		return added
	}

	everyone := func(a, b *models.Team) bool { return true }
	sameDiv := func(a, b *models.Team) bool { return a.DID == b.DID }
	sameConf := func(a, b *models.Team) bool { return a.CID == b.CID }

	addPass(everyone)
	// Division rivals fill most of the remaining budget, then conference
	// games, then anyone. Stop when a full cycle adds nothing.
	for {
		if !addPass(sameDiv) && !addPass(sameConf) && !addPass(everyone) {
			break
		}
	}
	return games
}

// SetSchedule replaces the schedule collection with the given matchups.
func SetSchedule(ls *state.League, games []Matchup) {
	for _, sg := range ls.Cache.Schedule.All() {
		ls.Cache.Schedule.Delete(sg.GID)
	}
	for day, m := range games {
		ls.Cache.Schedule.Add(&models.ScheduleGame{
			HomeTID: m.HomeTID,
			AwayTID: m.AwayTID,
			Day:     day,
		})
	}
}
