package season

import (
	"fmt"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/team"
)

// UpdateOwnerMood applies the owner's end-of-season review to a team's season
// row and returns the deltas. Wins above .500 please the owner, deep playoff
// runs more so, and cash flow rounds it out.
func UpdateOwnerMood(ls *state.League, tid int) models.OwnerMood {
	g := ls.G()
	ts := team.SeasonRow(ls, tid, g.Season)
	if ts == nil {
		return models.OwnerMood{}
	}

	half := float64(g.NumGames) / 2
	deltas := models.OwnerMood{
		Wins: 0.25 * (float64(ts.Won) - half) / half,
	}
	switch {
	case ts.PlayoffRoundsWon < 0:
		deltas.Playoffs = -0.2
	case ts.PlayoffRoundsWon < g.NumPlayoffRounds:
		deltas.Playoffs = 0.04 * float64(ts.PlayoffRoundsWon)
	default:
		deltas.Playoffs = 0.2
	}
	deltas.Money = (float64(ts.Cash)/1000 - 15) / 100

	ts.OwnerMood.Wins += deltas.Wins
	ts.OwnerMood.Playoffs += deltas.Playoffs
	ts.OwnerMood.Money += deltas.Money

	// Satisfaction saturates; anger does not.
	if ts.OwnerMood.Wins > 1 {
		ts.OwnerMood.Wins = 1
	}
	if ts.OwnerMood.Playoffs > 1 {
		ts.OwnerMood.Playoffs = 1
	}
	if ts.OwnerMood.Money > 1 {
		ts.OwnerMood.Money = 1
	}

	ls.Cache.TeamSeasons.Put(ts)
	return deltas
}

func moodPhrase(delta float64) string {
	switch {
	case delta > 0.05:
		return "very pleased"
	case delta > 0:
		return "satisfied"
	case delta > -0.1:
		return "concerned"
	default:
		return "furious"
	}
}

// GenMessage writes the owner's yearly message to the user's inbox.
func GenMessage(ls *state.League, deltas models.OwnerMood) {
	g := ls.G()
	ts := team.SeasonRow(ls, g.UserTID, g.Season)

	overall := "It's been an interesting year."
	if ts != nil {
		total := ts.OwnerMood.Total()
		switch {
		case total > 0.5:
			overall = "Keep it up and you'll be hearing from my accountants about a bonus."
		case total < -0.5:
			overall = "My patience is wearing thin. Turn this franchise around."
		}
	}

	ls.Cache.Messages.Add(&models.Message{
		From: "The Owner",
		Year: g.Season,
		Text: fmt.Sprintf(
			"I am %s with our record this year, %s with our playoff performance, and %s with the finances. %s",
			moodPhrase(deltas.Wins), moodPhrase(deltas.Playoffs), moodPhrase(deltas.Money), overall),
	})
}
