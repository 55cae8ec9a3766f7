package player

import (
	"fmt"
	"math"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

// AugmentPartialPlayer fills in every field a league file is allowed to omit
// on a player record, then recomputes the derived ratings and value scores.
// Imported files routinely carry only names, a ratings row, and a team id.
func AugmentPartialPlayer(g *models.GameAttributes, rng *random.Source, p *models.Player, scoutingRank int) error {
	if len(p.Ratings) == 0 {
		return fmt.Errorf("player %q has no ratings", p.Name())
	}

	r := p.CurrentRatings()
	if r.Season == 0 {
		r.Season = g.Season
	}
	if r.Fuzz == 0 {
		r.Fuzz = GenFuzz(g, rng, scoutingRank)
	}

	if p.Born.Year == 0 {
		p.Born.Year = g.Season - 25
	}
	if p.Born.Loc == "" {
		p.Born.Loc = "USA"
	}

	// Physicals can be reconstructed from the height rating.
	if p.Hgt == 0 {
		p.Hgt = minHeightInches + int(math.Round(float64(r.Hgt)*(maxHeightInches-minHeightInches)/100))
	}
	if p.Weight == 0 {
		p.Weight = int(math.Round((float64(r.Hgt)+0.5*float64(r.Stre))*(maxWeight-minWeight)/150 + minWeight))
	}

	if p.Injury.Type == "" {
		p.Injury = models.Healthy()
	}
	if p.FreeAgentMood == nil {
		p.FreeAgentMood = make([]float64, g.NumTeams)
	} else if len(p.FreeAgentMood) < g.NumTeams {
		mood := make([]float64, g.NumTeams)
		copy(mood, p.FreeAgentMood)
		p.FreeAgentMood = mood
	}

	if p.Salaries == nil {
		p.Salaries = []models.Salary{}
	}
	if p.Stats == nil {
		p.Stats = []models.PlayerStats{}
	}
	if p.StatsTids == nil {
		p.StatsTids = []int{}
	}
	if p.Awards == nil {
		p.Awards = []models.PlayerAward{}
	}
	if p.Draft.Year == 0 {
		p.Draft = models.DraftInfo{
			TID:         -1,
			OriginalTID: -1,
			Year:        r.Season - p.Age(r.Season) + 19,
			Skills:      []string{},
		}
	}
	if p.Draft.Skills == nil {
		p.Draft.Skills = []string{}
	}
	if p.PtModifier == 0 {
		p.PtModifier = 1
	}
	if p.RosterOrder == 0 {
		p.RosterOrder = 666
	}

	// Refresh ovr, pot, position, and skills without aging.
	Develop(g, rng, p, 0, (g.NumTeams+1)/2)

	if p.Contract.Amount == 0 {
		SetContract(g, p, GenContract(g, rng, p, true, true), p.TID.OnTeam())
	} else {
		if p.Contract.Amount < g.MinContract {
			p.Contract.Amount = g.MinContract
		} else if p.Contract.Amount > g.MaxContract {
			p.Contract.Amount = g.MaxContract
		}
		if p.Contract.Exp < g.Season {
			p.Contract.Exp = g.Season
		}
	}

	UpdateValues(g, p)
	return nil
}
