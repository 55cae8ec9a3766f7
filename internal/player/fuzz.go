package player

import (
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

// GenFuzz draws the scouting-uncertainty term attached to a ratings row.
// Teams that spend more on scouting (rank closer to 1) see tighter noise.
// scoutingRank runs from 1 (best) to numTeams (worst).
func GenFuzz(g *models.GameAttributes, rng *random.Source, scoutingRank int) float64 {
	frac := 0.0
	if g.NumTeams > 1 {
		frac = float64(scoutingRank-1) / float64(g.NumTeams-1)
	}
	cutoff := 2 + 8*frac // max error, in rating points
	sigma := 1 + 2*frac

	fuzz := rng.Gauss(0, sigma)
	return random.Bound(fuzz, -cutoff, cutoff)
}

// FuzzRating applies a row's fuzz to a displayed rating, simulating the
// imprecision of outside scouting. Never applied destructively; owning teams
// see true values.
func FuzzRating(rating int, fuzz float64) int {
	return LimitRating(float64(rating) + fuzz)
}
