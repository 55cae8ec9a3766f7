package player

import (
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

var physicalRatings = []models.RatingKey{models.RatingSpd, models.RatingJmp, models.RatingEndu}

// baseChangeByAge is the expected per-season rating drift at each age.
func baseChangeByAge(age int) float64 {
	switch {
	case age <= 21:
		return 5
	case age <= 24:
		return 2
	case age <= 27:
		return 0
	case age <= 30:
		return -1
	case age <= 33:
		return -3
	default:
		return -5
	}
}

// developSeason applies one season of growth or decline to a ratings row.
// coachingRank runs from 1 (best) to numTeams (worst) and nudges the drift by
// up to a point either way. Height never changes.
func developSeason(rng *random.Source, r *models.PlayerRatings, age, coachingRank, numTeams int) {
	base := baseChangeByAge(age)
	if numTeams > 1 {
		base += 1 - 2*float64(coachingRank-1)/float64(numTeams-1)
	}

	for _, key := range models.RatingKeys {
		change := base + rng.Gauss(0, 2)
		if age > 30 && contains(physicalRatings, key) {
			change -= 2
		}
		if age <= 27 && (key == models.RatingOIQ || key == models.RatingDIQ) {
			change += 1
		}
		r.Set(key, LimitRating(float64(r.Get(key))+change))
	}
}

// Develop ages a player's latest ratings row forward by the given number of
// seasons and refreshes every derived rating field. years of 0 still refreshes
// ovr, pot, position, and skills, which is how imported players are
// normalized.
func Develop(g *models.GameAttributes, rng *random.Source, p *models.Player, years int, coachingRank int) {
	r := p.CurrentRatings()
	age := r.Season - p.Born.Year

	for i := 0; i < years; i++ {
		age++
		developSeason(rng, r, age, coachingRank, g.NumTeams)
	}

	r.Ovr = CalcOvr(r)

	// Potential decays toward current ability with age and never drops below
	// it.
	upside := random.Bound(2*(27-float64(age)), 0, 30)
	pot := LimitRating(float64(r.Ovr) + rng.TruncGauss(upside, 5, 0, 40))
	if pot < r.Ovr {
		pot = r.Ovr
	}
	r.Pot = pot

	r.Pos = Pos(r)
	r.Skills = Skills(r)
}

// AddRatingsRow appends a copy of the latest ratings row stamped with the
// current season, ready for this season's development. Scouting fuzz is
// redrawn so uncertainty shrinks or grows with the team's current scouting
// spending.
func AddRatingsRow(g *models.GameAttributes, rng *random.Source, p *models.Player, scoutingRank int) {
	r := *p.CurrentRatings()
	r.Season = g.Season
	r.Fuzz = (r.Fuzz + GenFuzz(g, rng, scoutingRank)) / 2
	p.Ratings = append(p.Ratings, r)
}

// ShouldRetire decides whether a player hangs it up this offseason. Nobody
// retires before 25; after that the odds rise with age and collapse in
// potential.
func ShouldRetire(g *models.GameAttributes, rng *random.Source, p *models.Player) bool {
	age := p.Age(g.Season)
	if age < 25 {
		return false
	}

	r := p.CurrentRatings()
	prob := 0.0
	if age > 34 {
		prob += float64(age-34) / 20
	}
	if r.Pot < 40 {
		prob += float64(40-r.Pot) / 50
	}
	return rng.Float64() < prob
}

// Retire moves a player to the retired list. Hall of fame induction uses a
// crude peak-ability cut.
func Retire(g *models.GameAttributes, p *models.Player) {
	p.TID = models.SlotRetired
	p.RetiredYear = g.Season

	peak := 0
	for i := range p.Ratings {
		if p.Ratings[i].Ovr > peak {
			peak = p.Ratings[i].Ovr
		}
	}
	if peak >= 85 || len(p.Awards) >= 5 {
		p.HOF = true
	}
}

// AddStatsRow tags a player with a fresh stat row for the current season.
// The game simulator fills in the numbers later.
func AddStatsRow(g *models.GameAttributes, p *models.Player, tid int, playoffs bool) {
	p.Stats = append(p.Stats, models.PlayerStats{
		Season:   g.Season,
		TID:      tid,
		Playoffs: playoffs,
	})

	for _, t := range p.StatsTids {
		if t == tid {
			return
		}
	}
	p.StatsTids = append(p.StatsTids, tid)
}

// AddToFreeAgents moves a player to the free-agent pool: fresh asking
// contract, per-team mood seeded from baseMoods, and a reset playing-time
// modifier. Contracts signed after the trade deadline start next season, so
// the asking contract gets an extra year in those phases.
func AddToFreeAgents(g *models.GameAttributes, rng *random.Source, p *models.Player, phase models.Phase, baseMoods []float64) {
	r := p.CurrentRatings()
	SetContract(g, p, GenContract(g, rng, p, false, true), false)

	p.FreeAgentMood = make([]float64, len(baseMoods))
	for tid, mood := range baseMoods {
		switch {
		case r.Ovr+r.Pot < 80:
			// Bad players cannot afford to be choosy.
			p.FreeAgentMood[tid] = 0
		case phase == models.PhaseResignPlayers:
			// More willing to re-sign with the current team.
			p.FreeAgentMood[tid] = random.Bound(mood+rng.Uniform(-1, 0.5), 0, 1000)
		default:
			p.FreeAgentMood[tid] = random.Bound(mood+rng.Uniform(-1, 1.5), 0, 1000)
		}
	}

	if g.Phase > models.PhaseAfterTradeDeadline {
		p.Contract.Exp++
	}

	p.TID = models.SlotFreeAgent
	p.PtModifier = 1
}
