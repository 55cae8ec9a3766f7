// Package player holds the procedural player generator and every per-player
// rule the simulation engines share: contracts, development, retirement,
// value scores, and free-agent mood.
package player

import (
	"math"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

type archetype string

const (
	archPoint archetype = "point"
	archWing  archetype = "wing"
	archBig   archetype = "big"
)

// typeFactors skew the base ratings toward each archetype's strengths.
// Ratings not listed use a factor of 1.
var typeFactors = map[archetype]map[models.RatingKey]float64{
	archPoint: {
		models.RatingJmp: 1.65, models.RatingSpd: 1.65,
		models.RatingDrb: 1.5, models.RatingPss: 1.5,
		models.RatingFT: 1.4, models.RatingFG: 1.4, models.RatingTP: 1.4,
		models.RatingOIQ: 1.2, models.RatingEndu: 1.4,
	},
	archWing: {
		models.RatingDrb: 1.2, models.RatingDnk: 1.5,
		models.RatingJmp: 1.4, models.RatingSpd: 1.4,
		models.RatingFT: 1.2, models.RatingFG: 1.2, models.RatingTP: 1.2,
	},
	archBig: {
		models.RatingStre: 1.2, models.RatingIns: 1.6,
		models.RatingDnk: 1.5, models.RatingReb: 1.4,
		models.RatingFT: 0.8, models.RatingFG: 0.8, models.RatingTP: 0.8,
		models.RatingDIQ: 1.2,
	},
}

// Rookies all trend toward low IQ and poor shooting; tall players are less
// talented overall.
var baseRatings = map[models.RatingKey]float64{
	models.RatingStre: 37, models.RatingSpd: 40, models.RatingJmp: 40,
	models.RatingEndu: 17, models.RatingIns: 27, models.RatingDnk: 27,
	models.RatingFT: 32, models.RatingFG: 32, models.RatingTP: 32,
	models.RatingOIQ: 22, models.RatingDIQ: 22, models.RatingDrb: 37,
	models.RatingPss: 37, models.RatingReb: 37,
}

var (
	athleticismRatings = []models.RatingKey{models.RatingStre, models.RatingSpd, models.RatingJmp, models.RatingEndu, models.RatingDnk}
	shootingRatings    = []models.RatingKey{models.RatingFT, models.RatingFG, models.RatingTP}
	skillRatings       = []models.RatingKey{models.RatingOIQ, models.RatingDIQ, models.RatingDrb, models.RatingPss, models.RatingReb}
	// ins purposely left out: interior scoring correlates with nothing else.
)

func pickArchetype(rng *random.Source, hgt int) archetype {
	r := rng.Float64()
	switch {
	case hgt >= 59: // 6'10" or taller
		if r < 0.01 {
			return archPoint
		}
		if r < 0.05 {
			return archWing
		}
		return archBig
	case hgt <= 33: // 6'3" or shorter
		if r < 0.1 {
			return archWing
		}
		return archPoint
	default:
		if r < 0.03 {
			return archPoint
		}
		if r < 0.3 {
			return archBig
		}
		return archWing
	}
}

func contains(keys []models.RatingKey, key models.RatingKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// genRatings builds the initial ratings row for a new player with the given
// height rating.
func genRatings(g *models.GameAttributes, rng *random.Source, season, scoutingRank int, tid models.RosterSlot, hgt int) models.PlayerRatings {
	arch := pickArchetype(rng, hgt)

	// Four correlated noise factors ensure some players are elite across a
	// whole category; athleticism and skill stay independent so some players
	// are elite in one but not the other.
	factorAthleticism := rng.BoundedGauss(1, 0.2, 0.2, 1.2)
	factorShooting := rng.BoundedGauss(1, 0.2, 0.2, 1.2)
	factorSkill := rng.BoundedGauss(1, 0.2, 0.2, 1.2)
	factorIns := rng.BoundedGauss(1, 0.2, 0.2, 1.2)

	r := models.PlayerRatings{
		Season: season,
		Hgt:    hgt,
		Fuzz:   GenFuzz(g, rng, scoutingRank),
		Pos:    "F",
		Skills: []string{},
	}

	for _, key := range models.RatingKeys {
		factor := factorIns
		switch {
		case contains(athleticismRatings, key):
			factor = factorAthleticism
		case contains(shootingRatings, key):
			factor = factorShooting
		case contains(skillRatings, key):
			factor = factorSkill
		}

		typeFactor := 1.0
		if f, ok := typeFactors[arch][key]; ok {
			typeFactor = f
		}

		r.Set(key, LimitRating(factor*typeFactor*rng.Gauss(baseRatings[key], 3)))
	}

	// Deeper draft classes are scouted less; widen the noise.
	switch tid {
	case models.SlotUndrafted2:
		r.Fuzz *= math.Sqrt2
	case models.SlotUndrafted3:
		r.Fuzz *= 2
	}

	r.Ovr = CalcOvr(&r)
	r.Pot = r.Ovr
	r.Pos = Pos(&r)
	r.Skills = Skills(&r)
	return r
}

const (
	minWeight = 155
	maxWeight = 305
)

// Generate creates a new player without a pid. For a new league the first
// ratings row is stamped with the starting season; for a draft prospect it
// is stamped with the draft year. The caller is expected to run Develop and
// UpdateValues before the player enters play.
func Generate(g *models.GameAttributes, rng *random.Source, tid models.RosterSlot, age, draftYear int, newLeague bool, scoutingRank int) *models.Player {
	// Height is drawn from a skewed distribution, offset by a fraction of an
	// inch; the wingspan-adjusted value feeds the height rating.
	realHeight := rng.Float64() - 0.5
	realHeight += rng.HeightDist()

	wingspanAdjust := realHeight + float64(rng.RandInt(-1, 1))
	predetHgt := HeightToRating(wingspanAdjust)

	season := draftYear
	if newLeague {
		season = g.StartingSeason
	}
	ratings := genRatings(g, rng, season, scoutingRank, tid, predetHgt)

	// Potential upside shrinks with age.
	upside := random.Bound(28-float64(age), 0, 40)
	ratings.Pot = LimitRating(float64(ratings.Ovr) + rng.TruncGauss(upside, 10, 0, 60))

	first, last, country := GenName(rng)

	p := &models.Player{
		PID: -1,
		TID: tid,

		FirstName: first,
		LastName:  last,
		Born: models.Born{
			Year: g.Season - age,
			Loc:  country,
		},

		Hgt: int(math.Round(realHeight)),
		Weight: int(math.Round(
			float64(rng.RandInt(-20, 20)) +
				(float64(ratings.Hgt)+0.5*float64(ratings.Stre))*(maxWeight-minWeight)/150 +
				minWeight)),

		Ratings: []models.PlayerRatings{ratings},
		Draft: models.DraftInfo{
			TID:         -1,
			OriginalTID: -1,
			Year:        draftYear,
			Skills:      []string{},
		},

		FreeAgentMood: make([]float64, g.NumTeams),
		Injury:        models.Healthy(),
		Awards:        []models.PlayerAward{},
		Salaries:      []models.Salary{},
		Stats:         []models.PlayerStats{},
		StatsTids:     []int{},
		PtModifier:    1,
		RosterOrder:   666, // sorted into place later
	}

	SetContract(g, p, GenContract(g, rng, p, false, true), false)
	return p
}
