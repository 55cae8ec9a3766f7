package player

import (
	"math"

	"github.com/mcdev12/courtside/internal/models"
)

// LimitRating clamps a rating to [0, 100] and truncates to an int.
func LimitRating(r float64) int {
	if r > 100 {
		return 100
	}
	if r < 0 {
		return 0
	}
	return int(r)
}

// Height rating 0-100 spans 5'6" to 7'9"; anything outside the extremes
// clamps.
const (
	minHeightInches = 66
	maxHeightInches = 93
)

// HeightToRating converts a height in inches to the 0-100 height rating.
func HeightToRating(inches float64) int {
	return LimitRating(100 * (inches - minHeightInches) / (maxHeightInches - minHeightInches))
}

// ovrWeights is the fixed weighting of the overall rating. IQ and the
// athletic ratings dominate; raw size matters less than what a player does
// with it.
var ovrWeights = map[models.RatingKey]float64{
	models.RatingStre: 1,
	models.RatingSpd:  4,
	models.RatingJmp:  2,
	models.RatingEndu: 1,
	models.RatingIns:  1,
	models.RatingDnk:  2,
	models.RatingFT:   1,
	models.RatingFG:   1,
	models.RatingTP:   3,
	models.RatingOIQ:  7,
	models.RatingDIQ:  3,
	models.RatingDrb:  3,
	models.RatingPss:  3,
	models.RatingReb:  1,
}

const ovrHeightWeight = 5.0

// CalcOvr computes the overall rating from a ratings row.
func CalcOvr(r *models.PlayerRatings) int {
	total := ovrHeightWeight * float64(r.Hgt)
	weight := ovrHeightWeight
	for key, w := range ovrWeights {
		total += w * float64(r.Get(key))
		weight += w
	}
	return LimitRating(math.Round(total / weight))
}

// Pos derives a position label from a ratings row.
func Pos(r *models.PlayerRatings) string {
	guard := r.Hgt <= 40 || (r.Drb >= 50 && r.Pss >= 50 && r.Hgt <= 60)
	forward := r.Hgt > 40 && r.Hgt <= 75
	center := r.Hgt > 75

	ballHandler := r.Drb >= 60 && r.Pss >= 60
	shooter := r.TP >= 55 || r.FG >= 55
	inside := r.Ins >= 55 || r.Reb >= 60

	switch {
	case guard && ballHandler:
		return "PG"
	case guard && shooter:
		return "SG"
	case guard:
		return "G"
	case center && inside:
		return "C"
	case center:
		return "FC"
	case forward && ballHandler:
		return "GF"
	case forward && inside:
		return "PF"
	case forward && shooter:
		return "SF"
	default:
		return "F"
	}
}

// Skills returns the skill labels earned by a ratings row. Composites must
// clear fixed cutoffs, so most players carry no labels at all.
func Skills(r *models.PlayerRatings) []string {
	hasSkill := func(composite float64, cutoff float64) bool {
		return composite >= cutoff
	}

	skills := []string{}
	if hasSkill(float64(r.TP), 73) {
		skills = append(skills, "3")
	}
	if hasSkill((float64(r.Spd)+float64(r.Jmp)+float64(r.Stre))/3, 63) {
		skills = append(skills, "A")
	}
	if hasSkill((float64(r.Drb)+float64(r.Spd))/2, 68) {
		skills = append(skills, "B")
	}
	if hasSkill((float64(r.DIQ)+float64(r.Spd)+float64(r.Stre))/3, 63) {
		skills = append(skills, "Di")
	}
	if hasSkill((float64(r.Ins)+float64(r.Stre)+float64(r.Hgt))/3, 61) {
		skills = append(skills, "Po")
	}
	if hasSkill((float64(r.Pss)+float64(r.OIQ))/2, 66) {
		skills = append(skills, "Ps")
	}
	if hasSkill((float64(r.Reb)+float64(r.Stre)+float64(r.Hgt))/3, 61) {
		skills = append(skills, "R")
	}
	return skills
}
