package player

import (
	"math"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

// ValueOptions selects which variant of the value score to compute.
type ValueOptions struct {
	// NoPot ignores potential and scores current ability only.
	NoPot bool
	// Fuzz scores the player as an outside scout sees him.
	Fuzz bool
	// WithContract discounts the score by how overpaid the player is.
	WithContract bool
}

// Value scores a player on roughly a 0-100 scale for trade and signing
// decisions. Young players are scored mostly on potential, old players on
// current ability with an age discount.
func Value(g *models.GameAttributes, p *models.Player, opts ValueOptions) float64 {
	r := p.CurrentRatings()
	if r == nil {
		return 0
	}

	current := float64(r.Ovr)
	potential := float64(r.Pot)
	if opts.Fuzz {
		current = float64(FuzzRating(r.Ovr, r.Fuzz))
		potential = float64(FuzzRating(r.Pot, r.Fuzz))
	}
	if opts.NoPot || current > potential {
		potential = current
	}

	// Draft prospects are scored at their draft-year age.
	age := p.Age(g.Season)
	if p.Draft.Year > g.Season {
		age = p.Draft.Year - p.Born.Year
	}

	var v float64
	switch {
	case age <= 19:
		v = 0.8*potential + 0.2*current
	case age == 20:
		v = 0.7*potential + 0.3*current
	case age == 21:
		v = 0.5*potential + 0.5*current
	case age == 22:
		v = 0.3*potential + 0.7*current
	case age == 23:
		v = 0.15*potential + 0.85*current
	case age == 24:
		v = 0.1*potential + 0.9*current
	case age == 25:
		v = 0.05*potential + 0.95*current
	case age < 29:
		v = current
	case age == 29:
		v = 0.975 * current
	case age == 30:
		v = 0.95 * current
	case age == 31:
		v = 0.9 * current
	case age == 32:
		v = 0.85 * current
	case age == 33:
		v = 0.8 * current
	default:
		v = 0.7 * current
	}

	if opts.WithContract {
		// Being overpaid costs up to about ten points; a bargain earns them
		// back. Fair salary uses the same quality mapping as GenContract.
		fair := (v-45)/50*float64(g.MaxContract-g.MinContract) + float64(g.MinContract)
		v += random.Bound(10*(fair-float64(p.Contract.Amount))/float64(g.MaxContract), -10, 10)
	}

	return math.Max(v, 0)
}

// UpdateValues recomputes all derived value scores on a player. Must be called
// after any change to ratings or contract.
func UpdateValues(g *models.GameAttributes, p *models.Player) {
	p.Value = Value(g, p, ValueOptions{})
	p.ValueNoPot = Value(g, p, ValueOptions{NoPot: true})
	p.ValueFuzz = Value(g, p, ValueOptions{Fuzz: true})
	p.ValueNoPotFuzz = Value(g, p, ValueOptions{NoPot: true, Fuzz: true})
	p.ValueWithContract = Value(g, p, ValueOptions{WithContract: true})
}
