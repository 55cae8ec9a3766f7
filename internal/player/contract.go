package player

import (
	"math"

	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/random"
)

// GenContract derives the contract a player would ask for, from his current
// overall and potential ratings and his age.
//
// randomizeExp is used at league creation so existing contracts do not all
// expire in the same season. randomizeAmount adds per-player noise to the
// asking amount; negotiations pass false so repeated calls are stable.
func GenContract(g *models.GameAttributes, rng *random.Source, p *models.Player, randomizeExp, randomizeAmount bool) models.Contract {
	r := p.CurrentRatings()

	// Weight current ability over upside. Quality around 45 asks the minimum,
	// around 95 the maximum.
	quality := (2*float64(r.Ovr) + float64(r.Pot)) / 3
	amount := (quality-45)/50*float64(g.MaxContract-g.MinContract) + float64(g.MinContract)
	if randomizeAmount {
		amount *= random.Bound(rng.Gauss(1, 0.1), 0, 2)
	}

	// High-potential players want short deals so they can renegotiate sooner;
	// low-potential players can only ask for short deals.
	years := g.MaxContractLength - (r.Pot-r.Ovr)/4
	switch {
	case r.Pot < 40:
		years = 1
	case r.Pot < 50:
		years = 2
	case r.Pot < 60:
		years = 3
	}

	// Veterans take what they can get.
	age := p.Age(g.Season)
	if age > 30 {
		years--
	}
	if age > 33 {
		years--
	}
	years = int(random.Bound(float64(years), float64(g.MinContractLength), float64(g.MaxContractLength)))

	if randomizeExp {
		years = rng.RandInt(1, years)

		// Keep rookie contracts reasonable.
		if age <= 21 {
			amount /= 4
		}
	}

	if amount < 1.1*float64(g.MinContract) {
		amount = float64(g.MinContract)
	} else if amount > float64(g.MaxContract) {
		amount = float64(g.MaxContract)
	}

	return models.Contract{
		Amount: 50 * int(math.Round(amount/50)),
		Exp:    g.Season + years - 1,
	}
}

// SetContract stores a contract on a player. Only a signed contract writes
// the season-by-season salary ledger; unsigned contracts are negotiation
// bookkeeping.
func SetContract(g *models.GameAttributes, p *models.Player, contract models.Contract, signed bool) {
	p.Contract = contract

	if signed {
		// A contract signed after the trade deadline begins next season.
		start := g.Season
		if g.Phase > models.PhaseAfterTradeDeadline {
			start++
		}
		for season := start; season <= contract.Exp; season++ {
			p.Salaries = append(p.Salaries, models.Salary{Season: season, Amount: contract.Amount})
		}
	}
}
