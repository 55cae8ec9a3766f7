package team

import (
	"sort"

	"github.com/mcdev12/courtside/internal/models"
)

// DefaultTeams returns the built-in 30-team league, two conferences of three
// divisions each, with popRank already assigned.
func DefaultTeams() []*models.Team {
	teams := []*models.Team{
		{TID: 0, CID: 0, DID: 2, Region: "Atlanta", Name: "Gold Club", Abbrev: "ATL", Pop: 4.3},
		{TID: 1, CID: 0, DID: 2, Region: "Baltimore", Name: "Crabs", Abbrev: "BAL", Pop: 2.2},
		{TID: 2, CID: 0, DID: 0, Region: "Boston", Name: "Massacre", Abbrev: "BOS", Pop: 4.4},
		{TID: 3, CID: 0, DID: 1, Region: "Chicago", Name: "Whirlwinds", Abbrev: "CHI", Pop: 8.8},
		{TID: 4, CID: 0, DID: 1, Region: "Cincinnati", Name: "Riots", Abbrev: "CIN", Pop: 1.6},
		{TID: 5, CID: 0, DID: 1, Region: "Cleveland", Name: "Curses", Abbrev: "CLE", Pop: 1.9},
		{TID: 6, CID: 1, DID: 3, Region: "Dallas", Name: "Snipers", Abbrev: "DAL", Pop: 4.7},
		{TID: 7, CID: 1, DID: 4, Region: "Denver", Name: "High", Abbrev: "DEN", Pop: 2.2},
		{TID: 8, CID: 0, DID: 1, Region: "Detroit", Name: "Muscle", Abbrev: "DET", Pop: 4.0},
		{TID: 9, CID: 1, DID: 3, Region: "Houston", Name: "Apollos", Abbrev: "HOU", Pop: 4.3},
		{TID: 10, CID: 1, DID: 5, Region: "Las Vegas", Name: "Blue Chips", Abbrev: "LV", Pop: 1.7},
		{TID: 11, CID: 1, DID: 5, Region: "Los Angeles", Name: "Earthquakes", Abbrev: "LA", Pop: 12.3},
		{TID: 12, CID: 1, DID: 3, Region: "Mexico City", Name: "Aztecs", Abbrev: "MXC", Pop: 19.4},
		{TID: 13, CID: 0, DID: 2, Region: "Miami", Name: "Cyclones", Abbrev: "MIA", Pop: 5.4},
		{TID: 14, CID: 1, DID: 4, Region: "Minneapolis", Name: "Blizzards", Abbrev: "MIN", Pop: 2.6},
		{TID: 15, CID: 0, DID: 0, Region: "Montreal", Name: "Mounties", Abbrev: "MON", Pop: 4.0},
		{TID: 16, CID: 0, DID: 0, Region: "New York", Name: "Bankers", Abbrev: "NYC", Pop: 18.7},
		{TID: 17, CID: 0, DID: 0, Region: "Philadelphia", Name: "Cheesesteaks", Abbrev: "PHI", Pop: 5.4},
		{TID: 18, CID: 1, DID: 3, Region: "Phoenix", Name: "Vultures", Abbrev: "PHO", Pop: 3.4},
		{TID: 19, CID: 0, DID: 1, Region: "Pittsburgh", Name: "Rivers", Abbrev: "PIT", Pop: 1.8},
		{TID: 20, CID: 1, DID: 4, Region: "Portland", Name: "Roses", Abbrev: "POR", Pop: 1.8},
		{TID: 21, CID: 1, DID: 5, Region: "Sacramento", Name: "Gold Rush", Abbrev: "SAC", Pop: 1.6},
		{TID: 22, CID: 1, DID: 5, Region: "San Diego", Name: "Pandas", Abbrev: "SD", Pop: 2.9},
		{TID: 23, CID: 1, DID: 5, Region: "San Francisco", Name: "Venture Capitalists", Abbrev: "SF", Pop: 3.4},
		{TID: 24, CID: 1, DID: 4, Region: "Seattle", Name: "Symphony", Abbrev: "SEA", Pop: 3.0},
		{TID: 25, CID: 1, DID: 3, Region: "St. Louis", Name: "Spirits", Abbrev: "STL", Pop: 2.2},
		{TID: 26, CID: 0, DID: 2, Region: "Tampa", Name: "Turtles", Abbrev: "TPA", Pop: 2.2},
		{TID: 27, CID: 0, DID: 0, Region: "Toronto", Name: "Beavers", Abbrev: "TOR", Pop: 6.3},
		{TID: 28, CID: 1, DID: 4, Region: "Vancouver", Name: "Whalers", Abbrev: "VAN", Pop: 2.3},
		{TID: 29, CID: 0, DID: 2, Region: "Washington", Name: "Monuments", Abbrev: "WAS", Pop: 4.2},
	}
	AddPopRank(teams)
	return teams
}

// AddPopRank assigns popRank 1..N by descending population. The ranking is
// independent of the slice order; ties keep the lower tid first.
func AddPopRank(teams []*models.Team) {
	sorted := make([]*models.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pop != sorted[j].Pop {
			return sorted[i].Pop > sorted[j].Pop
		}
		return sorted[i].TID < sorted[j].TID
	})

	rank := make(map[int]int, len(sorted))
	for i, t := range sorted {
		rank[t.TID] = i + 1
	}
	for _, t := range teams {
		t.PopRank = rank[t.TID]
	}
}
