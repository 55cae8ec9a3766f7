package player

import "github.com/mcdev12/courtside/internal/random"

type weightedName struct {
	name   string
	weight float64
}

var firstNames = []weightedName{
	{"James", 9.1}, {"Michael", 8.5}, {"Chris", 7.2}, {"Anthony", 6.1},
	{"Marcus", 5.8}, {"David", 5.6}, {"Kevin", 5.4}, {"Brandon", 5.1},
	{"Tyler", 4.9}, {"Jordan", 4.8}, {"Malik", 4.4}, {"Darius", 4.2},
	{"Isaiah", 4.1}, {"Andre", 3.9}, {"Jalen", 3.8}, {"Derrick", 3.6},
	{"Terry", 3.3}, {"Devin", 3.2}, {"Cameron", 3.1}, {"Xavier", 2.9},
	{"Trey", 2.8}, {"Donte", 2.6}, {"Jamal", 2.5}, {"Reggie", 2.4},
	{"Vince", 2.2}, {"Stephen", 2.2}, {"Gary", 2.0}, {"Russell", 1.9},
	{"Luka", 1.4}, {"Nikola", 1.3}, {"Giannis", 1.0}, {"Bogdan", 0.9},
	{"Rudy", 0.9}, {"Ricky", 0.8}, {"Dario", 0.7}, {"Goran", 0.6},
	{"Andrei", 0.6}, {"Yao", 0.4}, {"Manu", 0.4}, {"Dirk", 0.4},
}

var lastNames = []weightedName{
	{"Williams", 9.4}, {"Johnson", 9.0}, {"Smith", 8.6}, {"Jones", 7.7},
	{"Brown", 7.3}, {"Davis", 6.6}, {"Thompson", 5.9}, {"Robinson", 5.4},
	{"Walker", 5.2}, {"Harris", 5.0}, {"Jackson", 4.9}, {"Carter", 4.6},
	{"Mitchell", 4.3}, {"Turner", 4.0}, {"Edwards", 3.8}, {"Collins", 3.6},
	{"Murray", 3.4}, {"Bell", 3.2}, {"Ward", 3.0}, {"Brooks", 2.9},
	{"Porter", 2.7}, {"Richardson", 2.6}, {"Hayes", 2.4}, {"Coleman", 2.3},
	{"Simmons", 2.2}, {"Foster", 2.0}, {"Bryant", 1.9}, {"Russell", 1.8},
	{"Griffin", 1.6}, {"Hawkins", 1.4}, {"Doncic", 0.8}, {"Jokic", 0.8},
	{"Antetokounmpo", 0.6}, {"Bogdanovic", 0.6}, {"Petrovic", 0.6},
	{"Kirilenko", 0.5}, {"Ginobili", 0.4}, {"Nowitzki", 0.4}, {"Ming", 0.3},
	{"Sabonis", 0.3},
}

var countries = []weightedName{
	{"USA", 80}, {"Canada", 4}, {"France", 2.5}, {"Serbia", 2},
	{"Spain", 1.8}, {"Australia", 1.8}, {"Germany", 1.5}, {"Greece", 1.2},
	{"Slovenia", 1}, {"Croatia", 1}, {"Lithuania", 1}, {"Argentina", 0.9},
	{"Nigeria", 0.8}, {"Brazil", 0.5},
}

// GenName draws a first name, last name, and birth country from the weighted
// pools.
func GenName(rng *random.Source) (first, last, country string) {
	weight := func(n weightedName) float64 { return n.weight }
	first = random.WeightedChoice(rng, firstNames, weight).name
	last = random.WeightedChoice(rng, lastNames, weight).name
	country = random.WeightedChoice(rng, countries, weight).name
	return first, last, country
}
