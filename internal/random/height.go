package random

type heightBucket struct {
	inches int
	weight float64
}

// heightWeights approximates the skewed distribution of pro basketball
// heights, in inches from 5'7" to 7'5". The bulk sits between 6'3" and 6'10"
// with thin tails on both ends.
var heightWeights = []heightBucket{
	{67, 0.1}, {68, 0.2}, {69, 0.4}, {70, 0.7}, {71, 1.1},
	{72, 1.8}, {73, 2.8}, {74, 4.2}, {75, 6.4}, {76, 8.6},
	{77, 10.2}, {78, 11.2}, {79, 11.4}, {80, 10.8}, {81, 9.6},
	{82, 8.0}, {83, 5.6}, {84, 3.6}, {85, 1.9}, {86, 0.8},
	{87, 0.4}, {88, 0.2}, {89, 0.1},
}

// HeightDist draws a height in inches from the skewed league height
// distribution.
func (s *Source) HeightDist() float64 {
	pick := WeightedChoice(s, heightWeights, func(h heightBucket) float64 { return h.weight })
	return float64(pick.inches)
}
