package progress

import "math"

// Rounding is half-up (toward +Inf) to match the scores shown to learners.

func roundInt(v float64) int {
	return int(math.Floor(v + 0.5))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}
