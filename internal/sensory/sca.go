package sensory

import "math"

// 2004 cupping scale bounds.
const (
	scaAttributeFloor = 6.0
	scaScoreFloor     = 60.0
	scaScoreCeiling   = 100.0

	taintPointsPerCup = 2.0
	faultPointsPerCup = 4.0
)

// CalculateSCAScore applies the SCA 2004 cupping formula: the ten quality
// attributes are summed (an absent attribute counts as the 6.00 scale floor,
// not zero) and cup-defect penalties are subtracted. The defect fields hold
// penalty points, so they are converted back to whole cup counts and
// remultiplied; the double floor keeps repeated recomputation from drifting
// when a stored value is already a clean multiple of its cup weight.
//
// Pure and total: no input can make it fail.
func CalculateSCAScore(e TraditionalSCA) float64 {
	attrs := []*float64{
		e.Fragrance, e.Flavor, e.Aftertaste, e.Acidity, e.Body,
		e.Balance, e.Sweetness, e.CleanCup, e.Uniformity, e.Overall,
	}
	sum := 0.0
	for _, a := range attrs {
		sum += floatOr(a, scaAttributeFloor)
	}

	taintCups := math.Floor(e.TaintDefects / taintPointsPerCup)
	faultCups := math.Floor(e.FaultDefects / faultPointsPerCup)
	score := sum - taintCups*taintPointsPerCup - faultCups*faultPointsPerCup

	return clamp(roundQuarter(score), scaScoreFloor, scaScoreCeiling)
}

// roundQuarter rounds to the nearest 0.25, the resolution of both protocols.
func roundQuarter(v float64) float64 {
	return math.Round(v*4) / 4
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
