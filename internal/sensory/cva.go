package sensory

// CVA affective formula constants (SCA Standard 103-P/2024). With all eight
// impressions at 9 and no defective cups the formula lands on exactly 100:
// 0.65625*72 + 52.75 = 100.
const (
	cvaSlope     = 0.65625
	cvaIntercept = 52.75

	cvaNeutralImpression = 5

	nonUniformPointsPerCup = 2.0
	defectivePointsPerCup  = 4.0

	cvaScoreFloor   = 58.0
	cvaScoreCeiling = 100.0
)

// CalculateCVAScore applies the CVA affective formula to the eight 1-9
// quality impressions (an absent impression counts as the neutral 5) and the
// raw non-uniform/defective cup counts. Pure and total.
func CalculateCVAScore(e CVAAffective) float64 {
	impressions := []*int{
		e.Fragrance, e.Aroma, e.Flavor, e.Aftertaste,
		e.Acidity, e.Sweetness, e.Mouthfeel, e.Overall,
	}
	sum := 0
	for _, p := range impressions {
		sum += intOr(p, cvaNeutralImpression)
	}

	score := cvaSlope*float64(sum) + cvaIntercept -
		nonUniformPointsPerCup*float64(e.NonUniformCups) -
		defectivePointsPerCup*float64(e.DefectiveCups)

	return clamp(roundQuarter(score), cvaScoreFloor, cvaScoreCeiling)
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
