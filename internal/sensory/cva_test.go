package sensory_test

import (
	"math"
	"testing"

	"github.com/brewnote/brewnote/internal/sensory"
)

func ip(v int) *int { return &v }

func fullCVASheet(v int) sensory.CVAAffective {
	return sensory.CVAAffective{
		Fragrance: ip(v), Aroma: ip(v), Flavor: ip(v), Aftertaste: ip(v),
		Acidity: ip(v), Sweetness: ip(v), Mouthfeel: ip(v), Overall: ip(v),
	}
}

func TestCVAScore_BoundaryIdentity(t *testing.T) {
	// All nines, no defects: 0.65625*72 + 52.75 must be exactly 100.
	if got := sensory.CalculateCVAScore(fullCVASheet(9)); got != 100.00 {
		t.Fatalf("all nines: want 100.00, got %v", got)
	}
}

func TestCVAScore_NeutralSheet(t *testing.T) {
	// All fives: 0.65625*40 + 52.75 = 79.00.
	if got := sensory.CalculateCVAScore(fullCVASheet(5)); got != 79.00 {
		t.Fatalf("neutral sheet: want 79.00, got %v", got)
	}
	// Absent impressions default to the neutral 5, so an empty sheet scores
	// the same as an explicit all-fives sheet.
	if got := sensory.CalculateCVAScore(sensory.CVAAffective{}); got != 79.00 {
		t.Fatalf("empty sheet: want 79.00, got %v", got)
	}
}

func TestCVAScore_DefectPenalties(t *testing.T) {
	e := fullCVASheet(9)
	e.NonUniformCups = 1
	e.DefectiveCups = 1
	if got := sensory.CalculateCVAScore(e); got != 94.00 {
		t.Fatalf("want 100 - 2 - 4 = 94.00, got %v", got)
	}
}

func TestCVAScore_BoundsAndQuarterStep(t *testing.T) {
	for v := 1; v <= 9; v++ {
		for nu := 0; nu <= 5; nu++ {
			for d := 0; d <= 5; d++ {
				e := fullCVASheet(v)
				e.NonUniformCups = nu
				e.DefectiveCups = d
				got := sensory.CalculateCVAScore(e)
				if got < 58 || got > 100 {
					t.Fatalf("v=%d nu=%d d=%d: score %v out of [58,100]", v, nu, d, got)
				}
				if r := math.Mod(got*4, 1); r != 0 {
					t.Fatalf("v=%d: score %v not a multiple of 0.25", v, got)
				}
			}
		}
	}
}

func TestCVAScore_QuarterRounding(t *testing.T) {
	// Sum 41 gives 0.65625*41 + 52.75 = 79.65625, which rounds to 79.75.
	e := fullCVASheet(5)
	e.Fragrance = ip(6)
	if got := sensory.CalculateCVAScore(e); got != 79.75 {
		t.Fatalf("want 79.75, got %v", got)
	}
}
