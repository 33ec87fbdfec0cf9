package sensory

import "fmt"

// CATA selection ceilings per SCA Standard 103-P/2024. One table for every
// write path so the limits cannot drift between create and update.
const (
	LimitFragranceAroma   = 5
	LimitFlavorAftertaste = 5
	LimitMainTastes       = 2
	LimitMouthfeel        = 2
	LimitQuickDescriptors = 5
)

// ValidateDescriptors checks the CATA group ceilings for whichever
// sub-assessment carries descriptor selections. It returns every violation,
// in group order, and never fails; the caller decides whether a non-empty
// list blocks the save.
func ValidateDescriptors(rec SensationRecord) []string {
	var out []string
	if d := rec.CVADescriptive; d != nil {
		groups := []struct {
			name  string
			sel   []string
			limit int
		}{
			{"fragrance_aroma", d.FragranceAromaDescriptors, LimitFragranceAroma},
			{"flavor_aftertaste", d.FlavorAftertasteDescriptors, LimitFlavorAftertaste},
			{"main_tastes", d.MainTastes, LimitMainTastes},
			{"mouthfeel", d.MouthfeelDescriptors, LimitMouthfeel},
		}
		for _, g := range groups {
			if len(g.sel) > g.limit {
				out = append(out, fmt.Sprintf("%s: %d/%d descriptors selected", g.name, len(g.sel), g.limit))
			}
		}
	}
	if q := rec.QuickTasting; q != nil {
		if len(q.Descriptors) > LimitQuickDescriptors {
			out = append(out, fmt.Sprintf("descriptors: %d/%d descriptors selected", len(q.Descriptors), LimitQuickDescriptors))
		}
	}
	return out
}

// ValidateDefects checks the defect fields at the input boundary. The SCA
// sheet stores post-multiplied penalty points; a value that is not a clean
// multiple of its cup weight would silently lose points in the score
// round-trip, so it is rejected here instead of guessed at.
func ValidateDefects(rec SensationRecord) []string {
	var out []string
	if s := rec.TraditionalSCA; s != nil {
		if s.TaintDefects < 0 || s.TaintDefects > 5*taintPointsPerCup {
			out = append(out, fmt.Sprintf("taint_defects: %.2f points outside 0-%.0f", s.TaintDefects, 5*taintPointsPerCup))
		} else if remainder(s.TaintDefects, taintPointsPerCup) != 0 {
			out = append(out, fmt.Sprintf("taint_defects: %.2f points is not a multiple of %.0f per tainted cup", s.TaintDefects, taintPointsPerCup))
		}
		if s.FaultDefects < 0 || s.FaultDefects > 5*faultPointsPerCup {
			out = append(out, fmt.Sprintf("fault_defects: %.2f points outside 0-%.0f", s.FaultDefects, 5*faultPointsPerCup))
		} else if remainder(s.FaultDefects, faultPointsPerCup) != 0 {
			out = append(out, fmt.Sprintf("fault_defects: %.2f points is not a multiple of %.0f per faulty cup", s.FaultDefects, faultPointsPerCup))
		}
	}
	if c := rec.CVAAffective; c != nil {
		if c.NonUniformCups < 0 || c.NonUniformCups > 5 {
			out = append(out, fmt.Sprintf("non_uniform_cups: %d outside 0-5", c.NonUniformCups))
		}
		if c.DefectiveCups < 0 || c.DefectiveCups > 5 {
			out = append(out, fmt.Sprintf("defective_cups: %d outside 0-5", c.DefectiveCups))
		}
	}
	return out
}

func remainder(v, step float64) float64 {
	n := v / step
	return v - float64(int(n))*step
}
