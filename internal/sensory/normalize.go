package sensory

// Infer picks the evaluation-system tag from whichever sub-assessment is
// populated, checked in fixed priority order. Records with none of the four
// sub-objects are legacy ratings.
func Infer(rec SensationRecord) System {
	switch {
	case rec.TraditionalSCA != nil:
		return SystemTraditionalSCA
	case rec.CVAAffective != nil:
		return SystemCVAAffective
	case rec.CVADescriptive != nil:
		return SystemCVADescriptive
	case rec.QuickTasting != nil:
		return SystemQuickTasting
	default:
		return SystemLegacy
	}
}

// Normalize resolves the evaluation-system tag to a value the
// evaluation_system column accepts. Sub-assessment payloads are never
// modified, so a quick-tasting capture survives under the legacy tag and can
// be re-displayed later. Normalize never fails; an unknown tag is coerced to
// legacy rather than rejected.
//
// Normalize is idempotent: a record whose tag is already persistable and
// backed by its payload comes back unchanged.
func Normalize(rec SensationRecord) SensationRecord {
	sys := rec.EvaluationSystem
	if sys == "" {
		sys = Infer(rec)
	}

	// A tag naming an empty sub-schema is stale UI state; re-infer. Legacy is
	// exempt because it is also the home for remapped quick-tasting payloads.
	switch sys {
	case SystemTraditionalSCA:
		if rec.TraditionalSCA == nil {
			sys = Infer(rec)
		}
	case SystemCVAAffective:
		if rec.CVAAffective == nil {
			sys = Infer(rec)
		}
	case SystemCVADescriptive:
		if rec.CVADescriptive == nil {
			sys = Infer(rec)
		}
	}

	if !sys.Persistable() {
		sys = SystemLegacy
	}
	rec.EvaluationSystem = sys
	return rec
}

// RecomputeScores derives the final score for whichever scored sub-assessment
// is present. Client-supplied score fields are overwritten; the calculators
// are the only source of truth.
func RecomputeScores(rec SensationRecord) SensationRecord {
	if rec.TraditionalSCA != nil {
		sca := *rec.TraditionalSCA
		sca.FinalScore = CalculateSCAScore(sca)
		rec.TraditionalSCA = &sca
	}
	if rec.CVAAffective != nil {
		cva := *rec.CVAAffective
		cva.CVAScore = CalculateCVAScore(cva)
		rec.CVAAffective = &cva
	}
	return rec
}

// FinalScore returns the derived score for the record's active system, if the
// system produces one. Descriptive and quick-tasting modes do not.
func FinalScore(rec SensationRecord) (float64, bool) {
	switch {
	case rec.TraditionalSCA != nil:
		return rec.TraditionalSCA.FinalScore, true
	case rec.CVAAffective != nil:
		return rec.CVAAffective.CVAScore, true
	}
	return 0, false
}
