package sensory_test

import (
	"reflect"
	"testing"

	"github.com/brewnote/brewnote/internal/sensory"
)

func TestInfer_PriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		rec  sensory.SensationRecord
		want sensory.System
	}{
		{"sca", sensory.SensationRecord{TraditionalSCA: &sensory.TraditionalSCA{}}, sensory.SystemTraditionalSCA},
		{"cva-affective", sensory.SensationRecord{CVAAffective: &sensory.CVAAffective{}}, sensory.SystemCVAAffective},
		{"cva-descriptive", sensory.SensationRecord{CVADescriptive: &sensory.CVADescriptive{}}, sensory.SystemCVADescriptive},
		{"quick", sensory.SensationRecord{QuickTasting: &sensory.QuickTasting{}}, sensory.SystemQuickTasting},
		{"bare legacy", sensory.SensationRecord{OverallImpression: fp(7)}, sensory.SystemLegacy},
		{"empty", sensory.SensationRecord{}, sensory.SystemLegacy},
	}
	for _, tc := range cases {
		if got := sensory.Infer(tc.rec); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
	// SCA wins when several sub-objects are present.
	rec := sensory.SensationRecord{
		TraditionalSCA: &sensory.TraditionalSCA{},
		CVAAffective:   &sensory.CVAAffective{},
	}
	if got := sensory.Infer(rec); got != sensory.SystemTraditionalSCA {
		t.Fatalf("priority: want traditional-sca, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rec := sensory.SensationRecord{
		EvaluationSystem: sensory.SystemCVAAffective,
		CVAAffective:     &sensory.CVAAffective{Flavor: ip(8), NonUniformCups: 1},
	}
	once := sensory.Normalize(rec)
	twice := sensory.Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize not idempotent: %+v vs %+v", once, twice)
	}
	if !reflect.DeepEqual(once, rec) {
		t.Fatalf("already-normalized record changed: %+v vs %+v", once, rec)
	}
}

func TestNormalize_QuickTastingRemap(t *testing.T) {
	q := &sensory.QuickTasting{
		Flavor:         ip(12),
		OverallQuality: ip(8),
		Descriptors:    []string{"jasmine", "stone fruit"},
		Notes:          "washed Gesha",
	}
	got := sensory.Normalize(sensory.SensationRecord{
		EvaluationSystem: sensory.SystemQuickTasting,
		QuickTasting:     q,
	})
	if got.EvaluationSystem != sensory.SystemLegacy {
		t.Fatalf("want legacy tag, got %q", got.EvaluationSystem)
	}
	// Lossy tag, lossless data: the payload must survive untouched.
	if !reflect.DeepEqual(got.QuickTasting, q) {
		t.Fatalf("quick-tasting payload changed: %+v", got.QuickTasting)
	}
	// Re-normalizing the remapped record must not resurrect the raw tag.
	again := sensory.Normalize(got)
	if again.EvaluationSystem != sensory.SystemLegacy {
		t.Fatalf("remap not stable, got %q", again.EvaluationSystem)
	}
}

func TestNormalize_UnknownTagCoercedToLegacy(t *testing.T) {
	got := sensory.Normalize(sensory.SensationRecord{EvaluationSystem: "espresso-3000"})
	if got.EvaluationSystem != sensory.SystemLegacy {
		t.Fatalf("want legacy, got %q", got.EvaluationSystem)
	}
}

func TestNormalize_MissingTagInferred(t *testing.T) {
	got := sensory.Normalize(sensory.SensationRecord{CVADescriptive: &sensory.CVADescriptive{}})
	if got.EvaluationSystem != sensory.SystemCVADescriptive {
		t.Fatalf("want cva-descriptive, got %q", got.EvaluationSystem)
	}
}

func TestNormalize_StaleTagReinferred(t *testing.T) {
	// Tag says SCA but only the affective sheet is populated.
	got := sensory.Normalize(sensory.SensationRecord{
		EvaluationSystem: sensory.SystemTraditionalSCA,
		CVAAffective:     &sensory.CVAAffective{},
	})
	if got.EvaluationSystem != sensory.SystemCVAAffective {
		t.Fatalf("want cva-affective, got %q", got.EvaluationSystem)
	}
}

func TestRecomputeScores_OverwritesClientValues(t *testing.T) {
	rec := sensory.SensationRecord{
		TraditionalSCA: &sensory.TraditionalSCA{FinalScore: 999},
		CVAAffective:   &sensory.CVAAffective{CVAScore: -1},
	}
	got := sensory.RecomputeScores(rec)
	if got.TraditionalSCA.FinalScore != 60.00 {
		t.Fatalf("sca: want 60.00, got %v", got.TraditionalSCA.FinalScore)
	}
	if got.CVAAffective.CVAScore != 79.00 {
		t.Fatalf("cva: want 79.00, got %v", got.CVAAffective.CVAScore)
	}
	// Input record untouched.
	if rec.TraditionalSCA.FinalScore != 999 {
		t.Fatalf("input mutated: %v", rec.TraditionalSCA.FinalScore)
	}
}
