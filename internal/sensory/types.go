package sensory

// System tags the assessment schema a SensationRecord was captured under.
type System string

const (
	SystemLegacy         System = "legacy"
	SystemTraditionalSCA System = "traditional-sca"
	SystemCVADescriptive System = "cva-descriptive"
	SystemCVAAffective   System = "cva-affective"
	SystemQuickTasting   System = "quick-tasting"
)

// Persistable reports whether the tag is accepted by the evaluation_system
// column. quick-tasting is display-only and is remapped to legacy on write.
func (s System) Persistable() bool {
	switch s {
	case SystemLegacy, SystemTraditionalSCA, SystemCVADescriptive, SystemCVAAffective:
		return true
	}
	return false
}

// SensationRecord is the sensory-evaluation envelope attached to a recipe.
// At most one sub-assessment is populated; the flat 1-10 fields are the
// original legacy rating schema and need no sub-object.
type SensationRecord struct {
	EvaluationSystem System `json:"evaluation_system,omitempty"`

	// Legacy ratings (1-10).
	OverallImpression *float64 `json:"overall_impression,omitempty"`
	Acidity           *float64 `json:"acidity,omitempty"`
	Body              *float64 `json:"body,omitempty"`
	Sweetness         *float64 `json:"sweetness,omitempty"`
	Flavor            *float64 `json:"flavor,omitempty"`
	Aftertaste        *float64 `json:"aftertaste,omitempty"`
	Balance           *float64 `json:"balance,omitempty"`
	TastingNotes      string   `json:"tasting_notes,omitempty"`

	TraditionalSCA *TraditionalSCA `json:"traditional_sca,omitempty"`
	CVAAffective   *CVAAffective   `json:"cva_affective,omitempty"`
	CVADescriptive *CVADescriptive `json:"cva_descriptive,omitempty"`
	QuickTasting   *QuickTasting   `json:"quick_tasting,omitempty"`
}

// TraditionalSCA holds a 2004-protocol cupping sheet. Attributes are
// 6.00-10.00 in 0.25 steps. Defect fields carry already-multiplied penalty
// points: 2 per tainted cup, 4 per faulty cup, 0-5 cups each.
type TraditionalSCA struct {
	Fragrance  *float64 `json:"fragrance,omitempty"`
	Flavor     *float64 `json:"flavor,omitempty"`
	Aftertaste *float64 `json:"aftertaste,omitempty"`
	Acidity    *float64 `json:"acidity,omitempty"`
	Body       *float64 `json:"body,omitempty"`
	Balance    *float64 `json:"balance,omitempty"`
	Sweetness  *float64 `json:"sweetness,omitempty"`
	CleanCup   *float64 `json:"clean_cup,omitempty"`
	Uniformity *float64 `json:"uniformity,omitempty"`
	Overall    *float64 `json:"overall,omitempty"`

	AcidityIntensity string `json:"acidity_intensity,omitempty"` // low|medium|high
	BodyLevel        string `json:"body_level,omitempty"`        // thin|medium|heavy

	TaintDefects float64 `json:"taint_defects"` // penalty points, 2 per cup
	FaultDefects float64 `json:"fault_defects"` // penalty points, 4 per cup

	FinalScore float64 `json:"final_score"` // derived, recomputed on every write
}

// CVAAffective holds the 9-point quality-impression section of a CVA
// assessment plus raw cup counts (0-5 each).
type CVAAffective struct {
	Fragrance  *int `json:"fragrance,omitempty"`
	Aroma      *int `json:"aroma,omitempty"`
	Flavor     *int `json:"flavor,omitempty"`
	Aftertaste *int `json:"aftertaste,omitempty"`
	Acidity    *int `json:"acidity,omitempty"`
	Sweetness  *int `json:"sweetness,omitempty"`
	Mouthfeel  *int `json:"mouthfeel,omitempty"`
	Overall    *int `json:"overall,omitempty"`

	NonUniformCups int `json:"non_uniform_cups"`
	DefectiveCups  int `json:"defective_cups"`

	CVAScore float64 `json:"cva_score"` // derived, recomputed on every write
}

// CVADescriptive is a sensory fingerprint: 0-15 intensities plus CATA
// descriptor selections. No score is computed for this mode.
type CVADescriptive struct {
	Fragrance  *int `json:"fragrance,omitempty"`
	Aroma      *int `json:"aroma,omitempty"`
	Flavor     *int `json:"flavor,omitempty"`
	Aftertaste *int `json:"aftertaste,omitempty"`
	Acidity    *int `json:"acidity,omitempty"`
	Sweetness  *int `json:"sweetness,omitempty"`
	Mouthfeel  *int `json:"mouthfeel,omitempty"`

	FragranceAromaDescriptors   []string `json:"fragrance_aroma_descriptors,omitempty"`
	FlavorAftertasteDescriptors []string `json:"flavor_aftertaste_descriptors,omitempty"`
	MainTastes                  []string `json:"main_tastes,omitempty"`
	MouthfeelDescriptors        []string `json:"mouthfeel_descriptors,omitempty"`

	DescriptorNotes string `json:"descriptor_notes,omitempty"`
	RoastLevel      string `json:"roast_level,omitempty"`
	AssessmentDate  string `json:"assessment_date,omitempty"`
	AssessorID      string `json:"assessor_id,omitempty"`
}

// QuickTasting is a hybrid capture mode: descriptive intensities (0-15), one
// affective quality score (1-9), and a single descriptor list. It is never
// stored under its own tag; the write path files it under legacy.
type QuickTasting struct {
	Fragrance  *int `json:"fragrance,omitempty"`
	Flavor     *int `json:"flavor,omitempty"`
	Aftertaste *int `json:"aftertaste,omitempty"`
	Acidity    *int `json:"acidity,omitempty"`
	Sweetness  *int `json:"sweetness,omitempty"`
	Mouthfeel  *int `json:"mouthfeel,omitempty"`

	OverallQuality *int `json:"overall_quality,omitempty"` // 1-9

	Descriptors []string `json:"descriptors,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}
