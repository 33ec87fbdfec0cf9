package http

import (
	"encoding/json"
	"net/http"

	"github.com/brewnote/brewnote/internal/sensory"
)

// PreviewScoreHandler recomputes the derived score for an in-progress
// sensation record without persisting anything. The form calls it on every
// attribute change so the displayed score always matches what a save would
// store. Violations are advisory here; the write path decides whether they
// block.
func PreviewScoreHandler() http.HandlerFunc {
	type resp struct {
		EvaluationSystem sensory.System `json:"evaluation_system"`
		FinalScore       *float64       `json:"final_score,omitempty"`
		Violations       []string       `json:"violations"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var rec sensory.SensationRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		norm := sensory.RecomputeScores(sensory.Normalize(rec))

		out := resp{EvaluationSystem: norm.EvaluationSystem, Violations: []string{}}
		if v, ok := sensory.FinalScore(norm); ok {
			out.FinalScore = &v
		}
		out.Violations = append(out.Violations, sensory.ValidateDescriptors(norm)...)
		out.Violations = append(out.Violations, sensory.ValidateDefects(norm)...)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
