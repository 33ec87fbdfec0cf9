package http

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	authmw "github.com/brewnote/brewnote/internal/auth/middleware"
	"github.com/brewnote/brewnote/internal/rbac"
	"github.com/brewnote/brewnote/internal/recipe"
)

// GET /export/recipes?format=csv|markdown|json
// Exports the viewer's recipe summaries in a shareable format.
func ExportRecipesHandler(store recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListRecipes(r.Context(), recipe.ListOpts{
			Limit:      200,
			ViewerID:   authmw.SubjectFromContext(r.Context()),
			ViewerRole: rbac.RoleFromContext(r.Context()),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		switch strings.ToLower(r.URL.Query().Get("format")) {
		case "", "json":
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Disposition", `attachment; filename="recipes.json"`)
			_ = json.NewEncoder(w).Encode(list)

		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="recipes.csv"`)
			cw := csv.NewWriter(w)
			_ = cw.Write([]string{"id", "name", "origin", "brewing_method", "evaluation_system", "final_score"})
			for _, sm := range list {
				_ = cw.Write([]string{sm.ID, sm.Name, sm.Origin, sm.BrewingMethod, sm.EvaluationSystem, scoreCell(sm.FinalScore)})
			}
			cw.Flush()

		case "markdown", "md":
			w.Header().Set("Content-Type", "text/markdown")
			w.Header().Set("Content-Disposition", `attachment; filename="recipes.md"`)
			fmt.Fprintln(w, "| Name | Origin | Method | System | Score |")
			fmt.Fprintln(w, "|------|--------|--------|--------|-------|")
			for _, sm := range list {
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
					mdCell(sm.Name), mdCell(sm.Origin), mdCell(sm.BrewingMethod), sm.EvaluationSystem, scoreCell(sm.FinalScore))
			}

		default:
			http.Error(w, "unknown format", http.StatusBadRequest)
		}
	}
}

func scoreCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
