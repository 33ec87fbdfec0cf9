package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	authmw "github.com/brewnote/brewnote/internal/auth/middleware"
	"github.com/brewnote/brewnote/internal/rbac"
	"github.com/brewnote/brewnote/internal/recipe"
)

func ListRecipesHandler(store recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs := r.URL.Query()
		list, err := store.ListRecipes(r.Context(), recipe.ListOpts{
			Q:                strings.TrimSpace(qs.Get("q")),
			Origin:           strings.TrimSpace(qs.Get("origin")),
			BrewingMethod:    strings.TrimSpace(qs.Get("brewing_method")),
			EvaluationSystem: strings.TrimSpace(qs.Get("evaluation_system")),
			Limit:            parseIntDefault(qs.Get("limit"), 50),
			Offset:           parseIntDefault(qs.Get("offset"), 0),
			ViewerID:         authmw.SubjectFromContext(r.Context()),
			ViewerRole:       rbac.RoleFromContext(r.Context()),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list) // [] when empty
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
