package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/brewnote/brewnote/internal/auth/middleware"
	"github.com/brewnote/brewnote/internal/rbac"
	"github.com/brewnote/brewnote/internal/recipe"
)

// writeViolations aggregates every validation problem into one 400 so a
// single resubmission can fix them all.
func writeViolations(w http.ResponseWriter, violations []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{"violations": violations})
}

func CreateRecipeHandler(store recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var rec recipe.Recipe
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if v := recipe.Validate(&rec); len(v) > 0 {
			writeViolations(w, v)
			return
		}
		rec.ID = uuid.NewString()
		rec.CreatedBy = sub
		saved, err := store.PutRecipe(r.Context(), rec)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(saved)
	}
}

func GetRecipeHandler(store recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recipeID")
		rec, err := store.GetRecipe(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		// Same visibility rule as the list: tasters read their own log only.
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		if rec.CreatedBy != sub && !rbac.Has(role, "recipe:view-all") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec)
	}
}

func UpdateRecipeHandler(store recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recipeID")
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())

		existing, err := store.GetRecipe(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if existing.CreatedBy != sub && !rbac.Has(role, "recipe:update-all") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var rec recipe.Recipe
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if v := recipe.Validate(&rec); len(v) > 0 {
			writeViolations(w, v)
			return
		}
		rec.ID = existing.ID
		rec.CreatedBy = existing.CreatedBy
		rec.CreatedAt = existing.CreatedAt

		saved, err := store.PutRecipe(r.Context(), rec)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(saved)
	}
}

func DeleteRecipeHandler(store recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recipeID")
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())

		existing, err := store.GetRecipe(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if existing.CreatedBy != sub && !rbac.Has(role, "recipe:delete-all") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := store.DeleteRecipe(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
