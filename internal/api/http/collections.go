package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/brewnote/brewnote/internal/auth/middleware"
	"github.com/brewnote/brewnote/internal/recipe"
)

// Collection membership mutations require curation rights on the collection,
// checked against collection_curators rather than the global role.

func CreateCollectionHandler(store *recipe.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		c, err := store.PutCollection(r.Context(), recipe.Collection{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			CreatedBy:   sub,
		})
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(c)
	}
}

func ListCollectionsHandler(store *recipe.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListCollections(r.Context(), recipe.CollectionListOpts{
			Q:        strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:    parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:   parseIntDefault(r.URL.Query().Get("offset"), 0),
			ViewerID: authmw.SubjectFromContext(r.Context()),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

func AddCollectionRecipeHandler(store *recipe.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID := chi.URLParam(r, "collectionID")
		sub := authmw.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !store.IsCollectionCurator(r.Context(), sub, collectionID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var req struct {
			RecipeID string `json:"recipe_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.RecipeID) == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		// Reject dangling IDs up front; the FK would also catch it.
		if _, err := store.GetRecipe(r.Context(), req.RecipeID); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err := store.AddToCollection(r.Context(), collectionID, req.RecipeID, sub); err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RemoveCollectionRecipeHandler(store *recipe.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID := chi.URLParam(r, "collectionID")
		recipeID := chi.URLParam(r, "recipeID")
		sub := authmw.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !store.IsCollectionCurator(r.Context(), sub, collectionID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := store.RemoveFromCollection(r.Context(), collectionID, recipeID); err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListCollectionRecipesHandler(store *recipe.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID := chi.URLParam(r, "collectionID")
		list, err := store.ListCollectionRecipes(r.Context(), collectionID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

func AddCuratorsHandler(store *recipe.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID := chi.URLParam(r, "collectionID")
		sub := authmw.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !store.IsCollectionCurator(r.Context(), sub, collectionID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var req struct {
			UserIDs []string `json:"user_ids"`
			Role    string   `json:"role"` // "co" or "owner"
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.UserIDs) == 0 {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		for _, uid := range req.UserIDs {
			uid = strings.TrimSpace(uid)
			if uid == "" {
				continue
			}
			if err := store.AddCurator(r.Context(), collectionID, uid, req.Role); err != nil {
				http.Error(w, "db error", http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
