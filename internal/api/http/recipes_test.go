package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/brewnote/brewnote/internal/api/http"
	authmw "github.com/brewnote/brewnote/internal/auth/middleware"
	"github.com/brewnote/brewnote/internal/db"
	"github.com/brewnote/brewnote/internal/rbac"
	"github.com/brewnote/brewnote/internal/recipe"
)

func newRecipeRouter(t *testing.T) (http.Handler, *recipe.SQLStore) {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	dbh.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbh.Close() })

	store := recipe.NewSQLStore(dbh, "sqlite", nil)
	r := chi.NewRouter()
	r.Get("/recipes/{recipeID}", api.GetRecipeHandler(store))
	return r, store
}

func asViewer(req *http.Request, sub, role string) *http.Request {
	ctx := authmw.WithSubject(req.Context(), sub)
	ctx = rbac.WithRole(ctx, role)
	return req.WithContext(ctx)
}

func TestGetRecipe_ViewerScoped(t *testing.T) {
	r, store := newRecipeRouter(t)
	ctx := context.Background()

	rec := recipe.Recipe{ID: "r1", Name: "Aeropress Huila", CreatedBy: "u1"}
	if _, err := store.PutRecipe(ctx, rec); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		sub, role string
		want      int
	}{
		{"u1", "taster", http.StatusOK},        // owner
		{"u2", "taster", http.StatusForbidden}, // guessed UUID, not yours
		{"u2", "curator", http.StatusOK},       // curators see every recipe
		{"u2", "admin", http.StatusOK},
	}
	for _, c := range cases {
		req := asViewer(httptest.NewRequest("GET", "/recipes/r1", nil), c.sub, c.role)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != c.want {
			t.Fatalf("%s/%s: want %d, got %d", c.sub, c.role, c.want, w.Code)
		}
		if c.want == http.StatusForbidden && strings.Contains(w.Body.String(), "Huila") {
			t.Fatalf("forbidden response leaked recipe data: %s", w.Body.String())
		}
	}
}
