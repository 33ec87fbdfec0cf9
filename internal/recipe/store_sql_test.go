package recipe_test

import (
	"context"
	"testing"

	"github.com/brewnote/brewnote/internal/db"
	"github.com/brewnote/brewnote/internal/recipe"
	"github.com/brewnote/brewnote/internal/sensory"
	syncx "github.com/brewnote/brewnote/internal/sync"
)

func newTestStore(t *testing.T) (*recipe.SQLStore, *syncx.EventRepo) {
	t.Helper()
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	dbh.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbh.Close() })
	events := syncx.NewEventRepo(dbh)
	return recipe.NewSQLStore(dbh, "sqlite", events), events
}

func seedRecipe(id string, sens *sensory.SensationRecord) recipe.Recipe {
	return recipe.Recipe{
		ID:   id,
		Name: "Chemex Yirgacheffe",
		BeanInfo: recipe.BeanInfo{
			Origin:           "Ethiopia",
			ProcessingMethod: "natural",
		},
		BrewingParameters: recipe.BrewingParameters{
			BrewingMethod: "chemex",
			GrinderModel:  "Baratza Encore",
			GrinderUnit:   "dial",
		},
		Measurements: recipe.Measurements{CoffeeBeans: 30, Water: 500},
		Sensation:    sens,
		CreatedBy:    "u1",
	}
}

func fv(v float64) *float64 { return &v }
func iv(v int) *int         { return &v }

func TestStore_QuickTastingRemappedAtWrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sens := &sensory.SensationRecord{
		EvaluationSystem: sensory.SystemQuickTasting,
		QuickTasting: &sensory.QuickTasting{
			Flavor:         iv(12),
			OverallQuality: iv(8),
			Descriptors:    []string{"jasmine", "peach"},
		},
	}
	if _, err := store.PutRecipe(ctx, seedRecipe("r1", sens)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetRecipe(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Sensation == nil {
		t.Fatalf("sensation record lost")
	}
	// Lossy tag, lossless payload: the CHECK constraint only ever sees legacy.
	if got.Sensation.EvaluationSystem != sensory.SystemLegacy {
		t.Fatalf("stored tag: want legacy, got %q", got.Sensation.EvaluationSystem)
	}
	q := got.Sensation.QuickTasting
	if q == nil || q.OverallQuality == nil || *q.OverallQuality != 8 || len(q.Descriptors) != 2 {
		t.Fatalf("quick-tasting payload not preserved: %+v", q)
	}
}

func TestStore_ScoresRecomputedOnWrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sca := &sensory.TraditionalSCA{FinalScore: 12345} // client-sent score is ignored
	sca.Fragrance, sca.Flavor, sca.Aftertaste, sca.Acidity, sca.Body = fv(8), fv(8), fv(8), fv(8), fv(8)
	sca.Balance, sca.Sweetness, sca.CleanCup, sca.Uniformity, sca.Overall = fv(8), fv(8), fv(10), fv(10), fv(8)

	sens := &sensory.SensationRecord{TraditionalSCA: sca}
	saved, err := store.PutRecipe(ctx, seedRecipe("r2", sens))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	// 8*8 + 10*2 = 84, no defects.
	if saved.Sensation.TraditionalSCA.FinalScore != 84.00 {
		t.Fatalf("recomputed score: want 84.00, got %v", saved.Sensation.TraditionalSCA.FinalScore)
	}

	got, err := store.GetRecipe(ctx, "r2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Sensation.EvaluationSystem != sensory.SystemTraditionalSCA {
		t.Fatalf("tag: want traditional-sca, got %q", got.Sensation.EvaluationSystem)
	}
	if got.Sensation.TraditionalSCA.FinalScore != 84.00 {
		t.Fatalf("persisted score: want 84.00, got %v", got.Sensation.TraditionalSCA.FinalScore)
	}
}

func TestStore_ListFiltersAndSummaries(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	cva := &sensory.SensationRecord{CVAAffective: &sensory.CVAAffective{}}
	if _, err := store.PutRecipe(ctx, seedRecipe("r1", cva)); err != nil {
		t.Fatalf("put r1: %v", err)
	}
	other := seedRecipe("r2", nil)
	other.CreatedBy = "u2"
	if _, err := store.PutRecipe(ctx, other); err != nil {
		t.Fatalf("put r2: %v", err)
	}

	// Tasters only see their own recipes.
	list, err := store.ListRecipes(ctx, recipe.ListOpts{ViewerID: "u1", ViewerRole: "taster"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "r1" {
		t.Fatalf("taster view: want [r1], got %+v", list)
	}
	if list[0].EvaluationSystem != "cva-affective" {
		t.Fatalf("summary system: want cva-affective, got %q", list[0].EvaluationSystem)
	}
	if list[0].FinalScore == nil || *list[0].FinalScore != 79.00 {
		t.Fatalf("summary score: want 79.00, got %v", list[0].FinalScore)
	}

	// Admin sees everything.
	list, err = store.ListRecipes(ctx, recipe.ListOpts{ViewerRole: "admin"})
	if err != nil {
		t.Fatalf("list admin: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("admin view: want 2, got %d", len(list))
	}

	// Filter by evaluation system.
	list, err = store.ListRecipes(ctx, recipe.ListOpts{ViewerRole: "admin", EvaluationSystem: "legacy"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(list) != 1 || list[0].ID != "r2" {
		t.Fatalf("legacy filter: want [r2], got %+v", list)
	}
}

func TestStore_DeleteAndAudit(t *testing.T) {
	store, events := newTestStore(t)
	ctx := context.Background()

	if _, err := store.PutRecipe(ctx, seedRecipe("r1", nil)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.DeleteRecipe(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetRecipe(ctx, "r1"); err == nil {
		t.Fatalf("expected not-found after delete")
	}
	if err := store.DeleteRecipe(ctx, "r1"); err == nil {
		t.Fatalf("double delete should fail")
	}

	log, err := events.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(log) != 2 || log[0].Type != "RecipeDeleted" || log[1].Type != "RecipeSaved" {
		t.Fatalf("audit trail: %+v", log)
	}
}

func TestStore_Collections(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.PutRecipe(ctx, seedRecipe("r1", nil)); err != nil {
		t.Fatalf("put recipe: %v", err)
	}
	if _, err := store.PutCollection(ctx, recipe.Collection{ID: "c1", Name: "Ethiopian brews", CreatedBy: "u1"}); err != nil {
		t.Fatalf("put collection: %v", err)
	}
	if !store.IsCollectionCurator(ctx, "u1", "c1") {
		t.Fatalf("creator should be curator")
	}
	if store.IsCollectionCurator(ctx, "u2", "c1") {
		t.Fatalf("u2 should not be curator yet")
	}
	if err := store.AddCurator(ctx, "c1", "u2", "co"); err != nil {
		t.Fatalf("add curator: %v", err)
	}
	if !store.IsCollectionCurator(ctx, "u2", "c1") {
		t.Fatalf("u2 should be curator")
	}

	if err := store.AddToCollection(ctx, "c1", "r1", "u1"); err != nil {
		t.Fatalf("add to collection: %v", err)
	}
	list, err := store.ListCollectionRecipes(ctx, "c1")
	if err != nil {
		t.Fatalf("list collection recipes: %v", err)
	}
	if len(list) != 1 || list[0].ID != "r1" {
		t.Fatalf("collection contents: %+v", list)
	}

	if err := store.RemoveFromCollection(ctx, "c1", "r1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	list, _ = store.ListCollectionRecipes(ctx, "c1")
	if len(list) != 0 {
		t.Fatalf("collection should be empty, got %+v", list)
	}

	cols, err := store.ListCollections(ctx, recipe.CollectionListOpts{ViewerID: "u2"})
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if len(cols) != 1 || cols[0].ID != "c1" {
		t.Fatalf("curated collections for u2: %+v", cols)
	}
}
