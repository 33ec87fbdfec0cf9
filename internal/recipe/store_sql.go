package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/brewnote/brewnote/internal/sensory"
	syncx "github.com/brewnote/brewnote/internal/sync"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *syncx.EventRepo
}

// NewSQLStore wraps a database handle. events may be nil to skip audit rows
// (tests mostly do).
func NewSQLStore(db *sql.DB, driver string, events *syncx.EventRepo) *SQLStore {
	return &SQLStore{db: db, driver: driver, events: events}
}

// PutRecipe upserts a recipe. The sensation record is normalized to a
// persistable evaluation-system tag and its derived scores are recomputed
// here, immediately before the write; whatever score the client sent is
// discarded. Validation is the caller's job.
func (s *SQLStore) PutRecipe(ctx context.Context, r Recipe) (Recipe, error) {
	if r.ID == "" {
		return Recipe{}, errors.New("recipe id required")
	}

	sys := sensory.SystemLegacy
	evalJSON := "{}"
	var finalScore sql.NullFloat64
	if r.Sensation != nil {
		rec := sensory.RecomputeScores(sensory.Normalize(*r.Sensation))
		r.Sensation = &rec
		sys = rec.EvaluationSystem
		buf, err := json.Marshal(rec)
		if err != nil {
			return Recipe{}, err
		}
		evalJSON = string(buf)
		if v, ok := sensory.FinalScore(rec); ok {
			finalScore = sql.NullFloat64{Float64: v, Valid: true}
		}
	}

	now := time.Now().Unix()
	if r.CreatedAt == 0 {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `INSERT INTO recipes
		(id, name, origin, processing_method, coffee_bean_brand, roasting_level,
		 brewing_method, grinder_model, grinder_unit, water_temperature, filtering_tools, turbulence,
		 coffee_beans, water, tds, extraction_yield,
		 evaluation_system, evaluation_json, final_score,
		 created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		ON CONFLICT (id) DO UPDATE SET
		  name=EXCLUDED.name, origin=EXCLUDED.origin, processing_method=EXCLUDED.processing_method,
		  coffee_bean_brand=EXCLUDED.coffee_bean_brand, roasting_level=EXCLUDED.roasting_level,
		  brewing_method=EXCLUDED.brewing_method, grinder_model=EXCLUDED.grinder_model,
		  grinder_unit=EXCLUDED.grinder_unit, water_temperature=EXCLUDED.water_temperature,
		  filtering_tools=EXCLUDED.filtering_tools, turbulence=EXCLUDED.turbulence,
		  coffee_beans=EXCLUDED.coffee_beans, water=EXCLUDED.water, tds=EXCLUDED.tds,
		  extraction_yield=EXCLUDED.extraction_yield,
		  evaluation_system=EXCLUDED.evaluation_system, evaluation_json=EXCLUDED.evaluation_json,
		  final_score=EXCLUDED.final_score, updated_at=EXCLUDED.updated_at`,
		r.ID, r.Name, r.BeanInfo.Origin, r.BeanInfo.ProcessingMethod, r.BeanInfo.CoffeeBeanBrand, r.BeanInfo.RoastingLevel,
		r.BrewingParameters.BrewingMethod, r.BrewingParameters.GrinderModel, r.BrewingParameters.GrinderUnit,
		r.BrewingParameters.WaterTemperature, r.BrewingParameters.FilteringTools, r.BrewingParameters.Turbulence,
		r.Measurements.CoffeeBeans, r.Measurements.Water, r.Measurements.TDS, r.Measurements.ExtractionYield,
		string(sys), evalJSON, finalScore,
		r.CreatedBy, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return Recipe{}, err
	}

	s.appendEvent(ctx, "RecipeSaved", r.ID, map[string]any{
		"name": r.Name, "evaluation_system": string(sys),
	})
	return r, nil
}

func (s *SQLStore) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, name, origin, processing_method, coffee_bean_brand, roasting_level,
		brewing_method, grinder_model, grinder_unit, water_temperature, filtering_tools, turbulence,
		coffee_beans, water, tds, extraction_yield,
		evaluation_json, created_by, created_at, updated_at
		FROM recipes WHERE id=$1`, id)

	var r Recipe
	var evalJSON string
	err := row.Scan(&r.ID, &r.Name, &r.BeanInfo.Origin, &r.BeanInfo.ProcessingMethod,
		&r.BeanInfo.CoffeeBeanBrand, &r.BeanInfo.RoastingLevel,
		&r.BrewingParameters.BrewingMethod, &r.BrewingParameters.GrinderModel, &r.BrewingParameters.GrinderUnit,
		&r.BrewingParameters.WaterTemperature, &r.BrewingParameters.FilteringTools, &r.BrewingParameters.Turbulence,
		&r.Measurements.CoffeeBeans, &r.Measurements.Water, &r.Measurements.TDS, &r.Measurements.ExtractionYield,
		&evalJSON, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recipe{}, errors.New("recipe not found")
		}
		return Recipe{}, err
	}
	// The stored tag is authoritative on read; no remapping happens here.
	if evalJSON != "" && evalJSON != "{}" {
		var rec sensory.SensationRecord
		if err := json.Unmarshal([]byte(evalJSON), &rec); err != nil {
			return Recipe{}, err
		}
		r.Sensation = &rec
	}
	return r, nil
}

func (s *SQLStore) ListRecipes(ctx context.Context, opts ListOpts) ([]Summary, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	q := `SELECT id, name, origin, brewing_method, evaluation_system, final_score, created_by, created_at
		FROM recipes WHERE 1=1`
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		q += " AND " + fmt.Sprintf(cond, "$"+strconv.Itoa(len(args)))
	}

	// Tasters see their own log; curators and admins see everything.
	if opts.ViewerRole != "admin" && opts.ViewerRole != "curator" {
		add("created_by=%s", opts.ViewerID)
	}
	if opts.Q != "" {
		add("lower(name) LIKE '%%' || lower(%s) || '%%'", opts.Q)
	}
	if opts.Origin != "" {
		add("origin=%s", opts.Origin)
	}
	if opts.BrewingMethod != "" {
		add("brewing_method=%s", opts.BrewingMethod)
	}
	if opts.EvaluationSystem != "" {
		add("evaluation_system=%s", opts.EvaluationSystem)
	}
	args = append(args, opts.Limit, opts.Offset)
	q += ` ORDER BY created_at DESC, id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var score sql.NullFloat64
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Origin, &sm.BrewingMethod, &sm.EvaluationSystem, &score, &sm.CreatedBy, &sm.CreatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.Float64
			sm.FinalScore = &v
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("recipe not found")
	}
	s.appendEvent(ctx, "RecipeDeleted", id, nil)
	return nil
}

func (s *SQLStore) PutCollection(ctx context.Context, c Collection) (Collection, error) {
	if c.ID == "" {
		return Collection{}, errors.New("collection id required")
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO collections (id, name, description, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description`,
		c.ID, c.Name, c.Description, c.CreatedBy, c.CreatedAt)
	if err != nil {
		return Collection{}, err
	}
	// Creator becomes the owning curator.
	_, _ = s.db.ExecContext(ctx, `INSERT INTO collection_curators (collection_id, curator_id, role)
		VALUES ($1,$2,'owner') ON CONFLICT DO NOTHING`, c.ID, c.CreatedBy)
	return c, nil
}

func (s *SQLStore) ListCollections(ctx context.Context, opts CollectionListOpts) ([]Collection, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	q := `SELECT c.id, c.name, c.description, c.created_by, c.created_at
		FROM collections c
		WHERE (c.created_by=$1 OR EXISTS(
			SELECT 1 FROM collection_curators cc WHERE cc.collection_id=c.id AND cc.curator_id=$1))`
	args := []any{opts.ViewerID}
	if opts.Q != "" {
		args = append(args, opts.Q)
		q += ` AND lower(c.name) LIKE '%' || lower($` + strconv.Itoa(len(args)) + `) || '%'`
	}
	args = append(args, opts.Limit, opts.Offset)
	q += ` ORDER BY c.created_at DESC, c.id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Collection{}
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) AddToCollection(ctx context.Context, collectionID, recipeID, addedBy string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO collection_recipes (collection_id, recipe_id, added_by, added_at)
		VALUES ($1,$2,$3,$4) ON CONFLICT DO NOTHING`,
		collectionID, recipeID, addedBy, time.Now().Unix())
	if err != nil {
		return err
	}
	s.appendEvent(ctx, "CollectionRecipeAdded", collectionID, map[string]any{"recipe_id": recipeID})
	return nil
}

func (s *SQLStore) RemoveFromCollection(ctx context.Context, collectionID, recipeID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collection_recipes WHERE collection_id=$1 AND recipe_id=$2`,
		collectionID, recipeID)
	if err != nil {
		return err
	}
	s.appendEvent(ctx, "CollectionRecipeRemoved", collectionID, map[string]any{"recipe_id": recipeID})
	return nil
}

func (s *SQLStore) ListCollectionRecipes(ctx context.Context, collectionID string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id, r.name, r.origin, r.brewing_method, r.evaluation_system,
			r.final_score, r.created_by, r.created_at
		FROM recipes r
		JOIN collection_recipes cr ON cr.recipe_id = r.id
		WHERE cr.collection_id=$1
		ORDER BY cr.added_at DESC, r.id`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var score sql.NullFloat64
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Origin, &sm.BrewingMethod, &sm.EvaluationSystem, &score, &sm.CreatedBy, &sm.CreatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.Float64
			sm.FinalScore = &v
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// IsCollectionCurator reports whether the user curates (or created) the
// collection. Handlers use it for membership mutations.
func (s *SQLStore) IsCollectionCurator(ctx context.Context, userID, collectionID string) bool {
	var ok bool
	_ = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM collection_curators WHERE collection_id=$1 AND curator_id=$2)`,
		collectionID, userID).Scan(&ok)
	return ok
}

// AddCurator grants curation rights; role is "owner" or "co".
func (s *SQLStore) AddCurator(ctx context.Context, collectionID, userID, role string) error {
	if role != "owner" {
		role = "co"
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO collection_curators (collection_id, curator_id, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (collection_id, curator_id) DO UPDATE SET role=EXCLUDED.role`,
		collectionID, userID, role)
	return err
}

func (s *SQLStore) appendEvent(ctx context.Context, typ, key string, data map[string]any) {
	if s.events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	_ = s.events.Append(ctx, syncx.Event{Type: typ, Key: key, DataJSON: string(buf)})
}
