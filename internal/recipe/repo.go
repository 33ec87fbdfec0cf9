package recipe

import "context"

type ListOpts struct {
	Q                string // substring match on name
	Origin           string
	BrewingMethod    string
	EvaluationSystem string
	Limit            int
	Offset           int
	ViewerID         string
	ViewerRole       string // "taster" | "curator" | "admin"
}

type CollectionListOpts struct {
	Q        string
	Limit    int
	Offset   int
	ViewerID string
}

type Store interface {
	PutRecipe(ctx context.Context, r Recipe) (Recipe, error)
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	ListRecipes(ctx context.Context, opts ListOpts) ([]Summary, error)
	DeleteRecipe(ctx context.Context, id string) error

	PutCollection(ctx context.Context, c Collection) (Collection, error)
	ListCollections(ctx context.Context, opts CollectionListOpts) ([]Collection, error)
	AddToCollection(ctx context.Context, collectionID, recipeID, addedBy string) error
	RemoveFromCollection(ctx context.Context, collectionID, recipeID string) error
	ListCollectionRecipes(ctx context.Context, collectionID string) ([]Summary, error)
}
