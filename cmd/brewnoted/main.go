package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/brewnote/brewnote/internal/api/http"
	auth "github.com/brewnote/brewnote/internal/auth/middleware"
	"github.com/brewnote/brewnote/internal/config"
	"github.com/brewnote/brewnote/internal/db"
	rbac "github.com/brewnote/brewnote/internal/rbac"
	"github.com/brewnote/brewnote/internal/recipe"
	storage "github.com/brewnote/brewnote/internal/storage"
	syncx "github.com/brewnote/brewnote/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	events := syncx.NewEventRepo(dbh)
	store := recipe.NewSQLStore(dbh, cfg.DBDriver, events)

	// --- Auth (local JWT) ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := auth.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, cfg.AdminUser, cfg.AdminPassHash))
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// Photo routes (protected)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))
		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})
	})

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		pr.With(rbac.Require("recipe:create")).
			Post("/recipes", api.CreateRecipeHandler(store))
		pr.With(rbac.Require("recipe:view")).
			Get("/recipes", api.ListRecipesHandler(store))
		pr.With(rbac.Require("recipe:view")).
			Get("/recipes/{recipeID}", api.GetRecipeHandler(store))
		pr.With(rbac.RequireAny("recipe:update-own", "recipe:update-all")).
			Put("/recipes/{recipeID}", api.UpdateRecipeHandler(store))
		pr.With(rbac.RequireAny("recipe:delete-own", "recipe:delete-all")).
			Delete("/recipes/{recipeID}", api.DeleteRecipeHandler(store))

		pr.With(rbac.Require("score:preview")).
			Post("/score/preview", api.PreviewScoreHandler())

		pr.With(rbac.Require("collection:create")).
			Post("/collections", api.CreateCollectionHandler(store))
		pr.With(rbac.Require("collection:view")).
			Get("/collections", api.ListCollectionsHandler(store))
		pr.With(rbac.Require("collection:view")).
			Get("/collections/{collectionID}/recipes", api.ListCollectionRecipesHandler(store))
		pr.With(rbac.Require("collection:view")).
			Post("/collections/{collectionID}/recipes", api.AddCollectionRecipeHandler(store))
		pr.With(rbac.Require("collection:view")).
			Delete("/collections/{collectionID}/recipes/{recipeID}", api.RemoveCollectionRecipeHandler(store))
		pr.With(rbac.Require("collection:view")).
			Post("/collections/{collectionID}/curators", api.AddCuratorsHandler(store))

		pr.With(rbac.Require("recipe:export")).
			Get("/export/recipes", api.ExportRecipesHandler(store))

		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))

		pr.With(rbac.Require("events:view")).
			Get("/events", api.ListEventsHandler(events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
