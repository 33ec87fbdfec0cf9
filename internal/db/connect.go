package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the schema exists. One canonical schema is
// created on both drivers; earlier schema generations are not branched on.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:brewnote.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/brewnote?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// The evaluation_system CHECK is the storage end of the write-boundary remap:
// quick-tasting is not in the list on purpose.

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS recipes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  origin TEXT NOT NULL DEFAULT '',
  processing_method TEXT NOT NULL DEFAULT '',
  coffee_bean_brand TEXT NOT NULL DEFAULT '',
  roasting_level TEXT NOT NULL DEFAULT '',
  brewing_method TEXT NOT NULL DEFAULT '',
  grinder_model TEXT NOT NULL DEFAULT '',
  grinder_unit TEXT NOT NULL DEFAULT '',
  water_temperature REAL NOT NULL DEFAULT 0,
  filtering_tools TEXT NOT NULL DEFAULT '',
  turbulence TEXT NOT NULL DEFAULT '',
  coffee_beans REAL NOT NULL DEFAULT 0,
  water REAL NOT NULL DEFAULT 0,
  tds REAL NOT NULL DEFAULT 0,
  extraction_yield REAL NOT NULL DEFAULT 0,
  evaluation_system TEXT NOT NULL DEFAULT 'legacy'
    CHECK (evaluation_system IN ('traditional-sca','cva-descriptive','cva-affective','legacy')),
  evaluation_json TEXT NOT NULL DEFAULT '{}',
  final_score REAL,
  created_by TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS collections (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS collection_curators (
  collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
  curator_id TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'co',
  PRIMARY KEY (collection_id, curator_id)
);

CREATE TABLE IF NOT EXISTS collection_recipes (
  collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
  recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
  added_by TEXT NOT NULL DEFAULT '',
  added_at INTEGER NOT NULL,
  PRIMARY KEY (collection_id, recipe_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset INTEGER PRIMARY KEY AUTOINCREMENT, -- BIGSERIAL in Postgres
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS recipes (
  id TEXT PRIMARY KEY,
  name VARCHAR(200) NOT NULL,
  origin VARCHAR(100) NOT NULL DEFAULT '',
  processing_method VARCHAR(50) NOT NULL DEFAULT '',
  coffee_bean_brand VARCHAR(100) NOT NULL DEFAULT '',
  roasting_level VARCHAR(20) NOT NULL DEFAULT '',
  brewing_method VARCHAR(50) NOT NULL DEFAULT '',
  grinder_model VARCHAR(100) NOT NULL DEFAULT '',
  grinder_unit VARCHAR(50) NOT NULL DEFAULT '',
  water_temperature DOUBLE PRECISION NOT NULL DEFAULT 0,
  filtering_tools VARCHAR(100) NOT NULL DEFAULT '',
  turbulence VARCHAR(200) NOT NULL DEFAULT '',
  coffee_beans DOUBLE PRECISION NOT NULL DEFAULT 0,
  water DOUBLE PRECISION NOT NULL DEFAULT 0,
  tds DOUBLE PRECISION NOT NULL DEFAULT 0,
  extraction_yield DOUBLE PRECISION NOT NULL DEFAULT 0,
  evaluation_system VARCHAR(20) NOT NULL DEFAULT 'legacy'
    CHECK (evaluation_system IN ('traditional-sca','cva-descriptive','cva-affective','legacy')),
  evaluation_json TEXT NOT NULL DEFAULT '{}',
  final_score DOUBLE PRECISION,
  created_by TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS collections (
  id TEXT PRIMARY KEY,
  name VARCHAR(200) NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS collection_curators (
  collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
  curator_id TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'co',
  PRIMARY KEY (collection_id, curator_id)
);

CREATE TABLE IF NOT EXISTS collection_recipes (
  collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
  recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
  added_by TEXT NOT NULL DEFAULT '',
  added_at BIGINT NOT NULL,
  PRIMARY KEY (collection_id, recipe_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
