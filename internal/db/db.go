// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codr1/courtbook/internal/config"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// sqliteDSNDefaults are appended to every SQLite DSN that does not set them.
// Immediate transactions make concurrent writers queue at BEGIN instead of
// failing on lock upgrade after both have read.
var sqliteDSNDefaults = []string{"_fk=1", "_txlock=immediate", "_busy_timeout=5000"}

type DB struct {
	*sql.DB
	Queries *dbgen.Queries
	Driver  string
}

// New opens a SQLite database for the given data source name, applies the
// embedded migrations and returns a DB with generated queries bound to the connection.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", ensureSQLiteDSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := runMigrations(sqlDB, config.DriverSQLite); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return Wrap(sqlDB, config.DriverSQLite), nil
}

// NewFromConfig opens the configured backend, applies migrations and returns
// a DB with generated queries bound to the opened connection.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	var sqlDB *sql.DB
	var err error

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
		sqlDB, err = sql.Open("sqlite3", ensureSQLiteDSN(cfg.Database.Filename))

	case config.DriverPostgres:
		sqlDB, err = sql.Open("postgres", cfg.Database.PostgresDSN())

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := runMigrations(sqlDB, cfg.Database.Driver); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return Wrap(sqlDB, cfg.Database.Driver), nil
}

// Wrap binds generated queries to an already opened connection without migrating it.
func Wrap(sqlDB *sql.DB, driver string) *DB {
	return &DB{
		DB:      sqlDB,
		Queries: queriesFor(driver, sqlDB),
		Driver:  driver,
	}
}

func queriesFor(driver string, conn dbgen.DBTX) *dbgen.Queries {
	if driver == config.DriverPostgres {
		return dbgen.New(rebindDBTX{inner: conn})
	}
	return dbgen.New(conn)
}

// ensureSQLiteDSN adds the foreign key, transaction lock and busy timeout
// parameters that are not already present in the DSN.
func ensureSQLiteDSN(dataSourceName string) string {
	for _, param := range sqliteDSNDefaults {
		key := param[:strings.Index(param, "=")+1]
		if strings.Contains(dataSourceName, key) {
			continue
		}
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&" + param
		} else {
			dataSourceName += "?" + param
		}
	}
	return dataSourceName
}

// runMigrations applies the embedded migrations for driver. A "no change"
// result is not treated as an error.
func runMigrations(db *sql.DB, driver string) error {
	var (
		dbDriver database.Driver
		dbName   string
		err      error
	)
	switch driver {
	case config.DriverSQLite:
		dbDriver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		dbName = "sqlite3"
	case config.DriverPostgres:
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
		dbName = "postgres"
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, dbDriver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// WithTx creates a new DB instance with the given transaction
func (db *DB) WithTx(tx *sql.Tx) *DB {
	return &DB{
		DB:      db.DB,
		Queries: queriesFor(db.Driver, tx),
		Driver:  db.Driver,
	}
}

// BeginTx starts a transaction. PostgreSQL transactions run at SERIALIZABLE.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	var opts *sql.TxOptions
	if db.Driver == config.DriverPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return tx, nil
}

// RunInTx runs the given function in a transaction
func (db *DB) RunInTx(ctx context.Context, fn func(*DB) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txDB := db.WithTx(tx)
	if err := fn(txDB); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	return nil
}

// Sqlx exposes the connection to hand-written reporting queries with the
// placeholder style of the active backend.
func (db *DB) Sqlx() *sqlx.DB {
	driverName := "sqlite3"
	if db.Driver == config.DriverPostgres {
		driverName = "postgres"
	}
	return sqlx.NewDb(db.DB, driverName)
}
