// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/codr1/courtbook/internal/config"
)

func main() {
	var (
		configPath     = flag.String("config", "config/app.yaml", "Path to the application config")
		migrationsPath = flag.String("migrations", "", "Path to migrations directory (default internal/db/migrations/<driver>)")
		command        = flag.String("command", "", "Command to run (up, down, version, force)")
		forceVersion   = flag.String("version", "", "Version to force when command is force")
	)
	flag.Parse()

	if *command == "" {
		log.Println("The -command flag is required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dir := *migrationsPath
	if dir == "" {
		dir = filepath.Join("internal", "db", "migrations", cfg.Database.Driver)
	}
	absMigrations, err := filepath.Abs(dir)
	if err != nil {
		log.Fatalf("Invalid migrations path: %v", err)
	}
	if _, err := os.Stat(absMigrations); os.IsNotExist(err) {
		log.Fatalf("Migrations directory does not exist: %s", absMigrations)
	}

	databaseURL, err := databaseURL(cfg.Database)
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", absMigrations), databaseURL)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration up failed: %v", err)
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration down failed: %v", err)
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Get version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return
	case "force":
		v, err := strconv.Atoi(*forceVersion)
		if err != nil {
			log.Fatalf("The -version flag must be an integer for force: %v", err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("Force version failed: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s", *command)
	}

	log.Printf("Migration %s completed for %s", *command, cfg.Database.Driver)
}

func databaseURL(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		absDB, err := filepath.Abs(cfg.Filename)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
			return "", fmt.Errorf("create database directory: %w", err)
		}
		return fmt.Sprintf("sqlite3://%s", absDB), nil
	case config.DriverPostgres:
		return cfg.PostgresDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
