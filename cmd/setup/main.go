// Command setup prepares a fresh deployment: it writes a starter .env
// when one is missing and, for the postgres backend, creates the
// configured database and brings the save-slot schema up to date.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/lootledger/engine/migrations"
)

const envTemplate = `# Loot Ledger engine configuration
HTTP_PORT=8080
API_KEY=change-me
LOG_LEVEL=INFO
LOG_FORMAT=text
LOG_DIR=logs

CONTENT_PATH=configs/content.json
AUTOSAVE_INTERVAL=60s

# file | postgres
STORE_BACKEND=file
SAVE_PATH=save/ledger.json
SAVE_SLOT=default

DB_HOST=localhost
DB_PORT=5432
DB_USER=postgres
DB_PASSWORD=postgres
DB_NAME=lootledger

# Discord bot (cmd/discord)
DISCORD_TOKEN=
DISCORD_APP_ID=
DISCORD_GUILD_ID=
ENGINE_BASE_URL=http://localhost:8080
`

func main() {
	seedEnvFile()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if getEnv("STORE_BACKEND", "file") != "postgres" {
		fmt.Println("STORE_BACKEND is not postgres, skipping database setup.")
		return
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "lootledger")

	ctx := context.Background()

	// Connect to the default 'postgres' database to create the new one
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", dbname)
		_, err = conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbname))
		if err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", dbname)
	}
	conn.Close(ctx)

	// Run the embedded migrations against the target database
	targetConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
	db, err := sql.Open("pgx", targetConnString)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", dbname, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set migration dialect: %v", err)
	}

	fmt.Println("Running migrations...")
	if err := goose.Up(db, "."); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("Migrations completed successfully.")
}

// seedEnvFile writes a starter .env when none exists. An existing file is
// never touched.
func seedEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		return
	}
	if err := os.WriteFile(".env", []byte(envTemplate), 0o644); err != nil {
		log.Fatalf("Failed to write .env template: %v", err)
	}
	fmt.Println("Wrote starter .env (edit API_KEY before running the server).")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
