package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/muskanVaswani/sudharsetu-backend/internal/database/migrations"
)

func main() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close connection: %v", err)
		}
	}()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database:", err)
	}

	sqlBytes, err := migrations.Files.ReadFile("complaints_schema.sql")
	if err != nil {
		log.Fatal("failed to read embedded SQL file:", err)
	}

	fmt.Println("Running migration...")

	if _, err := db.Exec(string(sqlBytes)); err != nil {
		log.Fatal("failed to execute migration:", err)
	}

	rows, err := db.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name IN ('complaints', 'schema_migrations')
		ORDER BY table_name
	`)
	if err != nil {
		log.Fatal("failed to verify tables:", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	fmt.Println("Tables present:")
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			log.Printf("failed to scan table name: %v", err)
			continue
		}
		fmt.Printf("  - %s\n", table)
	}

	fmt.Println("Migration complete.")
}
