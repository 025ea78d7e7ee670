package main

import (
	"log"

	"brandlink-be/internal/config"
	"brandlink-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// Postgres-only indexes that AutoMigrate cannot express
	log.Println("Step 2: Creating expression indexes...")
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_contacts_ws_email_lower
		 ON contacts (workspace_id, LOWER(email))
		 WHERE deleted_at IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_ws_name_company_lower
		 ON contacts (workspace_id, LOWER(name), LOWER(company))
		 WHERE deleted_at IS NULL;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
