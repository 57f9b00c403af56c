package main

import (
	"log"
	"os"

	"inquiry-be/internal/model"
	"inquiry-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, q := range setupSQL {
		if err := db.Exec(q).Error; err != nil {
			log.Fatalf("Error: setup statement failed: %v\nSQL: %s", err, q)
		}
	}

	log.Println("Step 2: Running GORM AutoMigrate...")
	if err := db.AutoMigrate(
		&model.Project{},
		&model.InquirySession{},
		&model.InquiryMessage{},
		&model.SessionMetadata{},
		&model.ContextDocument{},
		&model.DocumentChunk{},
		&model.Embedding{},
	); err != nil {
		log.Fatalf("Error: migration failed: %v", err)
	}

	log.Println("Migration complete.")
}
