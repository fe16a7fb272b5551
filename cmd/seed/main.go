package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/campusworks/collage-api/database"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	bootstrap := flag.Bool("bootstrap", false, "create enums and tables with explicit SQL before seeding")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("CampusWorks Collage API - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	// Optional raw-SQL bootstrap: explicit enums and tables instead of
	// relying on AutoMigrate at server startup
	if *bootstrap {
		pqStore, err := database.StartPostgreSQL()
		if err != nil {
			log.Fatalf("Failed to connect for bootstrap: %v", err)
		}
		if err := pqStore.Init(); err != nil {
			pqStore.Close()
			log.Fatalf("Bootstrap failed: %v", err)
		}
		pqStore.Close()
		fmt.Println("Schema bootstrap completed.")
		fmt.Println()
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	gormDB := store.GetDB().(*gorm.DB)

	if err := store.Init(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := database.NewSeeder(gormDB).SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("Seeding completed successfully!")
	fmt.Println(separator)
	fmt.Println()
	fmt.Println("Superadmin created from SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD.")
	fmt.Println("Defaults are for local development only.")
	fmt.Println()
}
