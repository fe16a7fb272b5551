package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/campusworks/collage-api/config"
	_ "github.com/lib/pq"
)

// PostgreSQLStore is the raw database/sql store. The server itself runs
// on GORM; this store backs the seed/bootstrap tooling which creates the
// schema with explicit SQL instead of AutoMigrate.
type PostgreSQLStore struct {
	db *sql.DB
}

// StartPostgreSQL opens a raw lib/pq connection
func StartPostgreSQL() (*PostgreSQLStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connStr := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		log.Println("Unable to connect to PostgreSQL:", err)
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL Database.")

	return &PostgreSQLStore{db: db}, nil
}

// Init bootstraps enums and tables with explicit SQL
func (s *PostgreSQLStore) Init() error {
	log.Println("Initializing PostgreSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	log.Println("Initializing PostgreSQL Database.", "Initializing Tables")
	return s.InitTables()
}

// Close closes the database connection
func (s *PostgreSQLStore) Close() error {
	log.Println("Closing PostgreSQL connection...")
	return s.db.Close()
}

// GetDB returns the raw sql.DB instance
func (s *PostgreSQLStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *PostgreSQLStore) HealthCheck() error {
	return s.db.Ping()
}
