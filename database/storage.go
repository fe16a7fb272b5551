package database

// Storage is the persistence gateway handed to the router and handlers.
// Handlers type-assert GetDB to *gorm.DB; the raw pq store implements the
// same interface for the seed/bootstrap tooling.
type Storage interface {
	Init() error
	Close() error
	GetDB() interface{}
	HealthCheck() error
}
