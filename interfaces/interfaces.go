// Package interfaces defines core abstractions for the medcheck API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/medscan/medcheck-api/catalog/entities"
)

// CatalogStore defines the contract for catalog snapshot access.
// It provides thread-safe reads over an immutable drug list with atomic
// whole-snapshot swaps, so an in-flight matching pass never observes a
// partially updated catalog.
type CatalogStore interface {
	// Snapshot reads
	GetDrugs() []entities.Drug
	GetDrugsMap() map[string]entities.Drug
	GetCategories() []string
	GetDrugsByCategory(category string) []entities.Drug
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Snapshot replacement
	UpdateData(drugs []entities.Drug)
	BeginUpdate() bool
	EndUpdate()
}

// CatalogParser defines the contract for loading catalog data from its
// source files. It handles downloading, decoding, and transforming raw
// data into validated drug records.
type CatalogParser interface {
	ParseCatalog() ([]entities.Drug, error)
}

// Scheduler defines the contract for catalog refresh scheduling and
// staleness monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateDrug checks if a drug record is internally consistent
	ValidateDrug(d *entities.Drug) error

	// ValidateCatalog performs whole-catalog validation (duplicate keys,
	// ingredient spelling against standalone records)
	ValidateCatalog(drugs []entities.Drug) error

	// ValidateInput validates user-supplied search strings
	ValidateInput(input string) error

	// ValidateDrugID validates a catalog key from the request path
	ValidateDrugID(input string) (string, error)
}
