// Package data provides thread-safe storage for the drug catalog snapshot.
// The CatalogContainer swaps whole immutable snapshots with atomic pointers
// so matching passes and catalog refreshes never interleave.
package data

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/interfaces"
	"github.com/medscan/medcheck-api/logging"
)

// Compile-time check to ensure CatalogContainer implements CatalogStore
var _ interfaces.CatalogStore = (*CatalogContainer)(nil)

// CatalogContainer holds the catalog snapshot with atomic pointers for
// zero-downtime updates
type CatalogContainer struct {
	drugs           atomic.Value // []entities.Drug
	drugsMap        atomic.Value // map[string]entities.Drug, keyed by catalog ID
	categories      atomic.Value // []string, sorted distinct categories
	categoryIndex   atomic.Value // map[string][]entities.Drug, keyed by lower-cased category
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewCatalogContainer creates a new CatalogContainer with empty data
func NewCatalogContainer() *CatalogContainer {
	cc := &CatalogContainer{}
	cc.drugs.Store(make([]entities.Drug, 0))
	cc.drugsMap.Store(make(map[string]entities.Drug))
	cc.categories.Store(make([]string, 0))
	cc.categoryIndex.Store(make(map[string][]entities.Drug))
	cc.lastUpdated.Store(time.Time{})
	cc.serverStartTime.Store(time.Time{})
	return cc
}

// Thread-safe getters with type check

// GetDrugs returns the current catalog snapshot
func (cc *CatalogContainer) GetDrugs() []entities.Drug {
	if v := cc.drugs.Load(); v != nil {
		if drugs, ok := v.([]entities.Drug); ok {
			return drugs
		}
	}

	logging.Warn("Drug list is empty or invalid")
	return []entities.Drug{}
}

// GetDrugsMap returns the catalog keyed by ID for O(1) lookups
func (cc *CatalogContainer) GetDrugsMap() map[string]entities.Drug {
	if v := cc.drugsMap.Load(); v != nil {
		if drugsMap, ok := v.(map[string]entities.Drug); ok {
			return drugsMap
		}
	}

	logging.Warn("Drugs map is empty or invalid")
	return make(map[string]entities.Drug)
}

// GetCategories returns the sorted distinct category list
func (cc *CatalogContainer) GetCategories() []string {
	if v := cc.categories.Load(); v != nil {
		if categories, ok := v.([]string); ok {
			return categories
		}
	}

	logging.Warn("Category list is empty or invalid")
	return []string{}
}

// GetDrugsByCategory returns the drugs in a category, case-insensitively
func (cc *CatalogContainer) GetDrugsByCategory(category string) []entities.Drug {
	if v := cc.categoryIndex.Load(); v != nil {
		if index, ok := v.(map[string][]entities.Drug); ok {
			if drugs, found := index[strings.ToLower(category)]; found {
				return drugs
			}
			return []entities.Drug{}
		}
	}

	logging.Warn("Category index is empty or invalid")
	return []entities.Drug{}
}

// GetLastUpdated returns the timestamp of the last catalog refresh
func (cc *CatalogContainer) GetLastUpdated() time.Time {
	if v := cc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a catalog refresh is currently in progress
func (cc *CatalogContainer) IsUpdating() bool {
	return cc.updating.Load()
}

// SetServerStartTime sets the server start time
func (cc *CatalogContainer) SetServerStartTime(startTime time.Time) {
	cc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (cc *CatalogContainer) GetServerStartTime() time.Time {
	if v := cc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically replaces the catalog snapshot. The ID map, category
// index, and distinct category list are derived here so every view swapped
// in belongs to the same snapshot.
func (cc *CatalogContainer) UpdateData(drugs []entities.Drug) {
	drugsMap := make(map[string]entities.Drug, len(drugs))
	categoryIndex := make(map[string][]entities.Drug)

	for i := range drugs {
		if drugs[i].ID != "" {
			drugsMap[drugs[i].ID] = drugs[i]
		}
		if drugs[i].Category != "" {
			key := strings.ToLower(drugs[i].Category)
			categoryIndex[key] = append(categoryIndex[key], drugs[i])
		}
	}

	seen := make(map[string]bool, len(categoryIndex))
	categories := make([]string, 0, len(categoryIndex))
	for i := range drugs {
		if drugs[i].Category == "" {
			continue
		}
		key := strings.ToLower(drugs[i].Category)
		if !seen[key] {
			seen[key] = true
			categories = append(categories, drugs[i].Category)
		}
	}
	sort.Strings(categories)

	// Atomic swap (zero downtime replacement)
	cc.drugs.Store(drugs)
	cc.drugsMap.Store(drugsMap)
	cc.categories.Store(categories)
	cc.categoryIndex.Store(categoryIndex)
	cc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a catalog refresh.
// Returns true if the refresh can proceed, false if another is in progress
func (cc *CatalogContainer) BeginUpdate() bool {
	return cc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a catalog refresh
func (cc *CatalogContainer) EndUpdate() {
	cc.updating.Store(false)
}
