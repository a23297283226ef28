// Package health provides health checking functionality for the medcheck API.
package health

import (
	"net/http"
	"time"

	"github.com/medscan/medcheck-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store      interfaces.CatalogStore
	refreshTTL time.Duration
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(store interfaces.CatalogStore, refreshTTL time.Duration) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		store:      store,
		refreshTTL: refreshTTL,
	}
}

// HealthCheck returns the health status used by the /health endpoint.
// The catalog is unhealthy when empty or more than twice its TTL stale,
// degraded when past its TTL.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	drugs := h.store.GetDrugs()
	categories := h.store.GetCategories()
	lastUpdate := h.store.GetLastUpdated()
	isUpdating := h.store.IsUpdating()

	dataAge := time.Since(lastUpdate)

	switch {
	case len(drugs) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 2*h.refreshTTL:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > h.refreshTTL:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":    lastUpdate.Format(time.RFC3339),
		"data_age_hours": dataAge.Hours(),
		"drug_count":     len(drugs),
		"category_count": len(categories),
		"is_updating":    isUpdating,
		"next_update":    lastUpdate.Add(h.refreshTTL).Format(time.RFC3339),
	}

	return status, data, httpStatus
}
