// Package scheduler provides automated catalog refresh scheduling and
// staleness monitoring for the medcheck API. It coordinates refresh
// operations with the catalog container using dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/medscan/medcheck-api/interfaces"
	"github.com/medscan/medcheck-api/logging"
	"github.com/medscan/medcheck-api/metrics"
	"github.com/medscan/medcheck-api/validation"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog refreshes and staleness monitoring
type Scheduler struct {
	store      interfaces.CatalogStore
	parser     interfaces.CatalogParser
	refreshTTL time.Duration
	scheduler  *gocron.Scheduler
	stopChan   chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// refreshTTL is the caller-controlled catalog invalidation knob.
func NewScheduler(store interfaces.CatalogStore, parser interfaces.CatalogParser, refreshTTL time.Duration) *Scheduler {
	return &Scheduler{
		store:      store,
		parser:     parser,
		refreshTTL: refreshTTL,
		scheduler:  gocron.NewScheduler(time.Local),
		stopChan:   make(chan struct{}),
	}
}

// Start performs the initial catalog load and schedules periodic refreshes
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.refreshCatalog(); err != nil {
		logging.Error("Failed to perform initial catalog load", "error", err)
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	_, err := s.scheduler.Every(s.refreshTTL).Do(func() {
		if err := s.refreshCatalog(); err != nil {
			logging.Error("Failed to refresh catalog", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule catalog refresh", "error", err)
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}

	s.scheduler.StartAsync()

	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler and the staleness monitor
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.stopChan)
}

// refreshCatalog performs a complete catalog refresh. A refresh already in
// progress causes this one to be skipped, not queued.
func (s *Scheduler) refreshCatalog() error {
	if !s.store.BeginUpdate() {
		logging.Info("Catalog refresh already in progress, skipping...")
		return nil
	}
	defer s.store.EndUpdate()

	logging.Info("Starting catalog refresh")
	start := time.Now()

	drugs, err := s.parser.ParseCatalog()
	if err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	validator := validation.NewDataValidator()
	if err := validator.ValidateCatalog(drugs); err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("catalog failed validation, keeping previous snapshot: %w", err)
	}

	// Atomic swap, in-flight matches keep their old snapshot
	s.store.UpdateData(drugs)

	metrics.CatalogRefreshTotal.WithLabelValues("success").Inc()
	metrics.CatalogDrugCount.Set(float64(len(drugs)))

	elapsed := time.Since(start)
	logging.Info("Catalog refresh completed", "duration", elapsed.String(), "drug_count", len(drugs))

	return nil
}

// startStalenessMonitoring warns when the snapshot outlives twice its TTL
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				lastUpdate := s.store.GetLastUpdated()
				if time.Since(lastUpdate) > 2*s.refreshTTL {
					logging.Warn("Catalog snapshot is stale",
						"last_update", lastUpdate.Format(time.RFC3339),
						"ttl", s.refreshTTL.String())
				}
			}
		}
	}()
}
