package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/data"
	"github.com/medscan/medcheck-api/logging"
)

// fakeParser returns canned drugs or an error
type fakeParser struct {
	drugs []entities.Drug
	err   error
	calls int
}

func (p *fakeParser) ParseCatalog() ([]entities.Drug, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.drugs, nil
}

func TestRefreshCatalog(t *testing.T) {
	logging.InitLogger("")

	container := data.NewCatalogContainer()
	parser := &fakeParser{drugs: []entities.Drug{
		{ID: "d1", Name: "Paracetamol", Category: "Analgesic"},
		{ID: "d2", Name: "Cetirizine", Category: "Antihistamine"},
	}}

	s := NewScheduler(container, parser, 12*time.Hour)

	if err := s.refreshCatalog(); err != nil {
		t.Fatalf("refreshCatalog failed: %v", err)
	}

	if len(container.GetDrugs()) != 2 {
		t.Errorf("expected 2 drugs after refresh, got %d", len(container.GetDrugs()))
	}
	if container.GetLastUpdated().IsZero() {
		t.Error("lastUpdated not set after refresh")
	}
	if parser.calls != 1 {
		t.Errorf("expected 1 parser call, got %d", parser.calls)
	}
}

func TestRefreshCatalogParserError(t *testing.T) {
	logging.InitLogger("")

	container := data.NewCatalogContainer()
	container.UpdateData([]entities.Drug{{ID: "d1", Name: "Paracetamol"}})

	parser := &fakeParser{err: fmt.Errorf("source unavailable")}
	s := NewScheduler(container, parser, 12*time.Hour)

	if err := s.refreshCatalog(); err == nil {
		t.Fatal("expected refresh error")
	}

	// Previous snapshot is kept on failure
	if len(container.GetDrugs()) != 1 {
		t.Errorf("failed refresh must keep the previous snapshot, got %d drugs", len(container.GetDrugs()))
	}
	if container.IsUpdating() {
		t.Error("updating flag must be cleared after a failed refresh")
	}
}

func TestRefreshCatalogInvalidData(t *testing.T) {
	logging.InitLogger("")

	container := data.NewCatalogContainer()
	parser := &fakeParser{drugs: []entities.Drug{
		{ID: "d1", Name: "Paracetamol"},
		{ID: "d1", Name: "Duplicate"},
	}}

	s := NewScheduler(container, parser, 12*time.Hour)

	if err := s.refreshCatalog(); err == nil {
		t.Fatal("expected validation error")
	}
	if len(container.GetDrugs()) != 0 {
		t.Error("invalid catalog must not be swapped in")
	}
}

func TestRefreshSkippedWhileUpdating(t *testing.T) {
	logging.InitLogger("")

	container := data.NewCatalogContainer()
	parser := &fakeParser{drugs: []entities.Drug{{ID: "d1", Name: "Paracetamol"}}}
	s := NewScheduler(container, parser, 12*time.Hour)

	if !container.BeginUpdate() {
		t.Fatal("BeginUpdate failed")
	}
	defer container.EndUpdate()

	// Overlapping refresh is skipped, not queued, and not an error
	if err := s.refreshCatalog(); err != nil {
		t.Fatalf("skipped refresh should not error: %v", err)
	}
	if parser.calls != 0 {
		t.Error("parser should not run while an update is in progress")
	}
}
