package data

import (
	"sync"
	"testing"
	"time"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/logging"
)

func TestNewCatalogContainer(t *testing.T) {
	logging.InitLogger("")

	cc := NewCatalogContainer()

	if cc == nil {
		t.Fatal("NewCatalogContainer returned nil")
	}

	if cc.IsUpdating() {
		t.Error("new container should not be updating")
	}

	if !cc.GetLastUpdated().IsZero() {
		t.Error("new container should have zero lastUpdated time")
	}

	if len(cc.GetDrugs()) != 0 {
		t.Error("new container should have empty drugs")
	}

	if len(cc.GetDrugsMap()) != 0 {
		t.Error("new container should have empty drugs map")
	}

	if len(cc.GetCategories()) != 0 {
		t.Error("new container should have empty categories")
	}
}

func TestUpdateData(t *testing.T) {
	logging.InitLogger("")

	cc := NewCatalogContainer()

	drugs := []entities.Drug{
		{ID: "d1", Name: "Paracetamol", Category: "Analgesic"},
		{ID: "d2", Name: "Cetirizine", Category: "Antihistamine"},
		{ID: "d3", Name: "Ibuprofen", Category: "Analgesic"},
	}

	cc.UpdateData(drugs)

	if len(cc.GetDrugs()) != 3 {
		t.Errorf("expected 3 drugs, got %d", len(cc.GetDrugs()))
	}

	drugsMap := cc.GetDrugsMap()
	if len(drugsMap) != 3 {
		t.Errorf("expected 3 entries in drugs map, got %d", len(drugsMap))
	}
	if drugsMap["d2"].Name != "Cetirizine" {
		t.Errorf("drugs map lookup failed: %v", drugsMap["d2"])
	}

	categories := cc.GetCategories()
	if len(categories) != 2 {
		t.Errorf("expected 2 distinct categories, got %v", categories)
	}

	analgesics := cc.GetDrugsByCategory("analgesic")
	if len(analgesics) != 2 {
		t.Errorf("expected 2 analgesics (case-insensitive), got %d", len(analgesics))
	}

	if cc.GetLastUpdated().IsZero() {
		t.Error("lastUpdated should be set after UpdateData")
	}
}

func TestGetDrugsByCategoryUnknown(t *testing.T) {
	logging.InitLogger("")

	cc := NewCatalogContainer()
	cc.UpdateData([]entities.Drug{{ID: "d1", Name: "Paracetamol", Category: "Analgesic"}})

	if got := cc.GetDrugsByCategory("Nonexistent"); len(got) != 0 {
		t.Errorf("unknown category should return empty, got %d", len(got))
	}
}

func TestBeginEndUpdate(t *testing.T) {
	logging.InitLogger("")

	cc := NewCatalogContainer()

	if !cc.BeginUpdate() {
		t.Fatal("first BeginUpdate should succeed")
	}
	if cc.BeginUpdate() {
		t.Error("second BeginUpdate should fail while updating")
	}
	if !cc.IsUpdating() {
		t.Error("IsUpdating should be true")
	}

	cc.EndUpdate()
	if cc.IsUpdating() {
		t.Error("IsUpdating should be false after EndUpdate")
	}
	if !cc.BeginUpdate() {
		t.Error("BeginUpdate should succeed after EndUpdate")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	logging.InitLogger("")

	cc := NewCatalogContainer()
	cc.UpdateData([]entities.Drug{{ID: "d1", Name: "Paracetamol", Category: "Analgesic"}})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Concurrent readers must always see a complete snapshot
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				drugs := cc.GetDrugs()
				for j := range drugs {
					if drugs[j].Name == "" {
						t.Error("observed partially written drug record")
						return
					}
				}
			}
		}()
	}

	// Concurrent writer swapping snapshots
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cc.UpdateData([]entities.Drug{
				{ID: "d1", Name: "Paracetamol", Category: "Analgesic"},
				{ID: "d2", Name: "Cetirizine", Category: "Antihistamine"},
			})
		}
		close(stop)
	}()

	wg.Wait()
}

func TestServerStartTime(t *testing.T) {
	logging.InitLogger("")

	cc := NewCatalogContainer()
	now := time.Now()
	cc.SetServerStartTime(now)

	if !cc.GetServerStartTime().Equal(now) {
		t.Error("server start time roundtrip failed")
	}
}
